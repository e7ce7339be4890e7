package course

type CourseStatus string

const (
	StatusDraft           CourseStatus = "draft"
	StatusPendingApproval CourseStatus = "pending_approval"
	StatusPublished       CourseStatus = "published"
	StatusRejected        CourseStatus = "rejected"
)

var AllStatuses = []CourseStatus{
	StatusDraft,
	StatusPendingApproval,
	StatusPublished,
	StatusRejected,
}

func (s CourseStatus) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type LessonType string

const (
	LessonVideo LessonType = "video"
	LessonQuiz  LessonType = "quiz"
)

func (t LessonType) IsValid() bool {
	return t == LessonVideo || t == LessonQuiz
}
