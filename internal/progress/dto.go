package progress

import "github.com/google/uuid"

type CourseProgressResponse struct {
	Enrollment         *Enrollment `json:"enrollment"`
	CompletedLessonIDs []uuid.UUID `json:"completed_lesson_ids"`
	TotalLessons       int         `json:"total_lessons"`
}
