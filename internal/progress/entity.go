package progress

import (
	"time"

	"github.com/google/uuid"
)

// LessonProgress is written once per (user, lesson) and never reverted.
type LessonProgress struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_lesson_progress_user_lesson" json:"user_id"`
	LessonID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_lesson_progress_user_lesson;index" json:"lesson_id"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

type Enrollment struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course" json:"user_id"`
	CourseID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course;index" json:"course_id"`
	ProgressPercent int        `gorm:"not null;default:0" json:"progress_percent"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// LessonRef is a lesson resolved to its owning course.
type LessonRef struct {
	LessonID    uuid.UUID
	CourseID    uuid.UUID
	IsPublished bool
	Type        string
}

// Snapshot is one from-scratch measurement of a user's completion of a course.
type Snapshot struct {
	CourseID    uuid.UUID  `json:"course_id"`
	Completed   int64      `json:"completed_lessons"`
	Total       int64      `json:"total_lessons"`
	Percent     int        `json:"progress_percent"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (s *Snapshot) IsComplete() bool {
	return s.Percent == 100
}
