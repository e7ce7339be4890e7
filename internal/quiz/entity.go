package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Quiz struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LessonID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"lesson_id"`
	Title        string    `gorm:"type:text;not null" json:"title"`
	PassingScore int       `gorm:"not null;default:70;check:passing_score BETWEEN 0 AND 100" json:"passing_score"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type Question struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuizID   uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Prompt   string    `gorm:"type:text;not null" json:"prompt"`
	Points   int       `gorm:"not null;default:1;check:points > 0" json:"points"`
	Position int       `gorm:"not null;default:0" json:"position"`

	Answers []Answer `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

type Answer struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"is_correct"`
	Position   int       `gorm:"not null;default:0" json:"position"`
}

// QuizAttempt is append-only: one row per submission, never updated.
type QuizAttempt struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_attempt_user_quiz" json:"user_id"`
	QuizID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_attempt_user_quiz" json:"quiz_id"`
	Score       int            `gorm:"not null" json:"score"`
	Passed      bool           `gorm:"not null" json:"passed"`
	AnswersJSON datatypes.JSON `gorm:"column:answers_json;type:jsonb;not null" json:"answers"`
	SubmittedAt time.Time      `gorm:"not null" json:"submitted_at"`
}
