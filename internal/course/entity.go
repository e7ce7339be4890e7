package course

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InstructorID uuid.UUID    `gorm:"type:uuid;not null;index" json:"instructor_id"`
	Title        string       `gorm:"type:text;not null" json:"title"`
	Description  string       `gorm:"type:text;not null;default:''" json:"description"`
	Price        int64        `gorm:"not null;default:0" json:"price"` // minor units (cents)
	Currency     string       `gorm:"type:varchar(3);not null;default:'usd'" json:"currency"`
	Status       CourseStatus `gorm:"type:text;not null;default:'draft'" json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	Sections []Section `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`
}

func (c *Course) IsPublished() bool {
	return c.Status == StatusPublished
}

func (c *Course) IsFree() bool {
	return c.Price <= 0
}

type Section struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`

	Lessons []Lesson `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
}

type Lesson struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SectionID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"section_id"`
	Title       string     `gorm:"type:text;not null" json:"title"`
	Type        LessonType `gorm:"type:text;not null;default:'video'" json:"type"`
	Position    int        `gorm:"not null;default:0" json:"position"`
	IsPublished bool       `gorm:"not null;default:false;index" json:"is_published"`
	IsFree      bool       `gorm:"not null;default:false" json:"is_free"`
	VideoURL    *string    `gorm:"type:text" json:"video_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_course" json:"user_id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_course;index" json:"course_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text;not null;default:''" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Review) TableName() string {
	return "course_reviews"
}
