package certificate

import (
	"time"

	"github.com/google/uuid"
)

// Certificate is immutable once issued. (user_id, course_id) is unique.
type Certificate struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_certificate_user_course" json:"user_id"`
	CourseID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_certificate_user_course" json:"course_id"`
	UniqueCode string    `gorm:"type:varchar(12);not null;uniqueIndex" json:"unique_code"`
	CreatedAt  time.Time `json:"created_at"`
}

// Verified is a certificate joined with the display fields shown on the
// public verification page.
type Verified struct {
	Certificate
	UserName    string `json:"user_name"`
	CourseTitle string `json:"course_title"`
}

type Owned struct {
	Certificate
	CourseTitle string `json:"course_title"`
}
