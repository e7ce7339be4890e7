package billing

import (
	"time"

	"github.com/google/uuid"
)

// Purchase is one paid checkout session. stripe_session_id is unique so a
// replayed webhook cannot record the same payment twice.
type Purchase struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CourseID        uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	StripeSessionID string    `gorm:"type:text;not null;uniqueIndex" json:"stripe_session_id"`
	Price           int64     `gorm:"not null" json:"price"`
	Currency        string    `gorm:"type:varchar(3);not null" json:"currency"`
	CreatedAt       time.Time `json:"created_at"`
}
