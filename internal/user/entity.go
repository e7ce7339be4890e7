package user

import (
	"time"

	"github.com/google/uuid"
)

// Profile is created by the auth provider on sign-up; this service only
// reads it and flips the subscription fields.
type Profile struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email                string    `gorm:"type:text;not null;default:''" json:"email"`
	FullName             string    `gorm:"type:text;not null;default:''" json:"full_name"`
	AvatarURL            *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	IsPro                bool      `gorm:"not null;default:false" json:"is_pro"`
	StripeCustomerID     *string   `gorm:"type:text;index" json:"-"`
	StripeSubscriptionID *string   `gorm:"type:text;index" json:"-"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Email
}
