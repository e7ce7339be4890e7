package notification

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindCertificate  Kind = "certificate"
	KindPurchase     Kind = "purchase"
	KindSubscription Kind = "subscription"
)

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_notification_user_created" json:"user_id"`
	Kind      Kind      `gorm:"type:text;not null" json:"kind"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	Body      string    `gorm:"type:text;not null;default:''" json:"body"`
	Link      string    `gorm:"type:text;not null;default:''" json:"link"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"index:idx_notification_user_created,sort:desc" json:"created_at"`
}

// Message is what callers hand to Notify.
type Message struct {
	Kind  Kind
	Title string
	Body  string
	Link  string
}
