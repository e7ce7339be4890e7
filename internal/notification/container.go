package notification

import (
	"context"

	"github.com/saulo-duarte/academy-lambda/internal/config"
	"gorm.io/gorm"
)

type NotificationContainer struct {
	Repo      NotificationRepository
	Service   NotificationService
	Handler   *Handler
	Publisher Publisher
}

// NewNotificationContainer falls back to a no-op publisher when redis is not
// configured or unreachable.
func NewNotificationContainer(ctx context.Context, db *gorm.DB) *NotificationContainer {
	publisher := NewNoopPublisher()
	if config.Cfg.RedisAddr != "" {
		p, err := NewRedisPublisher(ctx, config.Cfg.RedisAddr, config.Cfg.RedisChannelPrefix)
		if err != nil {
			config.Log.WithError(err).Warn("Redis unavailable, realtime notifications disabled")
		} else {
			publisher = p
		}
	}

	repo := NewRepository(db)
	service := NewService(repo, publisher)

	return &NotificationContainer{
		Repo:      repo,
		Service:   service,
		Handler:   NewHandler(service),
		Publisher: publisher,
	}
}
