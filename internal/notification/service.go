package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/academy-lambda/internal/apperr"
	"github.com/saulo-duarte/academy-lambda/internal/config"
)

const listLimit = 50

var ErrNotificationNotFound = fmt.Errorf("notification %w", apperr.ErrNotFound)

type NotificationService interface {
	Notify(ctx context.Context, userID uuid.UUID, msg Message) (*Notification, error)
	List(ctx context.Context, userID uuid.UUID) ([]Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
}

type notificationService struct {
	repo      NotificationRepository
	publisher Publisher
	now       func() time.Time
}

func NewService(repo NotificationRepository, publisher Publisher) NotificationService {
	if publisher == nil {
		publisher = NewNoopPublisher()
	}
	return &notificationService{repo: repo, publisher: publisher, now: time.Now}
}

// Notify stores the notification, then publishes it. A failed publish is
// logged only; the stored row is still listed on the next fetch.
func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, msg Message) (*Notification, error) {
	log := config.WithContext(ctx).WithField("kind", msg.Kind)

	n := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      msg.Kind,
		Title:     msg.Title,
		Body:      msg.Body,
		Link:      msg.Link,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.WithError(err).Error("Failed to store notification")
		return nil, err
	}

	if err := s.publisher.Publish(ctx, n); err != nil {
		log.WithError(err).Warn("Failed to publish notification")
	}
	return n, nil
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID) ([]Notification, error) {
	out, err := s.repo.ListByUser(ctx, userID, listLimit)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list notifications")
		return nil, err
	}
	return out, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to mark notification read")
		return err
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}
