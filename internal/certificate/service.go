package certificate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/academy-lambda/internal/apperr"
	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/saulo-duarte/academy-lambda/internal/notification"
	"github.com/saulo-duarte/academy-lambda/internal/progress"
)

var (
	ErrNotCompleted       = fmt.Errorf("course not 100%% completed: %w", apperr.ErrForbidden)
	ErrInvalidCertificate = fmt.Errorf("invalid certificate: %w", apperr.ErrNotFound)
)

// CompletionReader measures a user's completion of a course from scratch.
type CompletionReader interface {
	Measure(ctx context.Context, userID, courseID uuid.UUID) (*progress.Snapshot, error)
}

type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, msg notification.Message) (*notification.Notification, error)
}

type IssueResponse struct {
	Certificate *Certificate `json:"certificate"`
	Issued      bool         `json:"issued"`
}

type CertificateService interface {
	Issue(ctx context.Context, userID, courseID uuid.UUID) (*IssueResponse, error)
	Verify(ctx context.Context, code string) (*Verified, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]Owned, error)
}

type certificateService struct {
	repo       CertificateRepository
	completion CompletionReader
	notifier   Notifier
	now        func() time.Time
}

func NewService(repo CertificateRepository, completion CompletionReader, notifier Notifier) CertificateService {
	return &certificateService{repo: repo, completion: completion, notifier: notifier, now: time.Now}
}

// Issue returns the caller's certificate for courseID, minting one when the
// course is fully completed and none exists yet.
func (s *certificateService) Issue(ctx context.Context, userID, courseID uuid.UUID) (*IssueResponse, error) {
	log := config.WithContext(ctx).WithField("course_id", courseID)

	snap, err := s.completion.Measure(ctx, userID, courseID)
	if errors.Is(err, progress.ErrNotEnrolled) {
		return nil, err
	}
	if err != nil {
		log.WithError(err).Error("Failed to measure completion for certificate")
		return nil, err
	}
	if snap.Percent < 100 {
		return nil, ErrNotCompleted
	}

	existing, err := s.repo.Find(ctx, userID, courseID)
	if err != nil {
		log.WithError(err).Error("Failed to look up certificate")
		return nil, err
	}
	if existing != nil {
		return &IssueResponse{Certificate: existing}, nil
	}

	candidate := &Certificate{
		ID:         uuid.New(),
		UserID:     userID,
		CourseID:   courseID,
		UniqueCode: NewCode(),
		CreatedAt:  s.now(),
	}
	stored, err := s.repo.Insert(ctx, candidate)
	if err != nil {
		log.WithError(err).Error("Failed to insert certificate")
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("certificate missing after insert")
	}

	// A concurrent claim may have won the insert; only the winner notifies.
	issued := stored.ID == candidate.ID
	if issued {
		log.WithField("code", stored.UniqueCode).Info("Certificate issued")
		s.notifyIssued(ctx, stored)
	}
	return &IssueResponse{Certificate: stored, Issued: issued}, nil
}

func (s *certificateService) notifyIssued(ctx context.Context, c *Certificate) {
	if s.notifier == nil {
		return
	}
	log := config.WithContext(ctx)

	title, err := s.repo.CourseTitle(ctx, c.CourseID)
	if err != nil {
		log.WithError(err).Warn("Failed to load course title for certificate notification")
	}
	if title == "" {
		title = "your course"
	}

	_, err = s.notifier.Notify(ctx, c.UserID, notification.Message{
		Kind:  notification.KindCertificate,
		Title: "Certificate earned",
		Body:  fmt.Sprintf("You completed %s. Your certificate code is %s.", title, c.UniqueCode),
		Link:  "/certificates/verify/" + c.UniqueCode,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to send certificate notification")
	}
}

// Verify never distinguishes an unknown code from a failed lookup.
func (s *certificateService) Verify(ctx context.Context, code string) (*Verified, error) {
	code = NormalizeCode(code)
	if !validCode(code) {
		return nil, ErrInvalidCertificate
	}

	v, err := s.repo.FindVerified(ctx, code)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Certificate verification lookup failed")
		return nil, ErrInvalidCertificate
	}
	if v == nil {
		return nil, ErrInvalidCertificate
	}
	return v, nil
}

func (s *certificateService) ListMine(ctx context.Context, userID uuid.UUID) ([]Owned, error) {
	out, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list certificates")
		return nil, err
	}
	return out, nil
}
