package course

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/academy-lambda/internal/apperr"
	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/saulo-duarte/academy-lambda/internal/validation"
)

var (
	ErrCourseNotFound = fmt.Errorf("course %w", apperr.ErrNotFound)
	ErrPaidCourse     = fmt.Errorf("course requires checkout: %w", apperr.ErrValidation)
	ErrNotEnrolled    = fmt.Errorf("not enrolled in this course: %w", apperr.ErrForbidden)
)

// Enroller creates the enrollment row. It reports false when the user was
// already enrolled.
type Enroller interface {
	Enroll(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
}

type CourseService interface {
	GetOutline(ctx context.Context, courseID uuid.UUID) (*Course, error)
	GetPublished(ctx context.Context, courseID uuid.UUID) (*Course, error)
	EnrollFree(ctx context.Context, userID, courseID uuid.UUID) (*EnrollResponse, error)
	SubmitReview(ctx context.Context, userID, courseID uuid.UUID, dto ReviewDTO) (*Review, error)
	ListReviews(ctx context.Context, courseID uuid.UUID) (*ReviewsResponse, error)
}

type courseService struct {
	repo     CourseRepository
	enroller Enroller
}

func NewService(repo CourseRepository, enroller Enroller) CourseService {
	return &courseService{repo: repo, enroller: enroller}
}

func (s *courseService) GetOutline(ctx context.Context, courseID uuid.UUID) (*Course, error) {
	log := config.WithContext(ctx)

	c, err := s.repo.GetOutline(ctx, courseID)
	if err != nil {
		log.WithError(err).Error("Failed to load course outline")
		return nil, err
	}
	if c == nil || !c.IsPublished() {
		return nil, ErrCourseNotFound
	}
	return c, nil
}

func (s *courseService) GetPublished(ctx context.Context, courseID uuid.UUID) (*Course, error) {
	c, err := s.repo.GetByID(ctx, courseID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load course")
		return nil, err
	}
	if c == nil || !c.IsPublished() {
		return nil, ErrCourseNotFound
	}
	return c, nil
}

func (s *courseService) EnrollFree(ctx context.Context, userID, courseID uuid.UUID) (*EnrollResponse, error) {
	log := config.WithContext(ctx)

	c, err := s.GetPublished(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !c.IsFree() {
		return nil, ErrPaidCourse
	}

	created, err := s.enroller.Enroll(ctx, userID, courseID)
	if err != nil {
		log.WithError(err).Error("Failed to enroll in free course")
		return nil, err
	}

	log.WithField("course_id", courseID).Info("Enrolled in free course")
	return &EnrollResponse{CourseID: courseID, AlreadyEnrolled: !created}, nil
}

func (s *courseService) SubmitReview(ctx context.Context, userID, courseID uuid.UUID, dto ReviewDTO) (*Review, error) {
	log := config.WithContext(ctx)

	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	if _, err := s.GetPublished(ctx, courseID); err != nil {
		return nil, err
	}

	enrolled, err := s.repo.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		log.WithError(err).Error("Failed to check enrollment before review")
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	now := time.Now()
	review := &Review{
		ID:        uuid.New(),
		UserID:    userID,
		CourseID:  courseID,
		Rating:    dto.Rating,
		Comment:   dto.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.UpsertReview(ctx, review); err != nil {
		log.WithError(err).Error("Failed to save review")
		return nil, err
	}

	// A re-post updates the existing row, which keeps its id and created_at.
	stored, err := s.repo.FindReview(ctx, userID, courseID)
	if err != nil {
		log.WithError(err).Error("Failed to reload review")
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("review missing after save")
	}
	return stored, nil
}

func (s *courseService) ListReviews(ctx context.Context, courseID uuid.UUID) (*ReviewsResponse, error) {
	reviews, err := s.repo.ListReviews(ctx, courseID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list reviews")
		return nil, err
	}

	return &ReviewsResponse{
		CourseID:      courseID,
		AverageRating: averageRating(reviews),
		Count:         len(reviews),
		Reviews:       reviews,
	}, nil
}

func averageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}
