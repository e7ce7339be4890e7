package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/academy-lambda/internal/apperr"
	"github.com/saulo-duarte/academy-lambda/internal/config"
)

var (
	ErrLessonNotFound = fmt.Errorf("lesson %w", apperr.ErrNotFound)
	ErrNotEnrolled    = fmt.Errorf("not enrolled in this course: %w", apperr.ErrForbidden)
)

type ProgressService interface {
	CheckLesson(ctx context.Context, userID, lessonID uuid.UUID) (*LessonRef, error)
	CompleteLesson(ctx context.Context, userID, lessonID uuid.UUID) (*Snapshot, error)
	Recompute(ctx context.Context, userID, courseID uuid.UUID) (*Snapshot, error)
	Measure(ctx context.Context, userID, courseID uuid.UUID) (*Snapshot, error)
	GetCourseProgress(ctx context.Context, userID, courseID uuid.UUID) (*CourseProgressResponse, error)
	Enroll(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
}

type progressService struct {
	repo ProgressRepository
	now  func() time.Time
}

func NewService(repo ProgressRepository) ProgressService {
	return &progressService{repo: repo, now: time.Now}
}

// CheckLesson returns the lesson when it is published and the caller is
// enrolled in its course.
func (s *progressService) CheckLesson(ctx context.Context, userID, lessonID uuid.UUID) (*LessonRef, error) {
	lesson, err := s.repo.FindLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil || !lesson.IsPublished {
		return nil, ErrLessonNotFound
	}
	if err := s.requireEnrollment(ctx, userID, lesson.CourseID); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *progressService) requireEnrollment(ctx context.Context, userID, courseID uuid.UUID) error {
	enrollment, err := s.repo.FindEnrollment(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if enrollment == nil {
		return ErrNotEnrolled
	}
	return nil
}

// CompleteLesson records the first completion of lessonID and recomputes the
// owning course in the same transaction.
func (s *progressService) CompleteLesson(ctx context.Context, userID, lessonID uuid.UUID) (*Snapshot, error) {
	log := config.WithContext(ctx).WithField("lesson_id", lessonID)

	lesson, err := s.CheckLesson(ctx, userID, lessonID)
	if errors.Is(err, ErrLessonNotFound) || errors.Is(err, ErrNotEnrolled) {
		return nil, err
	}
	if err != nil {
		log.WithError(err).Error("Failed to load lesson")
		return nil, fmt.Errorf("failed to complete lesson: %w", err)
	}

	var snap *Snapshot
	err = s.repo.Transaction(ctx, func(repo ProgressRepository) error {
		if err := repo.MarkLessonComplete(ctx, userID, lessonID, s.now()); err != nil {
			return err
		}
		var err error
		snap, err = s.recompute(ctx, repo, userID, lesson.CourseID)
		return err
	})
	if err != nil {
		log.WithError(err).Error("Failed to complete lesson")
		return nil, fmt.Errorf("failed to complete lesson: %w", err)
	}

	log.WithField("progress_percent", snap.Percent).Info("Lesson completed")
	return snap, nil
}

func (s *progressService) Recompute(ctx context.Context, userID, courseID uuid.UUID) (*Snapshot, error) {
	snap, err := s.recompute(ctx, s.repo, userID, courseID)
	if err != nil {
		config.WithContext(ctx).WithError(err).WithField("course_id", courseID).Error("Failed to recompute progress")
		return nil, err
	}
	return snap, nil
}

func (s *progressService) recompute(ctx context.Context, repo ProgressRepository, userID, courseID uuid.UUID) (*Snapshot, error) {
	snap, err := s.measure(ctx, repo, userID, courseID)
	if err != nil {
		return nil, err
	}
	if err := repo.UpdateEnrollmentProgress(ctx, userID, courseID, snap.Percent, snap.CompletedAt); err != nil {
		return nil, err
	}
	return snap, nil
}

// Measure counts an enrolled caller's completion from scratch without
// writing anything.
func (s *progressService) Measure(ctx context.Context, userID, courseID uuid.UUID) (*Snapshot, error) {
	log := config.WithContext(ctx).WithField("course_id", courseID)

	if err := s.requireEnrollment(ctx, userID, courseID); err != nil {
		if !errors.Is(err, ErrNotEnrolled) {
			log.WithError(err).Error("Failed to load enrollment")
		}
		return nil, err
	}
	snap, err := s.measure(ctx, s.repo, userID, courseID)
	if err != nil {
		log.WithError(err).Error("Failed to measure progress")
		return nil, err
	}
	return snap, nil
}

func (s *progressService) measure(ctx context.Context, repo ProgressRepository, userID, courseID uuid.UUID) (*Snapshot, error) {
	lessonIDs, err := repo.PublishedLessonIDs(ctx, courseID)
	if err != nil {
		return nil, err
	}
	completed, err := repo.CountCompleted(ctx, userID, lessonIDs)
	if err != nil {
		return nil, err
	}

	total := int64(len(lessonIDs))
	snap := &Snapshot{
		CourseID:  courseID,
		Completed: completed,
		Total:     total,
		Percent:   Percent(completed, total),
	}
	if snap.IsComplete() {
		now := s.now()
		snap.CompletedAt = &now
	}
	return snap, nil
}

func (s *progressService) GetCourseProgress(ctx context.Context, userID, courseID uuid.UUID) (*CourseProgressResponse, error) {
	log := config.WithContext(ctx).WithField("course_id", courseID)

	enrollment, err := s.repo.FindEnrollment(ctx, userID, courseID)
	if err != nil {
		log.WithError(err).Error("Failed to load enrollment")
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrNotEnrolled
	}

	lessonIDs, err := s.repo.PublishedLessonIDs(ctx, courseID)
	if err != nil {
		log.WithError(err).Error("Failed to list published lessons")
		return nil, err
	}
	done, err := s.repo.CompletedLessonIDs(ctx, userID, lessonIDs)
	if err != nil {
		log.WithError(err).Error("Failed to list completed lessons")
		return nil, err
	}

	return &CourseProgressResponse{
		Enrollment:         enrollment,
		CompletedLessonIDs: done,
		TotalLessons:       len(lessonIDs),
	}, nil
}

// Enroll creates the enrollment and, when it is new, seeds its percentage
// from lessons the user already completed.
func (s *progressService) Enroll(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	log := config.WithContext(ctx).WithField("course_id", courseID)

	now := s.now()
	created, err := s.repo.CreateEnrollment(ctx, &Enrollment{
		ID:        uuid.New(),
		UserID:    userID,
		CourseID:  courseID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		log.WithError(err).Error("Failed to create enrollment")
		return false, err
	}
	if !created {
		log.Info("User already enrolled")
		return false, nil
	}

	if _, err := s.Recompute(ctx, userID, courseID); err != nil {
		log.WithError(err).Warn("Enrollment created but initial progress not computed")
	}
	return true, nil
}
