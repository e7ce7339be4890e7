package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/academy-lambda/internal/apperr"
	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/saulo-duarte/academy-lambda/internal/progress"
	"github.com/saulo-duarte/academy-lambda/internal/validation"
	"gorm.io/datatypes"
)

var (
	ErrQuizNotFound = fmt.Errorf("quiz %w", apperr.ErrNotFound)
	ErrNoCaller     = fmt.Errorf("quiz submission requires a signed-in user: %w", apperr.ErrUnauthorized)
)

// LessonCompleter marks a lesson complete and recomputes its course.
// CheckLesson fails when the caller may not complete the lesson.
type LessonCompleter interface {
	CheckLesson(ctx context.Context, userID, lessonID uuid.UUID) (*progress.LessonRef, error)
	CompleteLesson(ctx context.Context, userID, lessonID uuid.UUID) (*progress.Snapshot, error)
}

type QuizService interface {
	GetForTaking(ctx context.Context, quizID uuid.UUID) (*QuizView, error)
	Submit(ctx context.Context, userID, quizID uuid.UUID, dto SubmitDTO) (*SubmitResponse, error)
	ListAttempts(ctx context.Context, userID, quizID uuid.UUID) ([]QuizAttempt, error)
}

type quizService struct {
	repo      QuizRepository
	completer LessonCompleter
	now       func() time.Time
}

func NewService(repo QuizRepository, completer LessonCompleter) QuizService {
	return &quizService{repo: repo, completer: completer, now: time.Now}
}

func (s *quizService) GetForTaking(ctx context.Context, quizID uuid.UUID) (*QuizView, error) {
	q, err := s.repo.GetByID(ctx, quizID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load quiz")
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}
	return NewQuizView(q), nil
}

// Submit grades the submission and always records an attempt. A passing
// attempt completes the quiz's lesson.
func (s *quizService) Submit(ctx context.Context, userID, quizID uuid.UUID, dto SubmitDTO) (*SubmitResponse, error) {
	log := config.WithContext(ctx).WithField("quiz_id", quizID)

	if userID == uuid.Nil {
		return nil, ErrNoCaller
	}
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	q, err := s.repo.GetByID(ctx, quizID)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz for grading")
		return nil, err
	}
	if q == nil {
		return nil, ErrQuizNotFound
	}

	// Quizzes on unpublished lessons are not takeable.
	if _, err := s.completer.CheckLesson(ctx, userID, q.LessonID); err != nil {
		switch {
		case errors.Is(err, progress.ErrLessonNotFound):
			return nil, ErrQuizNotFound
		case errors.Is(err, progress.ErrNotEnrolled):
			return nil, err
		}
		log.WithError(err).Error("Failed to check quiz lesson")
		return nil, err
	}

	res := Grade(q, dto.Answers)

	raw, err := json.Marshal(dto.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}

	attempt := &QuizAttempt{
		ID:          uuid.New(),
		UserID:      userID,
		QuizID:      q.ID,
		Score:       res.Score,
		Passed:      res.Passed,
		AnswersJSON: datatypes.JSON(raw),
		SubmittedAt: s.now(),
	}
	if err := s.repo.CreateAttempt(ctx, attempt); err != nil {
		log.WithError(err).Error("Failed to record quiz attempt")
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	resp := &SubmitResponse{
		AttemptID:    attempt.ID,
		Score:        res.Score,
		Passed:       res.Passed,
		PassingScore: q.PassingScore,
		EarnedPoints: res.EarnedPoints,
		TotalPoints:  res.TotalPoints,
	}

	log.WithField("score", res.Score).WithField("passed", res.Passed).Info("Quiz graded")

	if !res.Passed {
		return resp, nil
	}

	snap, err := s.completer.CompleteLesson(ctx, userID, q.LessonID)
	if err != nil {
		log.WithError(err).Error("Quiz passed but lesson completion failed")
		return nil, err
	}
	resp.LessonCompleted = true
	resp.CourseProgress = &snap.Percent
	return resp, nil
}

func (s *quizService) ListAttempts(ctx context.Context, userID, quizID uuid.UUID) ([]QuizAttempt, error) {
	attempts, err := s.repo.ListAttempts(ctx, userID, quizID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list quiz attempts")
		return nil, err
	}
	return attempts, nil
}
