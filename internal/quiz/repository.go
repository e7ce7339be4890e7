package quiz

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Quiz, error)
	CreateAttempt(ctx context.Context, a *QuizAttempt) error
	ListAttempts(ctx context.Context, userID, quizID uuid.UUID) ([]QuizAttempt, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

// GetByID loads the quiz with its questions and answer keys in display order.
func (r *quizRepository) GetByID(ctx context.Context, id uuid.UUID) (*Quiz, error) {
	var quiz Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&quiz, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) CreateAttempt(ctx context.Context, a *QuizAttempt) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *quizRepository) ListAttempts(ctx context.Context, userID, quizID uuid.UUID) ([]QuizAttempt, error) {
	var attempts []QuizAttempt
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("submitted_at DESC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}
