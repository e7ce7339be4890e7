package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/saulo-duarte/academy-lambda/internal/apperr"
	"github.com/saulo-duarte/academy-lambda/internal/config"
)

var ErrProfileNotFound = fmt.Errorf("profile %w", apperr.ErrNotFound)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
}

type userService struct {
	repo UserRepository
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	log := config.WithContext(ctx)

	p, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load profile")
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}
