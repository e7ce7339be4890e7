package progress

import (
	"github.com/saulo-duarte/academy-lambda/internal/config"
	"gorm.io/gorm"
)

type ProgressContainer struct {
	Repo    ProgressRepository
	Service ProgressService
	Handler *Handler
	Sweeper *Sweeper
}

func NewProgressContainer(db *gorm.DB) *ProgressContainer {
	repo := NewRepository(db)
	service := NewService(repo)

	return &ProgressContainer{
		Repo:    repo,
		Service: service,
		Handler: NewHandler(service),
		Sweeper: NewSweeper(repo, service, config.Cfg.SweepBatchSize),
	}
}
