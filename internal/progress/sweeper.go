package progress

import (
	"context"

	"github.com/google/uuid"
	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/sirupsen/logrus"
)

const defaultSweepBatch = 200

// Sweeper recomputes every incomplete enrollment. It repairs percentages left
// stale when a completion committed but its recompute did not run.
type Sweeper struct {
	repo    ProgressRepository
	service ProgressService
	batch   int
}

func NewSweeper(repo ProgressRepository, service ProgressService, batch int) *Sweeper {
	if batch <= 0 {
		batch = defaultSweepBatch
	}
	return &Sweeper{repo: repo, service: service, batch: batch}
}

func (s *Sweeper) Name() string {
	return "progress-recompute"
}

func (s *Sweeper) Run(ctx context.Context) error {
	log := config.WithContext(ctx).WithField("job", s.Name())

	after := uuid.Nil
	var seen, changed, failed int
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		page, err := s.repo.ListIncompleteEnrollments(ctx, after, s.batch)
		if err != nil {
			log.WithError(err).Error("Failed to list enrollments")
			return err
		}

		for _, e := range page {
			seen++
			snap, err := s.service.Recompute(ctx, e.UserID, e.CourseID)
			if err != nil {
				failed++
				continue
			}
			if snap.Percent != e.ProgressPercent {
				changed++
			}
		}

		if len(page) < s.batch {
			break
		}
		after = page[len(page)-1].ID
	}

	log.WithFields(logrus.Fields{
		"seen":    seen,
		"changed": changed,
		"failed":  failed,
	}).Info("Progress sweep finished")
	return nil
}
