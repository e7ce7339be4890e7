package billing

import (
	"context"
	"time"

	"github.com/saulo-duarte/academy-lambda/internal/config"
)

const defaultSweepBatch = 200

// Sweeper enrolls buyers whose purchase committed without an enrollment.
type Sweeper struct {
	repo       BillingRepository
	recomputer ProgressRecomputer
	batch      int
	now        func() time.Time
}

func NewSweeper(repo BillingRepository, recomputer ProgressRecomputer, batch int) *Sweeper {
	if batch <= 0 {
		batch = defaultSweepBatch
	}
	return &Sweeper{repo: repo, recomputer: recomputer, batch: batch, now: time.Now}
}

func (s *Sweeper) Name() string {
	return "purchase-enrollment-repair"
}

func (s *Sweeper) Run(ctx context.Context) error {
	log := config.WithContext(ctx).WithField("job", s.Name())

	purchases, err := s.repo.PurchasesWithoutEnrollment(ctx, s.batch)
	if err != nil {
		log.WithError(err).Error("Failed to list purchases without enrollment")
		return err
	}

	repaired := 0
	for _, p := range purchases {
		if err := ctx.Err(); err != nil {
			return err
		}
		created, err := s.repo.CreateEnrollment(ctx, p.UserID, p.CourseID, s.now())
		if err != nil {
			log.WithError(err).WithField("purchase_id", p.ID).Error("Failed to repair enrollment")
			continue
		}
		if !created {
			continue
		}
		repaired++
		if s.recomputer != nil {
			if _, err := s.recomputer.Recompute(ctx, p.UserID, p.CourseID); err != nil {
				log.WithError(err).WithField("purchase_id", p.ID).Warn("Failed to seed progress for repaired enrollment")
			}
		}
	}

	log.WithField("checked", len(purchases)).WithField("repaired", repaired).Info("Purchase sweep finished")
	return nil
}
