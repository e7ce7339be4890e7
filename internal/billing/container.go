package billing

import (
	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/saulo-duarte/academy-lambda/internal/mailer"
	"gorm.io/gorm"
)

type BillingContainer struct {
	Repo    BillingRepository
	Service BillingService
	Handler *Handler
	Sweeper *Sweeper
}

func NewBillingContainer(db *gorm.DB, sender mailer.Sender, notifier Notifier, recomputer ProgressRecomputer) *BillingContainer {
	repo := NewRepository(db)
	provider := NewStripeProvider(config.Cfg.StripeSecretKey, config.Cfg.StripeWebhookSecret)
	service := NewService(repo, provider, sender, notifier, recomputer, config.Cfg.BaseURL, config.Cfg.StripeProPriceID)

	return &BillingContainer{
		Repo:    repo,
		Service: service,
		Handler: NewHandler(service),
		Sweeper: NewSweeper(repo, recomputer, config.Cfg.SweepBatchSize),
	}
}
