package container

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/saulo-duarte/academy-lambda/internal/auth"
	"github.com/saulo-duarte/academy-lambda/internal/billing"
	"github.com/saulo-duarte/academy-lambda/internal/certificate"
	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/saulo-duarte/academy-lambda/internal/course"
	"github.com/saulo-duarte/academy-lambda/internal/jobs"
	"github.com/saulo-duarte/academy-lambda/internal/mailer"
	"github.com/saulo-duarte/academy-lambda/internal/notification"
	"github.com/saulo-duarte/academy-lambda/internal/progress"
	"github.com/saulo-duarte/academy-lambda/internal/quiz"
	"github.com/saulo-duarte/academy-lambda/internal/user"
	"gorm.io/gorm"
)

type Container struct {
	UserContainer         *user.UserContainer
	CourseContainer       *course.CourseContainer
	ProgressContainer     *progress.ProgressContainer
	QuizContainer         *quiz.QuizContainer
	CertificateContainer  *certificate.CertificateContainer
	NotificationContainer *notification.NotificationContainer
	BillingContainer      *billing.BillingContainer
	Mailer                mailer.Sender
}

// Models lists every table owned by this service, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&user.Profile{},
		&course.Course{},
		&course.Section{},
		&course.Lesson{},
		&course.Review{},
		&quiz.Quiz{},
		&quiz.Question{},
		&quiz.Answer{},
		&quiz.QuizAttempt{},
		&progress.LessonProgress{},
		&progress.Enrollment{},
		&certificate.Certificate{},
		&billing.Purchase{},
		&notification.Notification{},
	}
}

// Bootstrap loads configuration and opens the database pool.
func Bootstrap(ctx context.Context) error {
	config.Init()
	auth.Init()

	if err := config.Connect(ctx, config.Cfg.DatabaseDSN); err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}
	if config.Cfg.AutoMigrate {
		if err := config.Migrate(config.DB, Models()...); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}
	return nil
}

func New(ctx context.Context) (*Container, error) {
	if err := Bootstrap(ctx); err != nil {
		return nil, err
	}
	return Wire(ctx, config.DB), nil
}

// Wire builds every feature over db. It does not touch global configuration
// beyond reading config.Cfg.
func Wire(ctx context.Context, db *gorm.DB) *Container {
	sender := mailer.New(config.Cfg.SendgridAPIKey, mail.Address{
		Name:    config.Cfg.MailFromName,
		Address: config.Cfg.MailFromEmail,
	})

	userContainer := user.NewUserContainer(db)
	progressContainer := progress.NewProgressContainer(db)
	courseContainer := course.NewCourseContainer(db, progressContainer.Service)
	quizContainer := quiz.NewQuizContainer(db, progressContainer.Service)
	notificationContainer := notification.NewNotificationContainer(ctx, db)

	certificateContainer := certificate.NewCertificateContainer(
		db,
		progressContainer.Service,
		notificationContainer.Service,
	)

	billingContainer := billing.NewBillingContainer(
		db,
		sender,
		notificationContainer.Service,
		progressContainer.Service,
	)

	return &Container{
		UserContainer:         userContainer,
		CourseContainer:       courseContainer,
		ProgressContainer:     progressContainer,
		QuizContainer:         quizContainer,
		CertificateContainer:  certificateContainer,
		NotificationContainer: notificationContainer,
		BillingContainer:      billingContainer,
		Mailer:                sender,
	}
}

// Jobs returns the reconciliation sweeps run by the scheduler and the sweep
// command.
func (c *Container) Jobs() []jobs.Job {
	return []jobs.Job{
		c.ProgressContainer.Sweeper,
		c.BillingContainer.Sweeper,
	}
}

func (c *Container) Close() error {
	if c.NotificationContainer != nil && c.NotificationContainer.Publisher != nil {
		if err := c.NotificationContainer.Publisher.Close(); err != nil {
			return err
		}
	}
	if config.DB != nil {
		sqlDB, err := config.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
