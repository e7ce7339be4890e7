package billing

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/academy-lambda/internal/apperr"
	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/saulo-duarte/academy-lambda/internal/mailer"
	"github.com/saulo-duarte/academy-lambda/internal/notification"
	"github.com/saulo-duarte/academy-lambda/internal/progress"
	"github.com/saulo-duarte/academy-lambda/internal/validation"
)

var (
	ErrCourseNotFound  = fmt.Errorf("course %w", apperr.ErrNotFound)
	ErrFreeCourse      = fmt.Errorf("course is free, enroll directly: %w", apperr.ErrValidation)
	ErrAlreadyEnrolled = fmt.Errorf("already enrolled in this course: %w", apperr.ErrConflict)
	ErrAlreadyPro      = fmt.Errorf("subscription already active: %w", apperr.ErrConflict)
	ErrAmbiguousItem   = fmt.Errorf("send either course_id or plan, not both: %w", apperr.ErrValidation)
)

type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, msg notification.Message) (*notification.Notification, error)
}

// ProgressRecomputer seeds a new enrollment's percentage.
type ProgressRecomputer interface {
	Recompute(ctx context.Context, userID, courseID uuid.UUID) (*progress.Snapshot, error)
}

type BillingService interface {
	Checkout(ctx context.Context, userID uuid.UUID, dto CheckoutDTO) (*CheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	HandleEvent(ctx context.Context, ev *Event) error
}

type billingService struct {
	repo       BillingRepository
	provider   Provider
	sender     mailer.Sender
	notifier   Notifier
	recomputer ProgressRecomputer
	baseURL    string
	proPriceID string
	now        func() time.Time
}

func NewService(
	repo BillingRepository,
	provider Provider,
	sender mailer.Sender,
	notifier Notifier,
	recomputer ProgressRecomputer,
	baseURL string,
	proPriceID string,
) BillingService {
	return &billingService{
		repo:       repo,
		provider:   provider,
		sender:     sender,
		notifier:   notifier,
		recomputer: recomputer,
		baseURL:    baseURL,
		proPriceID: proPriceID,
		now:        time.Now,
	}
}

func (s *billingService) Checkout(ctx context.Context, userID uuid.UUID, dto CheckoutDTO) (*CheckoutResponse, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}
	if dto.CourseID != nil && dto.Plan != "" {
		return nil, ErrAmbiguousItem
	}

	log := config.WithContext(ctx)

	profile, err := s.repo.FindProfile(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load profile for checkout")
		return nil, err
	}

	req := CheckoutRequest{UserID: userID}
	if profile != nil {
		req.CustomerEmail = profile.Email
		if profile.StripeCustomerID != nil {
			req.CustomerID = *profile.StripeCustomerID
		}
	}

	if dto.Plan == PlanPro {
		if profile != nil && profile.IsPro {
			return nil, ErrAlreadyPro
		}
		if s.proPriceID == "" {
			return nil, fmt.Errorf("pro plan price is not configured")
		}
		req.Mode = ModeSubscription
		req.PriceID = s.proPriceID
		req.SuccessURL = s.baseURL + "/account?checkout=success"
		req.CancelURL = s.baseURL + "/pricing?checkout=cancelled"
	} else {
		c, err := s.repo.FindCourse(ctx, *dto.CourseID)
		if err != nil {
			log.WithError(err).Error("Failed to load course for checkout")
			return nil, err
		}
		if c == nil || !c.IsPublished() {
			return nil, ErrCourseNotFound
		}
		if c.IsFree() {
			return nil, ErrFreeCourse
		}

		enrolled, err := s.repo.IsEnrolled(ctx, userID, c.ID)
		if err != nil {
			log.WithError(err).Error("Failed to check enrollment for checkout")
			return nil, err
		}
		if enrolled {
			return nil, ErrAlreadyEnrolled
		}

		courseURL := fmt.Sprintf("%s/courses/%s", s.baseURL, c.ID)
		req.Mode = ModePayment
		req.CourseID = c.ID
		req.Title = c.Title
		req.Amount = c.Price
		req.Currency = c.Currency
		req.SuccessURL = courseURL + "?checkout=success"
		req.CancelURL = courseURL + "?checkout=cancelled"
	}

	session, err := s.provider.CreateCheckoutSession(ctx, req)
	if err != nil {
		log.WithError(err).Error("Failed to create checkout session")
		return nil, err
	}

	log.WithField("session_id", session.ID).WithField("mode", req.Mode).Info("Checkout session created")
	return &CheckoutResponse{SessionID: session.ID, URL: session.URL}, nil
}

func (s *billingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	ev, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Rejected webhook payload")
		return fmt.Errorf("%w: %w", apperr.ErrValidation, err)
	}
	return s.HandleEvent(ctx, ev)
}

// HandleEvent applies one verified provider event. A returned error means a
// required write failed and the provider should retry the delivery.
func (s *billingService) HandleEvent(ctx context.Context, ev *Event) error {
	log := config.WithContext(ctx).WithField("event_id", ev.ID).WithField("event_type", ev.Type)

	switch ev.Type {
	case EventCheckoutCompleted:
		if ev.Session == nil {
			log.Warn("Checkout event without session payload")
			return nil
		}
		switch ev.Session.Mode {
		case ModeSubscription:
			return s.activateSubscription(ctx, ev.Session)
		case ModePayment:
			if ev.Session.Metadata[metaCourseID] == "" {
				log.Info("Payment session without course metadata, ignoring")
				return nil
			}
			return s.fulfillPurchase(ctx, ev.Session)
		default:
			log.WithField("mode", ev.Session.Mode).Info("Unhandled checkout mode")
			return nil
		}
	case EventSubscriptionDeleted:
		if ev.Subscription == nil {
			log.Warn("Subscription event without payload")
			return nil
		}
		return s.cancelSubscription(ctx, ev.Subscription)
	default:
		log.Debug("Ignoring webhook event")
		return nil
	}
}

func (s *billingService) sessionUser(cs *CompletedSession) (uuid.UUID, error) {
	raw := cs.Metadata[metaUserID]
	if raw == "" {
		raw = cs.ClientRefID
	}
	return uuid.Parse(raw)
}

func (s *billingService) activateSubscription(ctx context.Context, cs *CompletedSession) error {
	log := config.WithContext(ctx).WithField("session_id", cs.ID)

	userID, err := s.sessionUser(cs)
	if err != nil {
		log.WithError(err).Warn("Subscription session without a valid user id")
		return nil
	}

	updated, err := s.repo.ActivatePro(ctx, userID, cs.CustomerID, cs.SubscriptionID)
	if err != nil {
		log.WithError(err).Error("Failed to activate subscription")
		return err
	}
	if !updated {
		log.WithField("user_id", userID).Warn("No profile for subscription session")
		return nil
	}

	log.WithField("user_id", userID).Info("Subscription activated")
	s.notify(ctx, userID, notification.Message{
		Kind:  notification.KindSubscription,
		Title: "Welcome to Pro",
		Body:  "Your Pro subscription is active.",
		Link:  "/account",
	})
	return nil
}

func (s *billingService) cancelSubscription(ctx context.Context, sub *Subscription) error {
	log := config.WithContext(ctx).WithField("subscription_id", sub.ID)

	updated, err := s.repo.DeactivatePro(ctx, sub.ID)
	if err != nil {
		log.WithError(err).Error("Failed to deactivate subscription")
		return err
	}
	if !updated {
		log.Info("No profile holds the cancelled subscription")
		return nil
	}

	log.Info("Subscription deactivated")
	return nil
}

// fulfillPurchase records the purchase and enrollment together. On a replayed
// delivery both inserts are no-ops and no receipt is sent again.
func (s *billingService) fulfillPurchase(ctx context.Context, cs *CompletedSession) error {
	log := config.WithContext(ctx).WithField("session_id", cs.ID)

	userID, err := s.sessionUser(cs)
	if err != nil {
		log.WithError(err).Warn("Payment session without a valid user id")
		return nil
	}
	courseID, err := uuid.Parse(cs.Metadata[metaCourseID])
	if err != nil {
		log.WithError(err).Warn("Payment session with malformed course id")
		return nil
	}

	now := s.now()
	var recorded, enrolled bool
	err = s.repo.Transaction(ctx, func(repo BillingRepository) error {
		var err error
		recorded, err = repo.CreatePurchase(ctx, &Purchase{
			ID:              uuid.New(),
			UserID:          userID,
			CourseID:        courseID,
			StripeSessionID: cs.ID,
			Price:           cs.AmountTotal,
			Currency:        cs.Currency,
			CreatedAt:       now,
		})
		if err != nil {
			return fmt.Errorf("insert purchase: %w", err)
		}
		enrolled, err = repo.CreateEnrollment(ctx, userID, courseID, now)
		if err != nil {
			return fmt.Errorf("insert enrollment: %w", err)
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to record purchase")
		return err
	}

	log = log.WithField("user_id", userID).WithField("course_id", courseID)
	if !enrolled {
		log.Info("User already enrolled")
	}
	if !recorded {
		log.Info("Purchase already recorded")
		return nil
	}

	log.Info("Purchase recorded")
	if enrolled && s.recomputer != nil {
		if _, err := s.recomputer.Recompute(ctx, userID, courseID); err != nil {
			log.WithError(err).Warn("Failed to seed progress for new enrollment")
		}
	}
	s.sendReceipt(ctx, userID, courseID, cs)
	return nil
}

func (s *billingService) sendReceipt(ctx context.Context, userID, courseID uuid.UUID, cs *CompletedSession) {
	log := config.WithContext(ctx).WithField("session_id", cs.ID)

	c, err := s.repo.FindCourse(ctx, courseID)
	if err != nil || c == nil {
		log.WithError(err).Warn("Course unavailable for receipt")
		return
	}

	to := mail.Address{Name: cs.CustomerName, Address: cs.CustomerEmail}
	if p, err := s.repo.FindProfile(ctx, userID); err == nil && p != nil {
		if p.Email != "" {
			to.Address = p.Email
		}
		if p.FullName != "" {
			to.Name = p.FullName
		}
	}

	s.notify(ctx, userID, notification.Message{
		Kind:  notification.KindPurchase,
		Title: "Purchase confirmed",
		Body:  "You now have access to " + c.Title + ".",
		Link:  "/courses/" + courseID.String(),
	})

	if to.Address == "" || s.sender == nil {
		log.Warn("No email address for receipt")
		return
	}

	msg, err := mailer.ReceiptMessage(to, mailer.Receipt{
		CustomerName: to.Name,
		CourseTitle:  c.Title,
		Amount:       cs.AmountTotal,
		Currency:     cs.Currency,
		PurchasedAt:  s.now(),
		CourseURL:    fmt.Sprintf("%s/courses/%s", s.baseURL, courseID),
	})
	if err != nil {
		log.WithError(err).Error("Failed to render receipt")
		return
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		log.WithError(err).Error("Failed to send receipt email")
	}
}

func (s *billingService) notify(ctx context.Context, userID uuid.UUID, msg notification.Message) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.Notify(ctx, userID, msg); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Failed to send notification")
	}
}
