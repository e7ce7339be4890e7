package billing

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/academy-lambda/internal/apperr"
	"github.com/saulo-duarte/academy-lambda/internal/course"
	"github.com/saulo-duarte/academy-lambda/internal/mailer"
	"github.com/saulo-duarte/academy-lambda/internal/user"
)

type harness struct {
	repo       *fakeRepo
	provider   *fakeProvider
	sender     *mailer.ConsoleSender
	notifier   *fakeNotifier
	recomputer *fakeRecomputer
	svc        BillingService

	userID   uuid.UUID
	courseID uuid.UUID
}

func newHarness() *harness {
	h := &harness{
		repo:       newFakeRepo(),
		provider:   &fakeProvider{},
		sender:     mailer.NewConsoleSender(mail.Address{Address: "no-reply@example.com"}),
		notifier:   &fakeNotifier{},
		recomputer: &fakeRecomputer{},
		userID:     uuid.New(),
		courseID:   uuid.New(),
	}
	h.repo.profiles[h.userID] = &user.Profile{ID: h.userID, Email: "ada@example.com", FullName: "Ada"}
	h.repo.courses[h.courseID] = &course.Course{
		ID:       h.courseID,
		Title:    "Distributed Go",
		Price:    4900,
		Currency: "usd",
		Status:   course.StatusPublished,
	}
	h.svc = NewService(h.repo, h.provider, h.sender, h.notifier, h.recomputer, "https://academy.test", "price_pro")
	return h
}

func (h *harness) paymentEvent(sessionID string) *Event {
	return &Event{
		ID:   "evt_" + sessionID,
		Type: EventCheckoutCompleted,
		Session: &CompletedSession{
			ID:   sessionID,
			Mode: ModePayment,
			Metadata: map[string]string{
				metaUserID:   h.userID.String(),
				metaCourseID: h.courseID.String(),
			},
			AmountTotal: 4900,
			Currency:    "usd",
		},
	}
}

func TestPaymentWebhookReplayIsSafe(t *testing.T) {
	h := newHarness()
	ev := h.paymentEvent("cs_replay")

	require.NoError(t, h.svc.HandleEvent(context.Background(), ev))
	require.NoError(t, h.svc.HandleEvent(context.Background(), ev))

	assert.Len(t, h.repo.purchases, 1)
	assert.Len(t, h.repo.enrollments, 1)
	assert.Len(t, h.sender.Sent(), 1)
	assert.Len(t, h.notifier.sent, 1)
	assert.Equal(t, 1, h.recomputer.calls)

	p := h.repo.purchases["cs_replay"]
	assert.Equal(t, int64(4900), p.Price)
	assert.Equal(t, h.courseID, p.CourseID)

	receipt := h.sender.Sent()[0]
	assert.Equal(t, "ada@example.com", receipt.To.Address)
	assert.Contains(t, receipt.Text, "USD 49.00")
}

func TestPaymentForAlreadyEnrolledUserIsNotAnError(t *testing.T) {
	h := newHarness()
	_, err := h.repo.CreateEnrollment(context.Background(), h.userID, h.courseID, fixedTime())
	require.NoError(t, err)

	require.NoError(t, h.svc.HandleEvent(context.Background(), h.paymentEvent("cs_dupe")))

	assert.Len(t, h.repo.purchases, 1)
	assert.Len(t, h.repo.enrollments, 1)
	assert.Zero(t, h.recomputer.calls)
}

func TestPaymentReceiptFailureIsSwallowed(t *testing.T) {
	h := newHarness()
	sender := &failingSender{}
	svc := NewService(h.repo, h.provider, sender, nil, nil, "https://academy.test", "")

	require.NoError(t, svc.HandleEvent(context.Background(), h.paymentEvent("cs_mailfail")))
	assert.Equal(t, 1, sender.calls)
	assert.Len(t, h.repo.enrollments, 1)
}

func TestPaymentWriteFailureRollsBackAndErrors(t *testing.T) {
	h := newHarness()
	h.repo.enrollErr = errors.New("connection reset")

	err := h.svc.HandleEvent(context.Background(), h.paymentEvent("cs_fail"))
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.Status(err))
	assert.Empty(t, h.repo.purchases)
	assert.Empty(t, h.sender.Sent())

	// provider retry after recovery
	h.repo.enrollErr = nil
	require.NoError(t, h.svc.HandleEvent(context.Background(), h.paymentEvent("cs_fail")))
	assert.Len(t, h.repo.purchases, 1)
	assert.Len(t, h.repo.enrollments, 1)
}

func TestPaymentWithoutCourseMetadataIsIgnored(t *testing.T) {
	h := newHarness()
	ev := h.paymentEvent("cs_tip")
	delete(ev.Session.Metadata, metaCourseID)

	require.NoError(t, h.svc.HandleEvent(context.Background(), ev))
	assert.Empty(t, h.repo.purchases)
}

func TestSubscriptionLifecycle(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	err := h.svc.HandleEvent(ctx, &Event{
		Type: EventCheckoutCompleted,
		Session: &CompletedSession{
			ID:             "cs_sub",
			Mode:           ModeSubscription,
			ClientRefID:    h.userID.String(),
			CustomerID:     "cus_1",
			SubscriptionID: "sub_1",
		},
	})
	require.NoError(t, err)

	p := h.repo.profiles[h.userID]
	assert.True(t, p.IsPro)
	require.NotNil(t, p.StripeSubscriptionID)
	assert.Equal(t, "sub_1", *p.StripeSubscriptionID)
	assert.Equal(t, "cus_1", *p.StripeCustomerID)

	require.NoError(t, h.svc.HandleEvent(ctx, &Event{
		Type:         EventSubscriptionDeleted,
		Subscription: &Subscription{ID: "sub_1", CustomerID: "cus_1"},
	}))
	assert.False(t, p.IsPro)
	assert.Nil(t, p.StripeSubscriptionID)
	require.NotNil(t, p.StripeCustomerID)

	// unknown subscription is acknowledged
	require.NoError(t, h.svc.HandleEvent(ctx, &Event{
		Type:         EventSubscriptionDeleted,
		Subscription: &Subscription{ID: "sub_unknown"},
	}))
}

func TestUnhandledEventIsAcknowledged(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.svc.HandleEvent(context.Background(), &Event{Type: "invoice.paid"}))
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	h := newHarness()
	h.provider.parseErr = ErrInvalidSignature

	err := h.svc.HandleWebhook(context.Background(), []byte(`{}`), "t=1,v1=bad")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Empty(t, h.repo.purchases)
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("CoursePurchase", func(t *testing.T) {
		h := newHarness()
		resp, err := h.svc.Checkout(ctx, h.userID, CheckoutDTO{CourseID: &h.courseID})
		require.NoError(t, err)

		assert.Equal(t, "https://checkout.stripe.test/cs_test_1", resp.URL)
		require.Len(t, h.provider.requests, 1)
		req := h.provider.requests[0]
		assert.Equal(t, ModePayment, req.Mode)
		assert.Equal(t, int64(4900), req.Amount)
		assert.Equal(t, "ada@example.com", req.CustomerEmail)
		assert.Contains(t, req.SuccessURL, h.courseID.String())
	})

	t.Run("ProPlan", func(t *testing.T) {
		h := newHarness()
		_, err := h.svc.Checkout(ctx, h.userID, CheckoutDTO{Plan: PlanPro})
		require.NoError(t, err)
		assert.Equal(t, ModeSubscription, h.provider.requests[0].Mode)
		assert.Equal(t, "price_pro", h.provider.requests[0].PriceID)
	})

	t.Run("AlreadyPro", func(t *testing.T) {
		h := newHarness()
		h.repo.profiles[h.userID].IsPro = true
		_, err := h.svc.Checkout(ctx, h.userID, CheckoutDTO{Plan: PlanPro})
		assert.ErrorIs(t, err, ErrAlreadyPro)
	})

	t.Run("FreeCourse", func(t *testing.T) {
		h := newHarness()
		h.repo.courses[h.courseID].Price = 0
		_, err := h.svc.Checkout(ctx, h.userID, CheckoutDTO{CourseID: &h.courseID})
		assert.ErrorIs(t, err, ErrFreeCourse)
	})

	t.Run("DraftCourse", func(t *testing.T) {
		h := newHarness()
		h.repo.courses[h.courseID].Status = course.StatusDraft
		_, err := h.svc.Checkout(ctx, h.userID, CheckoutDTO{CourseID: &h.courseID})
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})

	t.Run("AlreadyEnrolled", func(t *testing.T) {
		h := newHarness()
		_, _ = h.repo.CreateEnrollment(ctx, h.userID, h.courseID, fixedTime())
		_, err := h.svc.Checkout(ctx, h.userID, CheckoutDTO{CourseID: &h.courseID})
		assert.ErrorIs(t, err, ErrAlreadyEnrolled)
		assert.Equal(t, http.StatusConflict, apperr.Status(err))
	})

	t.Run("NothingToBuy", func(t *testing.T) {
		h := newHarness()
		_, err := h.svc.Checkout(ctx, h.userID, CheckoutDTO{})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("BothItems", func(t *testing.T) {
		h := newHarness()
		_, err := h.svc.Checkout(ctx, h.userID, CheckoutDTO{CourseID: &h.courseID, Plan: PlanPro})
		assert.ErrorIs(t, err, ErrAmbiguousItem)
	})

	t.Run("UnknownPlan", func(t *testing.T) {
		h := newHarness()
		_, err := h.svc.Checkout(ctx, h.userID, CheckoutDTO{Plan: "enterprise"})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestSweeperRepairsMissingEnrollments(t *testing.T) {
	h := newHarness()
	h.repo.purchases["cs_orphan"] = Purchase{ID: uuid.New(), UserID: h.userID, CourseID: h.courseID, StripeSessionID: "cs_orphan"}

	sweeper := NewSweeper(h.repo, h.recomputer, 10)
	require.NoError(t, sweeper.Run(context.Background()))

	assert.Len(t, h.repo.enrollments, 1)
	assert.Equal(t, 1, h.recomputer.calls)

	require.NoError(t, sweeper.Run(context.Background()))
	assert.Equal(t, 1, h.recomputer.calls)
}
