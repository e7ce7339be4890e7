package billing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saulo-duarte/academy-lambda/internal/course"
	"github.com/saulo-duarte/academy-lambda/internal/mailer"
	"github.com/saulo-duarte/academy-lambda/internal/notification"
	"github.com/saulo-duarte/academy-lambda/internal/progress"
	"github.com/saulo-duarte/academy-lambda/internal/user"
)

type pair [2]uuid.UUID

type fakeRepo struct {
	courses     map[uuid.UUID]*course.Course
	profiles    map[uuid.UUID]*user.Profile
	purchases   map[string]Purchase
	enrollments map[pair]time.Time

	enrollErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		courses:     map[uuid.UUID]*course.Course{},
		profiles:    map[uuid.UUID]*user.Profile{},
		purchases:   map[string]Purchase{},
		enrollments: map[pair]time.Time{},
	}
}

func (f *fakeRepo) FindCourse(_ context.Context, id uuid.UUID) (*course.Course, error) {
	return f.courses[id], nil
}

func (f *fakeRepo) FindProfile(_ context.Context, id uuid.UUID) (*user.Profile, error) {
	return f.profiles[id], nil
}

func (f *fakeRepo) IsEnrolled(_ context.Context, userID, courseID uuid.UUID) (bool, error) {
	_, ok := f.enrollments[pair{userID, courseID}]
	return ok, nil
}

func (f *fakeRepo) CreatePurchase(_ context.Context, p *Purchase) (bool, error) {
	if _, ok := f.purchases[p.StripeSessionID]; ok {
		return false, nil
	}
	f.purchases[p.StripeSessionID] = *p
	return true, nil
}

func (f *fakeRepo) CreateEnrollment(_ context.Context, userID, courseID uuid.UUID, at time.Time) (bool, error) {
	if f.enrollErr != nil {
		return false, f.enrollErr
	}
	k := pair{userID, courseID}
	if _, ok := f.enrollments[k]; ok {
		return false, nil
	}
	f.enrollments[k] = at
	return true, nil
}

func (f *fakeRepo) PurchasesWithoutEnrollment(_ context.Context, limit int) ([]Purchase, error) {
	var out []Purchase
	for _, p := range f.purchases {
		if _, ok := f.enrollments[pair{p.UserID, p.CourseID}]; !ok && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) ActivatePro(_ context.Context, userID uuid.UUID, customerID, subscriptionID string) (bool, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return false, nil
	}
	p.IsPro = true
	if customerID != "" {
		p.StripeCustomerID = &customerID
	}
	if subscriptionID != "" {
		p.StripeSubscriptionID = &subscriptionID
	}
	return true, nil
}

func (f *fakeRepo) DeactivatePro(_ context.Context, subscriptionID string) (bool, error) {
	updated := false
	for _, p := range f.profiles {
		if p.StripeSubscriptionID != nil && *p.StripeSubscriptionID == subscriptionID {
			p.IsPro = false
			p.StripeSubscriptionID = nil
			updated = true
		}
	}
	return updated, nil
}

// Transaction snapshots the maps and restores them when fn fails.
func (f *fakeRepo) Transaction(_ context.Context, fn func(repo BillingRepository) error) error {
	purchases := make(map[string]Purchase, len(f.purchases))
	for k, v := range f.purchases {
		purchases[k] = v
	}
	enrollments := make(map[pair]time.Time, len(f.enrollments))
	for k, v := range f.enrollments {
		enrollments[k] = v
	}

	if err := fn(f); err != nil {
		f.purchases = purchases
		f.enrollments = enrollments
		return err
	}
	return nil
}

type fakeProvider struct {
	requests []CheckoutRequest
	event    *Event
	parseErr error
}

func (p *fakeProvider) CreateCheckoutSession(_ context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	p.requests = append(p.requests, req)
	return &CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}, nil
}

func (p *fakeProvider) ParseWebhook([]byte, string) (*Event, error) {
	if p.parseErr != nil {
		return nil, p.parseErr
	}
	return p.event, nil
}

type failingSender struct {
	mu    sync.Mutex
	calls int
}

func (s *failingSender) Send(context.Context, mailer.Message) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return errors.New("sendgrid: 503")
}

type fakeNotifier struct {
	sent []notification.Message
}

func (n *fakeNotifier) Notify(_ context.Context, userID uuid.UUID, msg notification.Message) (*notification.Notification, error) {
	n.sent = append(n.sent, msg)
	return &notification.Notification{ID: uuid.New(), UserID: userID}, nil
}

type fakeRecomputer struct {
	calls int
}

func (r *fakeRecomputer) Recompute(_ context.Context, _ uuid.UUID, courseID uuid.UUID) (*progress.Snapshot, error) {
	r.calls++
	return &progress.Snapshot{CourseID: courseID}, nil
}
