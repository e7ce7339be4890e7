package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

// CheckoutRequest describes the session to open with the payment provider.
// PriceID is used for subscriptions, Amount/Currency/Title for one-off
// course purchases.
type CheckoutRequest struct {
	Mode          Mode
	UserID        uuid.UUID
	CourseID      uuid.UUID
	Title         string
	Amount        int64
	Currency      string
	PriceID       string
	CustomerID    string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// Event is the subset of a provider webhook event the reconciler acts on.
type Event struct {
	ID           string
	Type         string
	Session      *CompletedSession
	Subscription *Subscription
}

type CompletedSession struct {
	ID             string
	Mode           Mode
	Metadata       map[string]string
	ClientRefID    string
	CustomerID     string
	SubscriptionID string
	AmountTotal    int64
	Currency       string
	CustomerEmail  string
	CustomerName   string
}

type Subscription struct {
	ID         string
	CustomerID string
}

type Provider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	// ParseWebhook verifies signature against payload and decodes the event.
	// Verification failures wrap ErrInvalidSignature.
	ParseWebhook(payload []byte, signature string) (*Event, error)
}
