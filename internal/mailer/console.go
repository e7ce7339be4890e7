package mailer

import (
	"context"
	"net/mail"
	"sync"

	"github.com/saulo-duarte/academy-lambda/internal/config"
)

// ConsoleSender logs messages instead of sending them and keeps a copy of
// each one.
type ConsoleSender struct {
	from mail.Address

	mu   sync.Mutex
	sent []Message
}

func NewConsoleSender(from mail.Address) *ConsoleSender {
	return &ConsoleSender{from: from}
}

func (s *ConsoleSender) Send(ctx context.Context, msg Message) error {
	config.WithContext(ctx).
		WithField("from", s.from.String()).
		WithField("to", msg.To.String()).
		WithField("subject", msg.Subject).
		Info(msg.Text)

	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	return nil
}

func (s *ConsoleSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.sent))
	copy(out, s.sent)
	return out
}
