package mailer

import (
	"context"
	"net/mail"
)

type Message struct {
	To      mail.Address
	Subject string
	Text    string
	HTML    string
}

// Sender delivers one message. Callers decide whether a failure matters.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New picks SendGrid when an API key is configured and the console sender
// otherwise.
func New(apiKey string, from mail.Address) Sender {
	if apiKey == "" {
		return NewConsoleSender(from)
	}
	return NewSendgridSender(apiKey, from)
}
