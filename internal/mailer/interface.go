package mailer

import "context"

// Message is one summary email.
type Message struct {
	Summary    string
	Recipients []string
}

// Mailer composes and delivers summary emails.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// transport hands a fully encoded message to a mail system.
type transport interface {
	deliver(ctx context.Context, from string, to []string, raw []byte) error
}
