// Package email renders and delivers outbound mail. The identity service
// hands fully rendered messages to a Sender; delivery mechanics stay out
// of the service layer.
package email

import "context"

// Message is a rendered email, ready to deliver.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
