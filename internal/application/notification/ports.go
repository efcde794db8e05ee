package notification

import "context"

// Pusher delivers a push notification to a registered device token.
// Implemented by the infrastructure push dispatcher.
type Pusher interface {
	Push(ctx context.Context, token, title, body string) error
}

// Mailer sends plain-text mail. Implemented by the infrastructure SMTP
// mailer.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}
