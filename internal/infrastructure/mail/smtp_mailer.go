// Package mail sends plain-text mail over SMTP.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	notificationapp "github.com/dormsync/backend/internal/application/notification"
	"github.com/dormsync/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var _ notificationapp.Mailer = (*SMTPMailer)(nil)

// sendFunc is swapped in tests
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends mail through a plain SMTP relay
type SMTPMailer struct {
	addr   string
	auth   smtp.Auth
	from   string
	send   sendFunc
	logger *zap.Logger
}

// NewSMTPMailer creates a mailer, or nil when no host is configured.
// Callers skip mail on nil.
func NewSMTPMailer(cfg config.MailConfig, logger *zap.Logger) *SMTPMailer {
	if cfg.Host == "" {
		return nil
	}

	port := cfg.Port
	if port == 0 {
		port = 587
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &SMTPMailer{
		addr:   fmt.Sprintf("%s:%d", cfg.Host, port),
		auth:   auth,
		from:   from,
		send:   smtp.SendMail,
		logger: logger,
	}
}

// Send delivers one plain-text message to all recipients. The wait is
// bounded by ctx; net/smtp itself has no deadline, so on timeout the
// send goroutine is abandoned and its eventual result dropped.
func (m *SMTPMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(m.from, to, subject, body)
	errCh := make(chan error, 1)
	go func() {
		errCh <- m.send(m.addr, m.auth, m.from, to, msg)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("smtp send aborted: %w", ctx.Err())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("smtp send failed: %w", err)
		}
	}

	m.logger.Debug("Mail sent",
		zap.Int("recipients", len(to)),
		zap.String("subject", subject))
	return nil
}

func buildMessage(from string, to []string, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
