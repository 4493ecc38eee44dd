package smtp

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/go-account-api/internal/config"
	"golang.org/x/time/rate"
)

// Mailer sends emails. Implementations must be safe for concurrent use.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
	// Outbound throttle so a burst of signups cannot trip the provider's
	// sending limits. Waits for a slot rather than dropping mail.
	limiter *rate.Limiter
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		limiter:  rate.NewLimiter(rate.Limit(cfg.SMTPRatePerSec), cfg.SMTPBurst),
	}
}

func (m *mailer) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("mail throttle: %w", err)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
