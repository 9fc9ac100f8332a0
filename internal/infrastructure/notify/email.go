// Package notify delivers the side effects of workflow transitions: HTML
// email over SMTP and realtime events over Redis pub/sub. Both channels are
// best-effort; failures are counted and logged, never surfaced to callers.
package notify

import (
	"time"

	mail "github.com/go-mail/mail/v2"
	"github.com/rs/zerolog"

	"github.com/planning-insights/editorial-system/internal/api/metrics"
	"github.com/planning-insights/editorial-system/internal/core/ports"
)

// EmailSender sends workflow emails over SMTP.
type EmailSender struct {
	dialer *mail.Dialer
	from   string
	log    zerolog.Logger
}

// SMTPConfig holds the SMTP connection settings.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func NewEmailSender(cfg SMTPConfig, log zerolog.Logger) *EmailSender {
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	d.Timeout = 15 * time.Second
	return &EmailSender{dialer: d, from: cfg.From, log: log}
}

// Send delivers one HTML email. The error is returned for accounting but the
// message is not retried.
func (s *EmailSender) Send(msg ports.EmailMessage) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		metrics.NotificationsTotal.WithLabelValues("email", "error").Inc()
		s.log.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("email delivery failed")
		return err
	}

	metrics.NotificationsTotal.WithLabelValues("email", "ok").Inc()
	s.log.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("email sent")
	return nil
}
