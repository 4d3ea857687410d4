package mailer

import (
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/salesops/hubspot-export/pkg/logging"
)

// SMTPConfig holds the outbound mail transport settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender delivers composed reminders over SMTP.
type Sender struct {
	dialer *gomail.Dialer
	from   string
	logger zerolog.Logger
}

// NewSender creates an SMTP sender.
func NewSender(cfg SMTPConfig) (*Sender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("from address is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}

	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logging.NewLogger("mailer"),
	}, nil
}

// Send delivers one reminder to one recipient.
func (s *Sender) Send(to Recipient, reminder Reminder) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to.Email)
	m.SetHeader("Subject", reminder.Subject)
	m.SetBody("text/html", reminder.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send reminder to %s: %w", to.Email, err)
	}

	s.logger.Info().
		Str("to", to.Email).
		Str("subject", reminder.Subject).
		Msg("Reminder sent")

	return nil
}
