package notify

import (
	"context"
	"errors"

	"gopkg.in/gomail.v2"

	"coparent/internal/config"
)

type smtpSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends mail through an SMTP relay such as the SES SMTP interface.
type SMTPMailer struct {
	dialer smtpSender
	from   string
}

// NewSMTPMailer returns a mailer; without SMTP_HOST every Send reports ErrDisabled.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	m := &SMTPMailer{from: cfg.Sender}
	if cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return m
}

func (m *SMTPMailer) Send(ctx context.Context, e Email) error {
	if m.dialer == nil {
		return ErrDisabled
	}
	if len(e.To) == 0 {
		return errors.New("email has no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.dialer.DialAndSend(m.message(e))
}

func (m *SMTPMailer) message(e Email) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", e.To...)
	msg.SetHeader("Subject", e.Subject)
	msg.SetBody("text/html", e.HTML)
	return msg
}
