package mailer

import (
	"context"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	FromName string `envconfig:"SMTP_FROM_NAME" default:"Seminar Management System"`

	Department string `envconfig:"DEPARTMENT_NAME"`
	College    string `envconfig:"COLLEGE_NAME"`
	University string `envconfig:"UNIVERSITY_NAME"`
	Address    string `envconfig:"COLLEGE_ADDRESS"`
}

// Sender delivers a single HTML message. Delivery failure is a
// reportable, non-fatal error for every caller.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	cfg    Config
}

func New(cfg Config) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		cfg:    cfg,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()
	select {
	case err := <-done:
		return errors.Wrap(err, "smtp send")
	case <-ctx.Done():
		return ctx.Err()
	}
}
