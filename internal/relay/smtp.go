package relay

import (
	"context"
	"fmt"
	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func (c SMTPConfig) Complete() bool {
	return c.Host != "" && c.Port > 0 && c.User != "" && c.Pass != ""
}

// SMTPMailer sends plain-text mail, the format email-to-fax gateways accept.
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer returns ErrNotConfigured when any credential is missing.
func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if !cfg.Complete() {
		return nil, ErrNotConfigured
	}
	if cfg.From == "" {
		cfg.From = "orders@example.com"
	}
	return &SMTPMailer{cfg: cfg}, nil
}

func (s *SMTPMailer) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.User),
		mail.WithPassword(s.cfg.Pass),
	}
	if s.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSOpportunistic))
	}
	return mail.NewClient(s.cfg.Host, opts...)
}

func (s *SMTPMailer) Send(ctx context.Context, m Message) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.Body)

	c, err := s.client()
	if err != nil {
		return err
	}
	return c.DialAndSendWithContext(ctx, msg)
}
