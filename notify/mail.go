// Package notify renders scan matches and mails them.
package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"

	"github.com/rustyeddy/dojiwatch/config"
	"github.com/rustyeddy/dojiwatch/scan"
)

const smtpTimeout = 30 * time.Second

// SendFunc delivers a built message.
type SendFunc func(ctx context.Context, msg *mail.Msg) error

// Mailer sends the match report over SMTP with implicit TLS and PLAIN auth.
type Mailer struct {
	host        string
	port        int
	user        string
	password    string
	to          string
	subject     string
	maxRangePct float64

	tlsConfig *tls.Config
	client    *mail.Client
	send      SendFunc
	now       func() time.Time
}

var _ scan.Notifier = (*Mailer)(nil)

type MailerOption func(*Mailer)

// WithSender replaces SMTP delivery.
func WithSender(f SendFunc) MailerOption {
	return func(m *Mailer) { m.send = f }
}

func WithNow(now func() time.Time) MailerOption {
	return func(m *Mailer) { m.now = now }
}

// WithTLSConfig replaces the TLS settings used to reach the relay.
func WithTLSConfig(c *tls.Config) MailerOption {
	return func(m *Mailer) { m.tlsConfig = c }
}

// NewMailer builds a Mailer from cfg. The credentials must already be loaded.
func NewMailer(cfg *config.Config, opts ...MailerOption) (*Mailer, error) {
	if err := cfg.Credentials.Validate(); err != nil {
		return nil, err
	}
	if cfg.Mail.Host == "" || cfg.Mail.Port <= 0 {
		return nil, fmt.Errorf("notify: mail host and port are required")
	}

	m := &Mailer{
		host:        cfg.Mail.Host,
		port:        cfg.Mail.Port,
		user:        cfg.Credentials.User,
		password:    cfg.Credentials.Password,
		to:          cfg.Recipient(),
		subject:     cfg.Mail.Subject,
		maxRangePct: cfg.Pattern.MaxRangePct,
		tlsConfig:   &tls.Config{ServerName: cfg.Mail.Host, MinVersion: tls.VersionTLS12},
		now:         time.Now,
	}
	for _, o := range opts {
		o(m)
	}

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSSL(),
		mail.WithTLSConfig(m.tlsConfig),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.user),
		mail.WithPassword(m.password),
		mail.WithTimeout(smtpTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("notify: smtp client: %w", err)
	}
	m.client = client
	if m.send == nil {
		m.send = m.dialAndSend
	}
	return m, nil
}

// Notify renders matches and sends one message.
func (m *Mailer) Notify(ctx context.Context, matches []scan.Match) error {
	msg, err := m.Message(matches)
	if err != nil {
		return err
	}
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("send mail via %s: %w", addr, err)
	}
	log.Info().Str("to", m.to).Int("matches", len(matches)).Msg("report sent")
	return nil
}

// Message builds the text/html alternative message for matches.
func (m *Mailer) Message(matches []scan.Match) (*mail.Msg, error) {
	html, err := RenderHTML(matches, m.maxRangePct)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.user); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(m.to); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	msg.Subject(m.subject)
	msg.SetDateWithValue(m.now())
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextPlain, RenderText(matches))
	msg.AddAlternativeString(mail.TypeTextHTML, html)
	return msg, nil
}

func (m *Mailer) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	return m.client.DialAndSendWithContext(ctx, msg)
}
