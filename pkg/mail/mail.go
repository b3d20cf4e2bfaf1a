// Package mail sends plain-text notification messages.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/hugh/plantnet/pkg/config"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP mailer when the config has a host, otherwise a mailer
// that only logs.
func New(cfg *config.MailConfig, logger *slog.Logger) Mailer {
	if cfg.Enabled() {
		return NewSMTPMailer(cfg)
	}
	return NewLogMailer(logger)
}

type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg *config.MailConfig) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{
		addr: cfg.Addr(),
		from: cfg.From,
		auth: auth,
		send: smtp.SendMail,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.To == "" {
		return fmt.Errorf("mail: empty recipient")
	}
	if err := m.send(m.addr, m.auth, m.from, []string{msg.To}, render(m.from, msg)); err != nil {
		return fmt.Errorf("sending mail to %s: %w", msg.To, err)
	}
	return nil
}

func render(from string, msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", stripCRLF(msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}

func stripCRLF(s string) string {
	return strings.NewReplacer("\r", "", "\n", " ").Replace(s)
}

type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("mail not configured, dropping message",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
