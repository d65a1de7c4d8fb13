// Package contact validates contact form submissions and delivers them by
// email.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"unicode/utf8"
)

// MaxBodyLen bounds the message text, in characters.
const MaxBodyLen = 5000

var (
	// ErrNotConfigured means SMTP credentials are missing.
	ErrNotConfigured = errors.New("SMTP credentials not configured")
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("invalid message")
)

// Message is one contact form submission.
type Message struct {
	Name  string
	Email string
	Body  string
}

// Normalize trims surrounding whitespace from every field.
func (m Message) Normalize() Message {
	return Message{
		Name:  strings.TrimSpace(m.Name),
		Email: strings.TrimSpace(m.Email),
		Body:  strings.TrimSpace(m.Body),
	}
}

// Validate reports the first problem with m, wrapped in ErrInvalid.
func (m Message) Validate() error {
	switch {
	case m.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalid)
	case strings.ContainsAny(m.Name, "\r\n"):
		return fmt.Errorf("%w: name must be a single line", ErrInvalid)
	case m.Email == "":
		return fmt.Errorf("%w: email is required", ErrInvalid)
	case m.Body == "":
		return fmt.Errorf("%w: message is required", ErrInvalid)
	case utf8.RuneCountInString(m.Body) > MaxBodyLen:
		return fmt.Errorf("%w: message is longer than %d characters", ErrInvalid, MaxBodyLen)
	}
	addr, err := mail.ParseAddress(m.Email)
	if err != nil || addr.Address != m.Email {
		return fmt.Errorf("%w: email address is not valid", ErrInvalid)
	}
	return nil
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// SMTPConfig holds the outgoing mail settings.
type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
	To   string `mapstructure:"to"`
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends messages through an SMTP relay with PLAIN auth.
type SMTPMailer struct {
	cfg  SMTPConfig
	send sendFunc
}

// NewSMTPMailer returns a mailer for cfg.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

// Configured reports whether credentials and a recipient are present.
func (s *SMTPMailer) Configured() bool {
	return s.cfg.User != "" && s.cfg.Pass != "" && s.cfg.Host != "" && s.cfg.To != ""
}

// Send validates m and relays it. The reply-to header carries the sender's
// address.
func (s *SMTPMailer) Send(ctx context.Context, m Message) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	m = m.Normalize()
	if err := m.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	if err := s.send(addr, auth, s.cfg.User, []string{s.cfg.To}, s.compose(m)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (s *SMTPMailer) compose(m Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", s.cfg.To)
	fmt.Fprintf(&b, "Subject: Portfolio Contact: %s\r\n", m.Name)
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.User)
	fmt.Fprintf(&b, "Reply-To: %s\r\n", m.Email)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("New contact form submission from your portfolio:\r\n\r\n")
	fmt.Fprintf(&b, "Name: %s\r\n", m.Name)
	fmt.Fprintf(&b, "Email: %s\r\n", m.Email)
	b.WriteString("Message:\r\n")
	body := strings.ReplaceAll(m.Body, "\r\n", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n\r\n---\r\nSent from your portfolio contact form\r\n")
	return []byte(b.String())
}
