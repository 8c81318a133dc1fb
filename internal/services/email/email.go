// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brisingire/gastronomie-verzeichnis/internal/config"
	"github.com/wneessen/go-mail"
)

// Attachment dispositions.
const (
	DispositionAttachment = "attachment"
	DispositionInline     = "inline"
)

// Attachment is a file sent along with a message. Content is base64 encoded.
type Attachment struct {
	Content     string
	Filename    string
	ContentType string
	Disposition string
	// ContentID is only used for inline attachments.
	ContentID string
}

// Message is an email with plain text and HTML bodies.
type Message struct {
	To          string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Service sends email via SMTP.
type Service struct {
	cfg *config.SMTPConfig
}

// NewService creates a new email service.
func NewService(cfg *config.SMTPConfig) (*Service, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	return &Service{cfg: cfg}, nil
}

// Send delivers m in a single SMTP session.
func (s *Service) Send(ctx context.Context, m Message) error {
	msg, err := s.Compose(m)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}

// Compose builds the MIME message for m without sending it.
func (s *Service) Compose(m Message) (*mail.Msg, error) {
	files, err := decodeAttachments(m.Attachments)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(m.Subject)
	switch {
	case m.Text != "" && m.HTML != "":
		msg.SetBodyString(mail.TypeTextPlain, m.Text)
		msg.AddAlternativeString(mail.TypeTextHTML, m.HTML)
	case m.HTML != "":
		msg.SetBodyString(mail.TypeTextHTML, m.HTML)
	default:
		msg.SetBodyString(mail.TypeTextPlain, m.Text)
	}

	for i, a := range m.Attachments {
		opts := []mail.FileOption{mail.WithFileContentType(mail.ContentType(a.ContentType))}
		if a.Disposition == DispositionInline {
			if a.ContentID != "" {
				opts = append(opts, mail.WithFileContentID(a.ContentID))
			}
			err = msg.EmbedReader(a.Filename, bytes.NewReader(files[i]), opts...)
		} else {
			err = msg.AttachReader(a.Filename, bytes.NewReader(files[i]), opts...)
		}
		if err != nil {
			return nil, fmt.Errorf("attaching %q: %w", a.Filename, err)
		}
	}

	return msg, nil
}

func (s *Service) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	// Configure TLS based on config and port
	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Use implicit TLS (SSL) for port 465, STARTTLS for others
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	// Add authentication if credentials are provided
	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	return opts
}

func decodeAttachments(attachments []Attachment) ([][]byte, error) {
	files := make([][]byte, len(attachments))
	for i, a := range attachments {
		data, err := base64.StdEncoding.DecodeString(a.Content)
		if err != nil {
			return nil, fmt.Errorf("decoding attachment %q: %w", a.Filename, err)
		}
		files[i] = data
	}
	return files, nil
}

// ErrNotSent is returned by LogService. Callers must treat it like any other
// delivery failure.
var ErrNotSent = errors.New("email not sent: SMTP is not configured")

// LogService logs messages instead of sending them. It is used when no SMTP
// host is configured. Send always fails with ErrNotSent so nothing that
// depends on a delivered message is committed.
type LogService struct{}

// Send implements the same contract as Service.Send.
func (LogService) Send(ctx context.Context, m Message) error {
	files, err := decodeAttachments(m.Attachments)
	if err != nil {
		return err
	}

	attrs := []any{"to", m.To, "subject", m.Subject, "attachments", len(files)}
	for i, a := range m.Attachments {
		attrs = append(attrs, fmt.Sprintf("attachment_%d", i), fmt.Sprintf("%s (%s, %d bytes)", a.Filename, a.ContentType, len(files[i])))
	}
	slog.WarnContext(ctx, "email_not_sent_smtp_disabled", attrs...)
	return ErrNotSent
}
