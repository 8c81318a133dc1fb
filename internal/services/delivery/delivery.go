// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

// Package delivery unlocks verified documents for restaurant owners and
// publishes test reports.
package delivery

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/brisingire/gastronomie-verzeichnis/internal/documents"
	"github.com/brisingire/gastronomie-verzeichnis/internal/i18n"
	"github.com/brisingire/gastronomie-verzeichnis/internal/metrics"
	"github.com/brisingire/gastronomie-verzeichnis/internal/models"
	"github.com/brisingire/gastronomie-verzeichnis/internal/repository"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/email"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/verification"
	"github.com/brisingire/gastronomie-verzeichnis/internal/sse"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned for unknown slugs.
	ErrNotFound = repository.ErrNotFound
	// ErrInvalidCode is returned when the submitted code does not match.
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrAlreadyVerified is returned when the documents were already sent.
	ErrAlreadyVerified = errors.New("restaurant already verified")
	// ErrUnlockInProgress is returned while another request holds the claim.
	ErrUnlockInProgress = errors.New("unlock already in progress")
)

// DefaultClaimTTL is how long an unlock claim blocks other requests.
const DefaultClaimTTL = 10 * time.Minute

// Store is the persistence needed by the service.
type Store interface {
	GetRestaurantBySlug(ctx context.Context, slug string) (*models.Restaurant, error)
	ClaimUnlock(ctx context.Context, slug, code, token string, now, staleBefore time.Time) (bool, error)
	CompleteUnlock(ctx context.Context, slug, token string, now time.Time) (bool, error)
	ReleaseUnlock(ctx context.Context, slug, token string) error
	UpdateReportURL(ctx context.Context, slug, url string) error
	CreateDelivery(ctx context.Context, d *models.Delivery) error
}

// Renderer produces the three documents.
type Renderer interface {
	Report(ctx context.Context, in documents.Input) ([]byte, error)
	Certificate(ctx context.Context, in documents.Input) ([]byte, error)
	Invoice(ctx context.Context, in documents.Input) (*documents.Invoice, error)
}

// Mailer sends email.
type Mailer interface {
	Send(ctx context.Context, m email.Message) error
}

// Uploader stores objects publicly.
type Uploader interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error)
}

// Publisher notifies listeners of a restaurant.
type Publisher interface {
	Publish(topic, message string)
}

// Request is an unlock submission.
type Request struct {
	Slug  string
	Email string
	Code  string
}

// Bundle holds all documents of one restaurant.
type Bundle struct {
	Report      []byte
	Certificate []byte
	Invoice     *documents.Invoice
}

// Service runs the unlock flow and report publication.
type Service struct {
	store    Store
	renderer Renderer
	mailer   Mailer
	uploader Uploader
	events   Publisher

	// ClaimTTL after which an unfinished claim may be taken over.
	ClaimTTL time.Duration
	Now      func() time.Time
}

// New creates a Service. uploader and events may be nil.
func New(store Store, renderer Renderer, mailer Mailer, uploader Uploader, events Publisher) *Service {
	return &Service{
		store:    store,
		renderer: renderer,
		mailer:   mailer,
		uploader: uploader,
		events:   events,
		ClaimTTL: DefaultClaimTTL,
		Now:      time.Now,
	}
}

// InputFor maps a record to document input. A missing rating renders as 0.
func InputFor(rest *models.Restaurant) documents.Input {
	return documents.Input{
		Name:        rest.Name,
		Address:     rest.Address,
		City:        rest.City,
		Description: rest.Description,
		Slug:        rest.Slug,
		Rating:      rest.Score(),
	}
}

// Unlock checks the code, renders the documents, emails them to req.Email
// and marks the restaurant verified. At most one email is sent per
// restaurant.
func (s *Service) Unlock(ctx context.Context, req Request) error {
	rest, err := s.store.GetRestaurantBySlug(ctx, req.Slug)
	if err != nil {
		return fmt.Errorf("looking up restaurant %q: %w", req.Slug, err)
	}

	if !verification.Matches(rest.VerificationCode, req.Code) {
		metrics.UnlocksTotal.WithLabelValues("invalid_code").Inc()
		return ErrInvalidCode
	}
	if rest.Verified {
		metrics.UnlocksTotal.WithLabelValues("already_verified").Inc()
		return ErrAlreadyVerified
	}

	token := uuid.NewString()
	now := s.Now()
	claimed, err := s.store.ClaimUnlock(ctx, rest.Slug, rest.VerificationCode, token, now, now.Add(-s.ClaimTTL))
	if err != nil {
		return fmt.Errorf("claiming unlock: %w", err)
	}
	if !claimed {
		return s.claimConflict(ctx, rest.Slug)
	}

	// Bookkeeping after this point must not be skipped because the client
	// went away.
	bgCtx := context.WithoutCancel(ctx)

	invoiceNumber, err := s.dispatch(ctx, rest, req.Email)
	if err != nil {
		if rerr := s.store.ReleaseUnlock(bgCtx, rest.Slug, token); rerr != nil {
			slog.ErrorContext(ctx, "unlock_release_failed", "slug", rest.Slug, "error", rerr)
		}
		s.record(bgCtx, rest, req.Email, invoiceNumber, err)
		metrics.UnlocksTotal.WithLabelValues("failed").Inc()
		return err
	}

	done, err := s.store.CompleteUnlock(bgCtx, rest.Slug, token, s.Now())
	switch {
	case err != nil:
		slog.ErrorContext(ctx, "unlock_complete_failed", "slug", rest.Slug, "error", err)
	case !done:
		slog.WarnContext(ctx, "unlock_claim_lost", "slug", rest.Slug)
	}
	s.record(bgCtx, rest, req.Email, invoiceNumber, nil)
	s.publish(rest.Slug, sse.EventVerified, map[string]any{"slug": rest.Slug, "verified": true})
	metrics.UnlocksTotal.WithLabelValues("success").Inc()

	slog.InfoContext(ctx, "restaurant_unlocked", "slug", rest.Slug, "invoice", invoiceNumber)
	return nil
}

func (s *Service) claimConflict(ctx context.Context, slug string) error {
	metrics.UnlocksTotal.WithLabelValues("conflict").Inc()

	rest, err := s.store.GetRestaurantBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("looking up restaurant %q: %w", slug, err)
	}
	if rest.Verified {
		return ErrAlreadyVerified
	}
	return ErrUnlockInProgress
}

// dispatch renders and sends the documents and returns the invoice number.
func (s *Service) dispatch(ctx context.Context, rest *models.Restaurant, to string) (string, error) {
	bundle, err := s.render(ctx, rest)
	if err != nil {
		return "", err
	}

	data := map[string]any{"Name": rest.Name}
	htmlData := map[string]any{"Name": html.EscapeString(rest.Name)}
	msg := email.Message{
		To:      to,
		Subject: i18n.TData(ctx, "email_subject", data),
		Text:    i18n.TData(ctx, "email_text", data),
		HTML:    i18n.TData(ctx, "email_html", htmlData),
		Attachments: []email.Attachment{
			attachment(bundle.Report, fmt.Sprintf("Testbericht_%s.png", rest.Slug), "image/png"),
			attachment(bundle.Certificate, fmt.Sprintf("Zertifikat_%s.png", rest.Slug), "image/png"),
			attachment(bundle.Invoice.PDF, fmt.Sprintf("Rechnung_%s.pdf", rest.Slug), "application/pdf"),
		},
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("failed").Inc()
		return bundle.Invoice.Number, fmt.Errorf("sending documents: %w", err)
	}
	metrics.EmailsSentTotal.WithLabelValues("sent").Inc()

	return bundle.Invoice.Number, nil
}

func attachment(data []byte, filename, contentType string) email.Attachment {
	return email.Attachment{
		Content:     base64.StdEncoding.EncodeToString(data),
		Filename:    filename,
		ContentType: contentType,
		Disposition: email.DispositionAttachment,
	}
}

func (s *Service) render(ctx context.Context, rest *models.Restaurant) (*Bundle, error) {
	in := InputFor(rest)

	report, err := timed("report", func() ([]byte, error) { return s.renderer.Report(ctx, in) })
	if err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	certificate, err := timed("certificate", func() ([]byte, error) { return s.renderer.Certificate(ctx, in) })
	if err != nil {
		return nil, fmt.Errorf("rendering certificate: %w", err)
	}
	invoice, err := timed("invoice", func() (*documents.Invoice, error) { return s.renderer.Invoice(ctx, in) })
	if err != nil {
		return nil, fmt.Errorf("rendering invoice: %w", err)
	}

	return &Bundle{Report: report, Certificate: certificate, Invoice: invoice}, nil
}

func timed[T any](kind string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	if err == nil {
		metrics.DocumentRenderDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		metrics.DocumentsRenderedTotal.WithLabelValues(kind).Inc()
	}
	return v, err
}

func (s *Service) record(ctx context.Context, rest *models.Restaurant, to, invoiceNumber string, sendErr error) {
	d := &models.Delivery{
		RestaurantID:  rest.ID,
		Email:         to,
		InvoiceNumber: invoiceNumber,
		Status:        models.DeliverySent,
	}
	if sendErr != nil {
		d.Status = models.DeliveryFailed
		d.Error = sendErr.Error()
	}
	if err := s.store.CreateDelivery(ctx, d); err != nil {
		slog.ErrorContext(ctx, "delivery_record_failed", "slug", rest.Slug, "error", err)
	}
}

func (s *Service) publish(slug, event string, payload any) {
	if s.events == nil {
		return
	}
	msg, err := sse.FormatJSONEvent(event, payload)
	if err != nil {
		slog.Error("event_encode_failed", "slug", slug, "event", event, "error", err)
		return
	}
	s.events.Publish(slug, msg)
}

// RegenerateReport renders the report of slug, uploads it as {slug}.jpg and
// stores the public URL.
func (s *Service) RegenerateReport(ctx context.Context, slug string) (string, error) {
	if s.uploader == nil {
		return "", errors.New("no object store configured")
	}

	rest, err := s.store.GetRestaurantBySlug(ctx, slug)
	if err != nil {
		return "", fmt.Errorf("looking up restaurant %q: %w", slug, err)
	}

	in := InputFor(rest)
	report, err := timed("report", func() ([]byte, error) { return s.renderer.Report(ctx, in) })
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}

	url, err := s.uploader.Upload(ctx, rest.Slug+".jpg", report, "image/jpeg")
	if err != nil {
		metrics.ReportUploadsTotal.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("uploading report: %w", err)
	}
	metrics.ReportUploadsTotal.WithLabelValues("ok").Inc()

	if err := s.store.UpdateReportURL(ctx, rest.Slug, url); err != nil {
		return "", fmt.Errorf("saving report URL: %w", err)
	}

	s.publish(rest.Slug, sse.EventReport, map[string]any{"slug": rest.Slug, "url": url})
	slog.InfoContext(ctx, "report_published", "slug", rest.Slug, "url", url)
	return url, nil
}

// Invoice renders a fresh invoice for slug.
func (s *Service) Invoice(ctx context.Context, slug string) (*documents.Invoice, error) {
	rest, err := s.store.GetRestaurantBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("looking up restaurant %q: %w", slug, err)
	}

	invoice, err := timed("invoice", func() (*documents.Invoice, error) { return s.renderer.Invoice(ctx, InputFor(rest)) })
	if err != nil {
		return nil, fmt.Errorf("rendering invoice: %w", err)
	}
	return invoice, nil
}

// Render produces all documents of slug without sending or storing them.
func (s *Service) Render(ctx context.Context, slug string) (*Bundle, error) {
	rest, err := s.store.GetRestaurantBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("looking up restaurant %q: %w", slug, err)
	}
	return s.render(ctx, rest)
}
