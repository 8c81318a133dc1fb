// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/brisingire/gastronomie-verzeichnis/internal/documents"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/email"
)

// ErrFake is returned by fakes configured to fail.
var ErrFake = errors.New("fake failure")

// FakeMailer records sent messages.
type FakeMailer struct {
	mu   sync.Mutex
	sent []email.Message

	// Err is returned by Send when set.
	Err error
	// Block, when set, delays Send until it is closed.
	Block chan struct{}
	// Started receives a value when Send is entered.
	Started chan struct{}
}

// Send records m.
func (f *FakeMailer) Send(ctx context.Context, m email.Message) error {
	if f.Started != nil {
		f.Started <- struct{}{}
	}
	if f.Block != nil {
		select {
		case <-f.Block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if f.Err != nil {
		return f.Err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m)
	return nil
}

// Sent returns a copy of all sent messages.
func (f *FakeMailer) Sent() []email.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]email.Message(nil), f.sent...)
}

// FakeRenderer returns fixed document bytes.
type FakeRenderer struct {
	mu    sync.Mutex
	calls int

	// Err is returned by every method when set.
	Err error
}

// Report returns a fake JPEG.
func (f *FakeRenderer) Report(_ context.Context, in documents.Input) ([]byte, error) {
	return f.bytes("report:" + in.Slug)
}

// Certificate returns a fake PNG.
func (f *FakeRenderer) Certificate(_ context.Context, in documents.Input) ([]byte, error) {
	return f.bytes("certificate:" + in.Slug)
}

// Invoice returns a fake PDF with number GV-20250102-4711.
func (f *FakeRenderer) Invoice(_ context.Context, in documents.Input) (*documents.Invoice, error) {
	pdf, err := f.bytes("%PDF invoice:" + in.Slug)
	if err != nil {
		return nil, err
	}
	return &documents.Invoice{Number: "GV-20250102-4711", PDF: pdf}, nil
}

// Calls returns how many documents were requested.
func (f *FakeRenderer) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *FakeRenderer) bytes(s string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return []byte(s), nil
}

// FakeUploader keeps uploaded objects in memory.
type FakeUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string

	// Err is returned by Upload when set.
	Err error
}

// Upload stores data and returns https://cdn.test/<path>.
func (f *FakeUploader) Upload(_ context.Context, objectPath string, data []byte, contentType string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects == nil {
		f.objects = make(map[string][]byte)
		f.types = make(map[string]string)
	}
	f.objects[objectPath] = data
	f.types[objectPath] = contentType
	return "https://cdn.test/" + objectPath, nil
}

// Object returns the stored data and content type for path.
func (f *FakeUploader) Object(objectPath string) ([]byte, string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[objectPath]
	return data, f.types[objectPath], ok
}
