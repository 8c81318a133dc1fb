// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package i18n_test

import (
	"context"
	"testing"

	"github.com/brisingire/gastronomie-verzeichnis/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestInit(t *testing.T) {
	err := i18n.Init()
	require.NoError(t, err)
}

func TestT(t *testing.T) {
	require.NoError(t, i18n.Init())

	ctx := i18n.WithLocale(context.Background(), language.English)

	assert.Equal(t, "Restaurant not found.", i18n.T(ctx, "error_not_found"))
}

func TestT_German(t *testing.T) {
	require.NoError(t, i18n.Init())

	ctx := i18n.WithLocale(context.Background(), language.German)

	assert.Equal(t, "Ungültiger Verifizierungscode.", i18n.T(ctx, "error_invalid_code"))
}

func TestT_UnknownKey(t *testing.T) {
	require.NoError(t, i18n.Init())

	ctx := i18n.WithLocale(context.Background(), language.English)

	// Should return the key itself for unknown messages
	result := i18n.T(ctx, "unknown_key_that_does_not_exist")
	assert.Equal(t, "unknown_key_that_does_not_exist", result)
}

func TestT_NoLocaleContext(t *testing.T) {
	require.NoError(t, i18n.Init())

	// Without WithLocale, German is used
	result := i18n.T(context.Background(), "error_not_found")
	assert.Equal(t, "Restaurant nicht gefunden.", result)
}

func TestTData_EmailSubject(t *testing.T) {
	require.NoError(t, i18n.Init())

	ctx := i18n.WithLocale(context.Background(), language.German)

	result := i18n.TData(ctx, "email_subject", map[string]any{"Name": "Zur Linde"})
	assert.Equal(t, `Ihr Testbericht, Zertifikat & Rechnung für "Zur Linde"`, result)
}

func TestTData_EmailBodies(t *testing.T) {
	require.NoError(t, i18n.Init())

	ctx := i18n.WithLocale(context.Background(), language.German)
	data := map[string]any{"Name": "Zur Linde"}

	text := i18n.TData(ctx, "email_text", data)
	assert.True(t, len(text) > 0 && text[0] == 'H', "leading newline trimmed")
	assert.Contains(t, text, `"Zur Linde"`)
	assert.Contains(t, text, "Rechnung (PDF)")

	html := i18n.TData(ctx, "email_html", data)
	assert.Contains(t, html, "<strong>Zur Linde</strong>")
	assert.Contains(t, html, "<li>Die Rechnung als <em>PDF</em></li>")
}

func TestCatalogsComplete(t *testing.T) {
	require.NoError(t, i18n.Init())

	keys := []string{
		"app_name", "email_subject", "email_text", "email_html",
		"error_missing_parameter", "error_invalid_request", "error_invalid_email",
		"error_not_found", "error_invalid_code", "error_already_verified",
		"error_unlock_in_progress", "error_rate_limited", "error_send_failed",
		"error_upload_failed", "error_render_failed", "error_internal",
	}
	for _, tag := range []language.Tag{language.German, language.English} {
		ctx := i18n.WithLocale(context.Background(), tag)
		for _, key := range keys {
			assert.NotEqual(t, key, i18n.TData(ctx, key, map[string]any{"Name": "X"}), "%s/%s", tag, key)
		}
	}
}

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		expected       language.Tag
		acceptLanguage string
	}{
		{language.English, "en"},
		{language.English, "en-US"},
		{language.German, "de"},
		{language.German, "de-DE"},
		{language.German, "de-AT"},
		{language.German, "fr"}, // fallback to German
		{language.German, ""},   // empty defaults to German
		{language.German, "de, en;q=0.9"},
		{language.English, "en, de;q=0.9"},
	}

	for _, tt := range tests {
		t.Run(tt.acceptLanguage, func(t *testing.T) {
			tag := i18n.MatchLanguage(tt.acceptLanguage)
			// Compare base language (ignore region)
			assert.Equal(t, tt.expected.String()[:2], tag.String()[:2])
		})
	}
}

func TestWithLocale(t *testing.T) {
	require.NoError(t, i18n.Init())

	ctx := i18n.WithLocale(context.Background(), language.German)

	locale := i18n.GetLocale(ctx)
	assert.Equal(t, "de", locale)
}

func TestGetLocale(t *testing.T) {
	require.NoError(t, i18n.Init())

	ctx := i18n.WithLocale(context.Background(), language.English)

	assert.Equal(t, "en", i18n.GetLocale(ctx))
}

func TestGetLocale_Default(t *testing.T) {
	assert.Equal(t, "de", i18n.GetLocale(context.Background()))
}
