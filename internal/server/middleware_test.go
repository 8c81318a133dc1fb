// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brisingire/gastronomie-verzeichnis/internal/config"
	"github.com/brisingire/gastronomie-verzeichnis/internal/handlers"
	"github.com/brisingire/gastronomie-verzeichnis/internal/i18n"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCacheHeaders(t *testing.T) {
	e := echo.New()
	e.Use(reportCacheHeaders())
	e.GET("/*", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	tests := []struct {
		path     string
		expected string
	}{
		{"/reports/zur-linde.jpg", "no-cache"},
		{"/reports/sub/ochsen.jpg", "no-cache"},
		{"/reportsx/zur-linde.jpg", ""},
		{"/api/restaurants", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Header().Get("Cache-Control"))
		})
	}
}

func TestI18nMiddleware(t *testing.T) {
	require.NoError(t, i18n.Init())

	e := echo.New()
	e.Use(i18nMiddleware())

	var locale string
	e.GET("/", func(c echo.Context) error {
		locale = i18n.GetLocale(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
		prefix string
	}{
		{"English header", "en-US", "en"},
		{"German header", "de-DE", "de"},
		{"no header defaults to German", "", "de"},
		{"unsupported language falls back to German", "fr-FR", "de"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.True(t, strings.HasPrefix(locale, tt.prefix), "expected locale to start with %q, got %s", tt.prefix, locale)
		})
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	assert.Nil(t, rateLimiter(config.RateLimitConfig{Rate: 0, Burst: 10}))
	assert.Nil(t, rateLimiter(config.RateLimitConfig{Rate: -1}))
}

func TestRateLimiter_DeniesAfterBurst(t *testing.T) {
	require.NoError(t, i18n.Init())

	e := echo.New()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler
	limiter := rateLimiter(config.RateLimitConfig{Rate: 0.001, Burst: 2})
	require.NotNil(t, limiter)
	e.GET("/api/restaurants", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, limiter)

	do := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/restaurants", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("192.0.2.1:4000").Code)
	assert.Equal(t, http.StatusOK, do("192.0.2.1:4001").Code)

	rec := do("192.0.2.1:4002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"rate_limited"`)

	// Other clients have their own bucket
	assert.Equal(t, http.StatusOK, do("192.0.2.2:4000").Code)
}

func TestCORSMiddleware(t *testing.T) {
	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	t.Run("allows all origins by default", func(t *testing.T) {
		e := echo.New()
		e.Use(corsMiddleware(nil))
		e.GET("/api/restaurants", handler)

		req := httptest.NewRequest(http.MethodGet, "/api/restaurants", nil)
		req.Header.Set(echo.HeaderOrigin, "https://gastronomie-verzeichnis.de")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})

	t.Run("restricts configured origins", func(t *testing.T) {
		e := echo.New()
		e.Use(corsMiddleware([]string{"https://gastronomie-verzeichnis.de"}))
		e.GET("/api/restaurants", handler)

		req := httptest.NewRequest(http.MethodGet, "/api/restaurants", nil)
		req.Header.Set(echo.HeaderOrigin, "https://gastronomie-verzeichnis.de")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, "https://gastronomie-verzeichnis.de", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

		req = httptest.NewRequest(http.MethodGet, "/api/restaurants", nil)
		req.Header.Set(echo.HeaderOrigin, "https://evil.example")
		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})
}

func TestIsEventStream(t *testing.T) {
	e := echo.New()
	tests := []struct {
		path     string
		expected bool
	}{
		{"/api/restaurant/zur-linde/events", true},
		{"/api/restaurant/zur-linde", false},
		{"/api/restaurants", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			c := e.NewContext(req, httptest.NewRecorder())
			assert.Equal(t, tt.expected, isEventStream(c))
		})
	}
}
