// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/brisingire/gastronomie-verzeichnis/internal/config"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/storage"
	"github.com/brisingire/gastronomie-verzeichnis/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Server: config.ServerConfig{
			Host:        "localhost",
			Port:        8080,
			BaseURL:     "http://localhost:8080",
			MaxBodySize: 1,
		},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			DSN:    filepath.Join(dir, "app.db"),
		},
		Storage: config.StorageConfig{
			Driver:    storage.DriverLocal,
			Dir:       filepath.Join(dir, "reports"),
			PublicURL: "http://localhost:8080/reports",
		},
		Unlock: config.UnlockConfig{ClaimTTL: time.Minute},
		Invoice: config.InvoiceConfig{
			Bank:  "Testbank",
			IBAN:  "DE00 0000",
			BIC:   "TESTDEFF",
			Price: 29,
		},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestNewApp_UnknownDatabaseDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"

	_, err := NewApp(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewApp_UnknownStorageDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = "ftp"

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage")
}

func TestNewApp_RedisUnavailable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Redis.URL = "redis://127.0.0.1:1"

	_, err := NewApp(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewApp_ClaimTTLFromConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Unlock.ClaimTTL = 3 * time.Minute

	app := newTestApp(t, cfg)
	assert.Equal(t, 3*time.Minute, app.Delivery.ClaimTTL)
	assert.IsType(t, &storage.LocalStore{}, app.Store)
}

func TestServer_EndToEnd(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Redis = config.RedisConfig{URL: "redis://" + mr.Addr(), SuggestTTL: time.Minute}

	app := newTestApp(t, cfg)
	testutil.NewTestRestaurant(t, app.Repo, "zur-linde", testutil.WithName("Zur Linde"))
	e := NewEcho(app)

	t.Run("health", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("trailing slash is ignored", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/restaurant/zur-linde/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"slug":"zur-linde"`)
	})

	t.Run("unknown route answers JSON", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error":"not_found"`)
	})

	t.Run("suggest is cached in redis", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/suggest?query=Linde", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Zur Linde (Heidenheim)")
		assert.NotEmpty(t, mr.Keys())
	})

	t.Run("report is regenerated and served", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/generate-test?slug=zur-linde", nil))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			Success bool   `json:"success"`
			URL     string `json:"url"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "http://localhost:8080/reports/zur-linde.jpg", resp.URL)

		rec = serve(e, httptest.NewRequest(http.MethodGet, "/reports/zur-linde.jpg", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
		assert.Equal(t, []byte{0xFF, 0xD8}, rec.Body.Bytes()[:2])
	})

	t.Run("invoice download", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/generate-invoice?slug=zur-linde", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
		assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
	})

	t.Run("unlock without SMTP keeps the restaurant locked", func(t *testing.T) {
		body := `{"slug":"zur-linde","email":"wirt@example.com","verifizierungscode":"GV-1234"}`
		for range 2 {
			req := httptest.NewRequest(http.MethodPost, "/api/sendpurchase", strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := serve(e, req)
			require.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error":"send_failed"`)
		}

		rest, err := app.Repo.GetRestaurantBySlug(context.Background(), "zur-linde")
		require.NoError(t, err)
		assert.False(t, rest.Verified)
		assert.False(t, rest.UnlockToken.Valid)
	})

	t.Run("metrics", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "gastro_event_subscribers")
	})
}

func TestServer_RateLimitOnlyOnAPI(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimit = config.RateLimitConfig{Rate: 0.001, Burst: 1}

	e := NewEcho(newTestApp(t, cfg))

	assert.Equal(t, http.StatusOK, serve(e, httptest.NewRequest(http.MethodGet, "/api/restaurants?city=Ulm", nil)).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(e, httptest.NewRequest(http.MethodGet, "/api/restaurants?city=Ulm", nil)).Code)

	for range 3 {
		assert.Equal(t, http.StatusOK, serve(e, httptest.NewRequest(http.MethodGet, "/health", nil)).Code)
	}
}
