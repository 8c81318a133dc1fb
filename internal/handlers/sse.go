// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/brisingire/gastronomie-verzeichnis/internal/sse"
	"github.com/labstack/echo/v4"
)

// HeartbeatInterval keeps idle event streams open through proxies.
var HeartbeatInterval = 30 * time.Second

// Events streams report and verification events of one restaurant.
func (h *Handlers) Events(c echo.Context) error {
	ctx := c.Request().Context()

	slug := strings.TrimSpace(c.Param("slug"))
	if _, err := h.directory.Restaurant(ctx, slug); err != nil {
		return fail(c, err)
	}

	w := c.Response()

	// Set SSE headers
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering
	w.WriteHeader(http.StatusOK)

	ch := h.hub.Register(slug)
	defer h.hub.Unregister(slug, ch)

	// Send initial connection event
	if _, err := w.Write([]byte(sse.FormatEvent(sse.EventConnected, slug))); err != nil {
		return nil
	}
	w.Flush()

	// Heartbeat ticker to keep connection alive through proxies
	ticker := time.NewTicker(HeartbeatInterval)
	defer ticker.Stop()

	// Stream events until client disconnects
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := w.Write([]byte(sse.Heartbeat)); err != nil {
				return nil // Client disconnected
			}
			w.Flush()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if _, err := w.Write([]byte(msg)); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
