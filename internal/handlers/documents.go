// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// GenerateTest renders the test report of ?slug= and publishes it.
func (h *Handlers) GenerateTest(c echo.Context) error {
	slug := strings.TrimSpace(c.QueryParam("slug"))
	if slug == "" {
		return JSONError(c, http.StatusBadRequest, CodeMissingParameter, "slug")
	}

	url, err := h.delivery.RegenerateReport(c.Request().Context(), slug)
	if err != nil {
		return failAs(c, err, CodeUploadFailed)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "url": url})
}

// GenerateInvoice renders an invoice for ?slug= as a PDF download.
func (h *Handlers) GenerateInvoice(c echo.Context) error {
	slug := strings.TrimSpace(c.QueryParam("slug"))
	if slug == "" {
		return JSONError(c, http.StatusBadRequest, CodeMissingParameter, "slug")
	}

	invoice, err := h.delivery.Invoice(c.Request().Context(), slug)
	if err != nil {
		return failAs(c, err, CodeRenderFailed)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="rechnung_%s.pdf"`, slug))
	c.Response().Header().Set("X-Invoice-Number", invoice.Number)
	return c.Blob(http.StatusOK, "application/pdf", invoice.PDF)
}
