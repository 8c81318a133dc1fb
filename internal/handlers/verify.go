// Copyright 2025 The Gastronomie-Verzeichnis Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/brisingire/gastronomie-verzeichnis/internal/services/delivery"
	"github.com/labstack/echo/v4"
)

// VerifyCodeRequest is the body of POST /api/verify-code.
type VerifyCodeRequest struct {
	Slug string `json:"slug"`
	Code string `json:"code"`
}

// VerifyCode reports whether a submitted code is correct without changing
// any state.
func (h *Handlers) VerifyCode(c echo.Context) error {
	var req VerifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return JSONError(c, http.StatusBadRequest, CodeInvalidRequest, "")
	}
	if strings.TrimSpace(req.Slug) == "" || strings.TrimSpace(req.Code) == "" {
		return JSONError(c, http.StatusBadRequest, CodeMissingParameter, "slug, code")
	}

	valid, err := h.gate.CheckCode(c.Request().Context(), req.Slug, req.Code)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"valid": valid})
}

// SendPurchaseRequest is the body of POST /api/sendpurchase.
type SendPurchaseRequest struct {
	Slug  string `json:"slug"`
	Email string `json:"email"`
	Code  string `json:"verifizierungscode"`
}

// SendPurchase unlocks the documents of a restaurant and emails them.
func (h *Handlers) SendPurchase(c echo.Context) error {
	var req SendPurchaseRequest
	if err := c.Bind(&req); err != nil {
		return JSONError(c, http.StatusBadRequest, CodeInvalidRequest, "")
	}
	if strings.TrimSpace(req.Slug) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Code) == "" {
		return JSONError(c, http.StatusBadRequest, CodeMissingParameter, "slug, email, verifizierungscode")
	}

	addr, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return JSONError(c, http.StatusBadRequest, CodeInvalidEmail, "")
	}

	err = h.delivery.Unlock(c.Request().Context(), delivery.Request{
		Slug:  req.Slug,
		Email: addr.Address,
		Code:  req.Code,
	})
	if err != nil {
		return failAs(c, err, CodeSendFailed)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
