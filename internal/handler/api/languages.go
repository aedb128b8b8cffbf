// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/tms-go/internal/store"
)

// LanguageResponse is one enabled language in API responses.
type LanguageResponse struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
	IsDefault  bool   `json:"is_default"`
}

// ListLanguages returns the enabled languages, default first. The registry
// serves a hardcoded fallback pair when the store is unreachable, so this
// endpoint always answers.
func (h *Handler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	languages := h.registry.ListEnabled(r.Context())

	out := make([]LanguageResponse, 0, len(languages))
	for _, lang := range languages {
		out = append(out, LanguageResponse{
			Code:       lang.Code,
			Name:       lang.Name,
			NativeName: lang.NativeName,
			IsDefault:  lang.IsDefault,
		})
	}
	WriteSuccess(w, out, &Meta{Total: int64(len(out))})
}

// CreateLanguageRequest is the body of POST /api/languages.
type CreateLanguageRequest struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
	IsEnabled  bool   `json:"is_enabled"`
	Position   int64  `json:"position"`
}

// CreateLanguage installs a new system language. The language is never created
// as default; promotion goes through SetDefaultLanguage.
func (h *Handler) CreateLanguage(w http.ResponseWriter, r *http.Request) {
	var req CreateLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body")
		return
	}

	req.Code = strings.ToLower(req.Code)
	if len(req.Code) != 2 {
		WriteValidationError(w, "code must be a two-letter ISO 639-1 code")
		return
	}
	if req.Name == "" || req.NativeName == "" {
		WriteValidationError(w, "name and native_name are required")
		return
	}

	exists, err := h.queries.LanguageCodeExists(r.Context(), req.Code)
	if err != nil {
		h.logger.Error("checking language code", "code", req.Code, "error", err)
		WriteInternalError(w, "failed to create language")
		return
	}
	if exists {
		WriteError(w, http.StatusConflict, "conflict", "language already exists", nil)
		return
	}

	now := time.Now()
	lang, err := h.queries.CreateLanguage(r.Context(), store.CreateLanguageParams{
		Code:       req.Code,
		Name:       req.Name,
		NativeName: req.NativeName,
		IsEnabled:  req.IsEnabled,
		Position:   req.Position,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		h.logger.Error("creating language", "code", req.Code, "error", err)
		WriteInternalError(w, "failed to create language")
		return
	}

	h.registry.Invalidate()
	h.logger.Info("language created", "code", lang.Code, "enabled", lang.IsEnabled)

	WriteJSON(w, http.StatusCreated, Response{Data: LanguageResponse{
		Code:       lang.Code,
		Name:       lang.Name,
		NativeName: lang.NativeName,
		IsDefault:  lang.IsDefault,
	}})
}

// SetDefaultLanguage promotes a language to default. The previous default is
// demoted in the same transaction; the promoted language is enabled if it was
// not.
func (h *Handler) SetDefaultLanguage(w http.ResponseWriter, r *http.Request) {
	code := strings.ToLower(chi.URLParam(r, "code"))

	lang, err := h.queries.GetLanguageByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "language not found")
			return
		}
		h.logger.Error("loading language", "code", code, "error", err)
		WriteInternalError(w, "failed to set default language")
		return
	}

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		h.logger.Error("starting default language transaction", "error", err)
		WriteInternalError(w, "failed to set default language")
		return
	}
	defer func() { _ = tx.Rollback() }()

	qtx := h.queries.WithTx(tx)
	if err := qtx.ClearDefaultLanguage(r.Context()); err != nil {
		h.logger.Error("clearing default language", "error", err)
		WriteInternalError(w, "failed to set default language")
		return
	}
	if err := qtx.SetDefaultLanguage(r.Context(), store.SetDefaultLanguageParams{
		Code:      code,
		UpdatedAt: time.Now(),
	}); err != nil {
		h.logger.Error("setting default language", "code", code, "error", err)
		WriteInternalError(w, "failed to set default language")
		return
	}
	if err := tx.Commit(); err != nil {
		h.logger.Error("committing default language change", "code", code, "error", err)
		WriteInternalError(w, "failed to set default language")
		return
	}

	h.registry.Invalidate()
	h.logger.Info("default language set", "code", code, "name", lang.Name)

	WriteSuccess(w, map[string]string{"default": code}, nil)
}
