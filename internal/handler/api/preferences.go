// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/tms-go/internal/preference"
)

// GetPreferences resolves the effective language preferences for a user,
// including any transient ?lang= override on this request.
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userUUID := chi.URLParam(r, "uuid")
	urlOverride := r.URL.Query().Get("lang")

	prefs, err := h.preferences.Resolve(r.Context(), userUUID, urlOverride)
	if err != nil {
		h.logger.Error("resolving preferences", "user_uuid", userUUID, "error", err)
		WriteInternalError(w, "failed to resolve preferences")
		return
	}
	WriteSuccess(w, prefs, nil)
}

// UpdatePreferencesRequest is the body of PUT /api/users/{uuid}/preferences.
// Omitted fields are left unchanged.
type UpdatePreferencesRequest struct {
	InterfaceLanguage string `json:"interface_language"`
	ContentLanguage   string `json:"content_language"`
}

// UpdatePreferences persists language preferences. A content language write
// is skipped while a ?lang= override is active on the request; the response
// echoes the effective state so the caller can see what actually applied.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userUUID := chi.URLParam(r, "uuid")
	urlOverride := r.URL.Query().Get("lang")

	var req UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body")
		return
	}

	if req.InterfaceLanguage != "" {
		if err := h.preferences.SetInterfaceLanguage(r.Context(), userUUID, req.InterfaceLanguage); err != nil {
			h.writePreferenceError(w, err, userUUID)
			return
		}
	}
	if req.ContentLanguage != "" {
		if err := h.preferences.SetContentLanguage(r.Context(), userUUID, req.ContentLanguage, urlOverride); err != nil {
			h.writePreferenceError(w, err, userUUID)
			return
		}
	}

	prefs, err := h.preferences.Resolve(r.Context(), userUUID, urlOverride)
	if err != nil {
		h.logger.Error("resolving preferences after update", "user_uuid", userUUID, "error", err)
		WriteInternalError(w, "failed to resolve preferences")
		return
	}
	WriteSuccess(w, prefs, nil)
}

func (h *Handler) writePreferenceError(w http.ResponseWriter, err error, userUUID string) {
	var unknown *preference.UnknownLanguageError
	if errors.As(err, &unknown) {
		WriteValidationError(w, unknown.Error())
		return
	}
	h.logger.Error("updating preferences", "user_uuid", userUUID, "error", err)
	WriteInternalError(w, "failed to update preferences")
}
