// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/tms-go/internal/middleware"
	"github.com/olegiv/tms-go/internal/translation"
)

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	EntityType      string   `json:"entity_type"`
	EntityUUID      string   `json:"entity_uuid"`
	SourceLanguage  string   `json:"source_language"`
	TargetLanguages []string `json:"target_languages"`
	Texts           []struct {
		FieldKey string `json:"field_key"`
		Text     string `json:"text"`
	} `json:"texts"`
}

// Generate runs the translation pipeline over a batch of texts. Partial
// failure is a 200 with failure counts in the summary, not an error status.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	if h.pipeline == nil {
		WriteError(w, http.StatusServiceUnavailable, "provider_unconfigured",
			"no translation provider is configured", nil)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body")
		return
	}

	items := make([]translation.TextItem, 0, len(req.Texts))
	for _, text := range req.Texts {
		items = append(items, translation.TextItem{FieldKey: text.FieldKey, Text: text.Text})
	}

	actor := r.Header.Get(middleware.UserUUIDHeader)
	if actor == "" {
		actor = "api"
	}

	summary, err := h.pipeline.TranslateBatch(r.Context(), translation.BatchRequest{
		EntityType:      req.EntityType,
		EntityUUID:      req.EntityUUID,
		Items:           items,
		SourceLanguage:  req.SourceLanguage,
		TargetLanguages: req.TargetLanguages,
		Actor:           actor,
	})
	if err != nil {
		var verr *translation.ValidationError
		if errors.As(err, &verr) {
			WriteValidationError(w, verr.Error())
			return
		}
		h.logger.Error("running generation batch", "entity_uuid", req.EntityUUID, "error", err)
		WriteInternalError(w, "generation failed")
		return
	}

	WriteSuccess(w, summary, nil)
}

// GenerateForStructure retroactively translates a report structure's name and
// every line item description.
func (h *Handler) GenerateForStructure(w http.ResponseWriter, r *http.Request) {
	if h.pipeline == nil {
		WriteError(w, http.StatusServiceUnavailable, "provider_unconfigured",
			"no translation provider is configured", nil)
		return
	}

	structureUUID := chi.URLParam(r, "uuid")
	actor := r.Header.Get(middleware.UserUUIDHeader)
	if actor == "" {
		actor = "api"
	}

	summary, err := h.pipeline.GenerateForStructure(r.Context(), structureUUID, actor)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "structure not found")
			return
		}
		h.logger.Error("running structure generation", "structure_uuid", structureUUID, "error", err)
		WriteInternalError(w, "generation failed")
		return
	}

	WriteSuccess(w, summary, nil)
}
