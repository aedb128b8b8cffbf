// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/tms-go/internal/middleware"
	"github.com/olegiv/tms-go/internal/model"
	"github.com/olegiv/tms-go/internal/translation"
)

// requestLanguage picks the target language for a read: an explicit ?lang=
// wins, then the content language resolved by the Language middleware, then
// the registry default. Codes are lowercased to their canonical form.
func (h *Handler) requestLanguage(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return strings.ToLower(lang)
	}
	if prefs, ok := middleware.GetPreferences(r); ok {
		return prefs.ContentLanguage
	}
	return h.registry.DefaultCode(r.Context())
}

// GetText resolves one entity field. A translation gap answers 200 with the
// sentinel text; only validation and store failures are errors.
func (h *Handler) GetText(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")
	entityUUID := chi.URLParam(r, "entityUuid")
	fieldKey := chi.URLParam(r, "fieldKey")
	lang := h.requestLanguage(r)

	text, err := h.service.GetText(r.Context(), entityType, entityUUID, fieldKey, lang)
	if err != nil {
		var verr *translation.ValidationError
		if errors.As(err, &verr) {
			WriteValidationError(w, verr.Error())
			return
		}
		h.logger.Error("resolving translation", "entity_type", entityType,
			"entity_uuid", entityUUID, "field_key", fieldKey, "error", err)
		WriteInternalError(w, "failed to resolve translation")
		return
	}

	WriteSuccess(w, map[string]string{
		"field_key": fieldKey,
		"language":  lang,
		"text":      text,
	}, nil)
}

// GetAllForEntity returns all texts of an entity. Without ?lang= the result
// covers every stored target language, keyed field_key_target.
func (h *Handler) GetAllForEntity(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")
	entityUUID := chi.URLParam(r, "entityUuid")
	lang := strings.ToLower(r.URL.Query().Get("lang"))

	texts, err := h.service.GetAllForEntity(r.Context(), entityType, entityUUID, lang)
	if err != nil {
		var verr *translation.ValidationError
		if errors.As(err, &verr) {
			WriteValidationError(w, verr.Error())
			return
		}
		h.logger.Error("listing entity translations", "entity_type", entityType,
			"entity_uuid", entityUUID, "error", err)
		WriteInternalError(w, "failed to list translations")
		return
	}

	WriteSuccess(w, texts, &Meta{Total: int64(len(texts))})
}

// ListUITranslations bulk-loads the interface label catalog for one language.
func (h *Handler) ListUITranslations(w http.ResponseWriter, r *http.Request) {
	lang := h.requestLanguage(r)

	labels, err := h.service.AllUIForLanguage(r.Context(), lang)
	if err != nil {
		h.logger.Error("listing ui translations", "language", lang, "error", err)
		WriteInternalError(w, "failed to list ui translations")
		return
	}

	WriteSuccess(w, map[string]any{
		"language": lang,
		"labels":   labels,
	}, &Meta{Total: int64(len(labels))})
}

// UpsertTranslationsRequest is the body of POST /api/translations.
type UpsertTranslationsRequest struct {
	Records []UpsertRecord `json:"records"`
}

// UpsertRecord is one manual or imported translation write. The original
// language and text are required; only historic rows may lack them.
type UpsertRecord struct {
	EntityType           string `json:"entity_type"`
	EntityUUID           string `json:"entity_uuid"`
	FieldKey             string `json:"field_key"`
	LanguageCodeOriginal string `json:"language_code_original"`
	LanguageCodeTarget   string `json:"language_code_target"`
	OriginalText         string `json:"original_text"`
	TranslatedText       string `json:"translated_text"`
	Source               string `json:"source"`
}

// UpsertTranslations writes a batch of translation records, idempotent on the
// upsert key.
func (h *Handler) UpsertTranslations(w http.ResponseWriter, r *http.Request) {
	var req UpsertTranslationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body")
		return
	}

	actor := r.Header.Get(middleware.UserUUIDHeader)
	if actor == "" {
		actor = "api"
	}

	records := make([]translation.BatchRecord, 0, len(req.Records))
	for _, rec := range req.Records {
		source := rec.Source
		if source == "" {
			source = model.SourceManual
		}
		records = append(records, translation.BatchRecord{
			EntityType:           rec.EntityType,
			EntityUUID:           rec.EntityUUID,
			FieldKey:             rec.FieldKey,
			LanguageCodeOriginal: rec.LanguageCodeOriginal,
			LanguageCodeTarget:   rec.LanguageCodeTarget,
			OriginalText:         rec.OriginalText,
			TranslatedText:       rec.TranslatedText,
			Source:               source,
			Actor:                actor,
		})
	}

	if err := h.service.UpsertBatch(r.Context(), records); err != nil {
		var verr *translation.ValidationError
		if errors.As(err, &verr) {
			WriteValidationError(w, verr.Error())
			return
		}
		h.logger.Error("upserting translations", "count", len(records), "error", err)
		WriteInternalError(w, "failed to save translations")
		return
	}

	WriteSuccess(w, map[string]int{"saved": len(records)}, nil)
}
