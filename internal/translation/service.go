// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/tms-go/internal/cache"
	"github.com/olegiv/tms-go/internal/model"
	"github.com/olegiv/tms-go/internal/store"
)

// Service is the translation store accessor. Reads resolve through the
// fallback chain; writes go through idempotent upserts keyed by
// (entity_type, entity_uuid, field_key, language_code_target).
//
// The cache in front of resolution is an optimization only. Correctness holds
// with a cache of size zero, and sentinel results are never cached so a
// freshly generated translation is visible on the next lookup.
type Service struct {
	queries  *store.Queries
	resolver *Resolver
	registry *cache.LanguageRegistry
	cache    cache.Cache
	logger   *slog.Logger
}

// NewService wires the accessor. cache may be nil to disable read caching.
func NewService(queries *store.Queries, registry *cache.LanguageRegistry, c cache.Cache, logger *slog.Logger) *Service {
	return &Service{
		queries:  queries,
		resolver: NewResolver(queries, registry),
		registry: registry,
		cache:    c,
		logger:   logger,
	}
}

// Resolver exposes the underlying fallback resolver.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

func resolveCacheKey(entityType, entityUUID, fieldKey, language string) string {
	return "resolve:" + entityType + ":" + entityUUID + ":" + fieldKey + ":" + language
}

// GetText returns the display text for one entity field in the requested
// language, consulting the fallback chain on a miss.
func (s *Service) GetText(ctx context.Context, entityType, entityUUID, fieldKey, languageCodeTarget string) (string, error) {
	key := resolveCacheKey(entityType, entityUUID, fieldKey, languageCodeTarget)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			return string(cached), nil
		}
	}

	text, err := s.resolver.Resolve(ctx, entityType, entityUUID, fieldKey, languageCodeTarget)
	if err != nil {
		return "", err
	}

	if s.cache != nil && text != model.MissingSentinel(fieldKey) {
		if err := s.cache.Set(ctx, key, []byte(text), 0); err != nil {
			s.logger.Debug("translation cache set failed", "key", key, "error", err)
		}
	}
	return text, nil
}

// GetAllForEntity returns all texts of one entity. With a target language the
// result maps field_key to text; without one it maps field_key_target to text
// across every stored language.
func (s *Service) GetAllForEntity(ctx context.Context, entityType, entityUUID, languageCodeTarget string) (map[string]string, error) {
	if !model.ValidEntityType(entityType) {
		return nil, errInvalidEntityType(entityType)
	}

	records, err := s.queries.ListTranslationsForEntity(ctx, store.ListTranslationsForEntityParams{
		EntityType:         entityType,
		EntityUUID:         entityUUID,
		LanguageCodeTarget: languageCodeTarget,
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(records))
	for _, rec := range records {
		if languageCodeTarget != "" {
			out[rec.FieldKey] = rec.TranslatedText
		} else {
			out[rec.FieldKey+"_"+rec.LanguageCodeTarget] = rec.TranslatedText
		}
	}
	return out, nil
}

// AllUIForLanguage bulk-loads the interface label catalog for one language,
// keyed by ui_key.
func (s *Service) AllUIForLanguage(ctx context.Context, languageCodeTarget string) (map[string]string, error) {
	records, err := s.queries.ListUITranslationsForLanguage(ctx, languageCodeTarget)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(records))
	for _, rec := range records {
		out[rec.EntityUUID] = rec.TranslatedText
	}
	return out, nil
}

// BatchRecord is one translation write in an UpsertBatch call.
type BatchRecord struct {
	EntityType           string
	EntityUUID           string
	FieldKey             string
	LanguageCodeOriginal string
	LanguageCodeTarget   string
	OriginalText         string
	TranslatedText       string
	Source               string
	Actor                string
}

// UpsertBatch writes translation records through to the store, idempotent on
// the upsert key. Used by manual edits, imports and the generation pipeline.
// New rows must arrive well-formed: only historic rows may lack an original
// language or text, and those enter the table outside this path. Language
// codes are lowercased to their canonical form before the write.
func (s *Service) UpsertBatch(ctx context.Context, records []BatchRecord) error {
	if len(records) == 0 {
		return errEmptyBatch()
	}
	for _, rec := range records {
		if !model.ValidEntityType(rec.EntityType) {
			return errInvalidEntityType(rec.EntityType)
		}
		if rec.FieldKey == "" || len(rec.FieldKey) > model.MaxFieldKeyLen {
			return &ValidationError{Field: "field_key", Reason: "must be non-empty and at most 500 characters"}
		}
		if rec.LanguageCodeOriginal == "" {
			return &ValidationError{Field: "language_code_original", Reason: "must be non-empty"}
		}
		if rec.LanguageCodeTarget == "" {
			return &ValidationError{Field: "language_code_target", Reason: "must be non-empty"}
		}
		if rec.OriginalText == "" {
			return &ValidationError{Field: "original_text", Reason: "must be non-empty"}
		}
		if rec.TranslatedText == "" {
			return &ValidationError{Field: "translated_text", Reason: "must be non-empty"}
		}
		if !model.ValidSource(rec.Source) {
			return &ValidationError{Field: "source", Reason: "unknown provenance tag " + rec.Source}
		}
	}

	now := time.Now()
	for _, rec := range records {
		if _, err := s.queries.UpsertTranslation(ctx, store.UpsertTranslationParams{
			EntityType:           rec.EntityType,
			EntityUUID:           rec.EntityUUID,
			FieldKey:             rec.FieldKey,
			LanguageCodeOriginal: strings.ToLower(rec.LanguageCodeOriginal),
			LanguageCodeTarget:   strings.ToLower(rec.LanguageCodeTarget),
			OriginalText:         rec.OriginalText,
			TranslatedText:       rec.TranslatedText,
			Source:               rec.Source,
			CreatedBy:            rec.Actor,
			UpdatedBy:            rec.Actor,
			CreatedAt:            now,
			UpdatedAt:            now,
		}); err != nil {
			return err
		}
		s.invalidateField(ctx, rec.EntityType, rec.EntityUUID, rec.FieldKey)
	}
	return nil
}

// invalidateField drops the cached resolution of a field for every enabled
// language. Fallback results can reference any language, so a write to one
// target invalidates them all.
func (s *Service) invalidateField(ctx context.Context, entityType, entityUUID, fieldKey string) {
	if s.cache == nil {
		return
	}
	for _, lang := range s.registry.ListEnabled(ctx) {
		key := resolveCacheKey(entityType, entityUUID, fieldKey, lang.Code)
		if err := s.cache.Delete(ctx, key); err != nil && err != cache.ErrCacheMiss {
			s.logger.Debug("translation cache delete failed", "key", key, "error", err)
		}
	}
}

// nullString wraps a possibly-empty string for nullable columns.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
