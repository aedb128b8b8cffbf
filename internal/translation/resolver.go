// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"context"
	"database/sql"
	"errors"

	"github.com/olegiv/tms-go/internal/cache"
	"github.com/olegiv/tms-go/internal/model"
	"github.com/olegiv/tms-go/internal/store"
)

// Resolver produces a best-effort display string for an entity field even
// when no record exists for the requested language.
//
// Resolution order:
//  1. Exact match on the target language: return its translated text.
//  2. A record authored in the requested language: return its original text.
//  3. If the registry default differs from the requested language, retry
//     steps 1-2 with the default.
//  4. The "[missing:<field_key>]" sentinel.
//
// A store error propagates to the caller instead of degrading to the
// sentinel, so callers can tell a known gap from a backend failure.
type Resolver struct {
	queries  *store.Queries
	registry *cache.LanguageRegistry
}

// NewResolver creates a Resolver over the given store and language registry.
func NewResolver(queries *store.Queries, registry *cache.LanguageRegistry) *Resolver {
	return &Resolver{queries: queries, registry: registry}
}

// Resolve returns the display text for (entityType, entityUUID, fieldKey) in
// the requested language, walking the fallback chain when needed.
func (r *Resolver) Resolve(ctx context.Context, entityType, entityUUID, fieldKey, requestedLanguage string) (string, error) {
	if !model.ValidEntityType(entityType) {
		return "", errInvalidEntityType(entityType)
	}

	text, found, err := r.lookup(ctx, entityType, entityUUID, fieldKey, requestedLanguage)
	if err != nil {
		return "", err
	}
	if found {
		return text, nil
	}

	if defaultCode := r.registry.DefaultCode(ctx); defaultCode != requestedLanguage {
		text, found, err = r.lookup(ctx, entityType, entityUUID, fieldKey, defaultCode)
		if err != nil {
			return "", err
		}
		if found {
			return text, nil
		}
	}

	return model.MissingSentinel(fieldKey), nil
}

// lookup runs the exact-match then original-language steps for one language.
func (r *Resolver) lookup(ctx context.Context, entityType, entityUUID, fieldKey, language string) (string, bool, error) {
	rec, err := r.queries.GetTranslation(ctx, store.GetTranslationParams{
		EntityType:         entityType,
		EntityUUID:         entityUUID,
		FieldKey:           fieldKey,
		LanguageCodeTarget: language,
	})
	if err == nil {
		return rec.TranslatedText, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", false, err
	}

	// The requested language may be the language the text was authored in:
	// any target row for the field then carries the source string.
	rec, err = r.queries.GetTranslationByOriginal(ctx, store.GetTranslationByOriginalParams{
		EntityType:           entityType,
		EntityUUID:           entityUUID,
		FieldKey:             fieldKey,
		LanguageCodeOriginal: language,
	})
	if err == nil {
		if rec.OriginalText.Valid {
			return rec.OriginalText.String, true, nil
		}
		// Historic row without original text, nothing usable here.
		return "", false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", false, err
	}

	return "", false, nil
}
