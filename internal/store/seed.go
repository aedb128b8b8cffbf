// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/tms-go/internal/model"
)

// seedLanguages are the languages installed on first start. German is the
// default because the bulk of imported DATEV data is authored in German.
var seedLanguages = []CreateLanguageParams{
	{Code: "de", Name: "German", NativeName: "Deutsch", IsDefault: true, IsEnabled: true, Position: 0},
	{Code: "en", Name: "English", NativeName: "English", IsDefault: false, IsEnabled: true, Position: 1},
}

// seedUILabels are a minimal set of interface labels in the default language.
var seedUILabels = map[string]string{
	"nav.dashboard":         "Übersicht",
	"nav.languages":         "Sprachen",
	"nav.translations":      "Übersetzungen",
	"nav.report_structures": "Berichtsstrukturen",
	"action.generate":       "Übersetzungen generieren",
	"action.save":           "Speichern",
}

// Seed installs the default languages and UI labels if they are missing.
// Safe to run on every start.
func Seed(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	q := New(db)
	now := time.Now()

	for _, lang := range seedLanguages {
		exists, err := q.LanguageCodeExists(ctx, lang.Code)
		if err != nil {
			return fmt.Errorf("checking language %s: %w", lang.Code, err)
		}
		if exists {
			continue
		}
		lang.CreatedAt = now
		lang.UpdatedAt = now
		if _, err := q.CreateLanguage(ctx, lang); err != nil {
			return fmt.Errorf("seeding language %s: %w", lang.Code, err)
		}
		logger.Info("seeded language", "code", lang.Code, "default", lang.IsDefault)
	}

	defaultLang, err := q.GetDefaultLanguage(ctx)
	if err != nil {
		return fmt.Errorf("loading default language: %w", err)
	}

	seeded := 0
	for key, text := range seedUILabels {
		_, err := q.GetTranslation(ctx, GetTranslationParams{
			EntityType:         model.EntityTypeUI,
			EntityUUID:         key,
			FieldKey:           model.FieldKeyUIText,
			LanguageCodeTarget: defaultLang.Code,
		})
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking ui label %s: %w", key, err)
		}

		_, err = q.UpsertTranslation(ctx, UpsertTranslationParams{
			EntityType:           model.EntityTypeUI,
			EntityUUID:           key,
			FieldKey:             model.FieldKeyUIText,
			LanguageCodeOriginal: defaultLang.Code,
			LanguageCodeTarget:   defaultLang.Code,
			OriginalText:         text,
			TranslatedText:       text,
			Source:               model.SourceImport,
			CreatedBy:            "seed",
			UpdatedBy:            "seed",
			CreatedAt:            now,
			UpdatedAt:            now,
		})
		if err != nil {
			return fmt.Errorf("seeding ui label %s: %w", key, err)
		}
		seeded++
	}

	if seeded > 0 {
		logger.Info("seeded ui labels", "count", seeded, "language", defaultLang.Code)
	}

	return nil
}

// demoLineItems are the line items of the demo balance sheet structure.
var demoLineItems = []struct {
	key         string
	description string
}{
	{"kasse", "Kasse und Bankguthaben"},
	{"forderungen", "Forderungen aus Lieferungen und Leistungen"},
	{"verbindlichkeiten", "Verbindlichkeiten aus Lieferungen und Leistungen"},
	{"eigenkapital", "Eigenkapital"},
}

// SeedDemo installs a sample report structure for development. Skipped when
// any structure already exists.
func SeedDemo(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	q := New(db)

	existing, err := q.ListReportStructures(ctx)
	if err != nil {
		return fmt.Errorf("listing report structures: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now()
	structure, err := q.CreateReportStructure(ctx, CreateReportStructureParams{
		UUID:               uuid.NewString(),
		Name:               "Bilanz (Demo)",
		SourceLanguageCode: "de",
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		return fmt.Errorf("seeding demo structure: %w", err)
	}

	for i, item := range demoLineItems {
		_, err := q.CreateReportLineItem(ctx, CreateReportLineItemParams{
			UUID:          uuid.NewString(),
			StructureUUID: structure.UUID,
			ItemKey:       item.key,
			Description:   item.description,
			Position:      int64(i),
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("seeding demo line item %s: %w", item.key, err)
		}
	}

	logger.Info("seeded demo report structure",
		"structure_uuid", structure.UUID, "line_items", len(demoLineItems))
	return nil
}
