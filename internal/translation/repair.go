// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"context"
	"log/slog"
	"time"

	"github.com/olegiv/tms-go/internal/model"
	"github.com/olegiv/tms-go/internal/store"
)

// Repairer fixes historic translation rows written without an original
// language or original text. It mutates rows in place, never deletes, and is
// idempotent: a second run reports zero additional rows affected.
type Repairer struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewRepairer creates a Repairer over the given store.
func NewRepairer(queries *store.Queries, logger *slog.Logger) *Repairer {
	return &Repairer{queries: queries, logger: logger}
}

// TableCompleteness is one entity type's completeness aggregate.
type TableCompleteness struct {
	EntityType          string  `json:"entity_type"`
	TotalRows           int64   `json:"total_rows"`
	MissingOriginalLang int64   `json:"missing_original_lang"`
	MissingOriginalText int64   `json:"missing_original_text"`
	CompletionRate      float64 `json:"completion_rate"`
}

// CompletenessReport aggregates completeness across all entity types.
type CompletenessReport struct {
	Tables []TableCompleteness `json:"tables"`
}

// Assess reports per-entity-type completeness of the translations table.
func (r *Repairer) Assess(ctx context.Context) (CompletenessReport, error) {
	rows, err := r.queries.AssessTranslationCompleteness(ctx)
	if err != nil {
		return CompletenessReport{}, err
	}

	report := CompletenessReport{Tables: make([]TableCompleteness, 0, len(rows))}
	for _, row := range rows {
		t := TableCompleteness{
			EntityType:          row.EntityType,
			TotalRows:           row.TotalRows,
			MissingOriginalLang: row.MissingOriginalLang,
			MissingOriginalText: row.MissingOriginalText,
			CompletionRate:      1,
		}
		if row.TotalRows > 0 {
			incomplete := row.MissingOriginalLang
			if row.MissingOriginalText > incomplete {
				incomplete = row.MissingOriginalText
			}
			t.CompletionRate = float64(row.TotalRows-incomplete) / float64(row.TotalRows)
		}
		report.Tables = append(report.Tables, t)
	}
	return report, nil
}

// MigrationResult reports one repair pass.
type MigrationResult struct {
	DryRun    bool `json:"dry_run"`
	Processed int  `json:"processed"`
	Updated   int  `json:"updated"`
}

// Migrate backfills incomplete rows. The original language is inferred
// heuristically from the row's own translated text; the original text is
// copied from the translated text only when the row's target equals its
// inferred original, since original and translation are then the same string.
// With dryRun set nothing is written, only counted.
func (r *Repairer) Migrate(ctx context.Context, dryRun bool) (MigrationResult, error) {
	incomplete, err := r.queries.ListIncompleteTranslations(ctx)
	if err != nil {
		return MigrationResult{}, err
	}

	result := MigrationResult{DryRun: dryRun}
	now := time.Now()

	for _, row := range incomplete {
		result.Processed++

		inferredLang := row.LanguageCodeOriginal.String
		if !row.LanguageCodeOriginal.Valid || inferredLang == "" {
			inferredLang = DetectLanguage([]string{row.TranslatedText})
		}

		arg := store.RepairTranslationParams{ID: row.ID, UpdatedAt: now}
		changed := false
		if !row.LanguageCodeOriginal.Valid || row.LanguageCodeOriginal.String == "" {
			arg.LanguageCodeOriginal = nullString(inferredLang)
			changed = true
		}
		if !row.OriginalText.Valid && row.LanguageCodeTarget == inferredLang {
			arg.OriginalText = nullString(row.TranslatedText)
			changed = true
		}
		if !changed {
			continue
		}

		if !dryRun {
			if err := r.queries.RepairTranslation(ctx, arg); err != nil {
				return result, err
			}
		}
		result.Updated++
	}

	if !dryRun {
		r.logger.Info("historic translation repair completed",
			"processed", result.Processed, "updated", result.Updated)
	}
	return result, nil
}

// RuleResult is one post-migration validation rule outcome.
type RuleResult struct {
	Rule        string `json:"rule"`
	EntityType  string `json:"entity_type"`
	FailingRows int64  `json:"failing_rows"`
}

// ValidationResult reports which rows remain non-compliant after migration.
type ValidationResult struct {
	Compliant bool         `json:"compliant"`
	Rules     []RuleResult `json:"rules"`
}

// Validate checks that no rows remain with a null original language or
// original text, per entity type. It reports failing row counts per rule
// rather than a bare boolean so remaining gaps are actionable.
func (r *Repairer) Validate(ctx context.Context) (ValidationResult, error) {
	result := ValidationResult{Compliant: true}

	for _, entityType := range []string{model.EntityTypeUI, model.EntityTypeReportStructure, model.EntityTypeReportLineItem} {
		missingLang, missingText, err := r.queries.CountIncompleteTranslations(ctx, entityType)
		if err != nil {
			return ValidationResult{}, err
		}
		result.Rules = append(result.Rules,
			RuleResult{Rule: "language_code_original_not_null", EntityType: entityType, FailingRows: missingLang},
			RuleResult{Rule: "original_text_not_null", EntityType: entityType, FailingRows: missingText},
		)
		if missingLang > 0 || missingText > 0 {
			result.Compliant = false
		}
	}
	return result, nil
}
