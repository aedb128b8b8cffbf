package store

import (
	"context"
	"database/sql"
	"time"
)

const translationColumns = `id, entity_type, entity_uuid, field_key, language_code_original,
	language_code_target, original_text, translated_text, source, created_by, updated_by,
	created_at, updated_at`

func scanTranslation(row interface{ Scan(...any) error }) (Translation, error) {
	var t Translation
	err := row.Scan(&t.ID, &t.EntityType, &t.EntityUUID, &t.FieldKey, &t.LanguageCodeOriginal,
		&t.LanguageCodeTarget, &t.OriginalText, &t.TranslatedText, &t.Source, &t.CreatedBy,
		&t.UpdatedBy, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// UpsertTranslationParams holds the arguments for UpsertTranslation.
type UpsertTranslationParams struct {
	EntityType           string
	EntityUUID           string
	FieldKey             string
	LanguageCodeOriginal string
	LanguageCodeTarget   string
	OriginalText         string
	TranslatedText       string
	Source               string
	CreatedBy            string
	UpdatedBy            string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// UpsertTranslation writes one translation record. Writes are last-write-wins
// on the upsert key (entity_type, entity_uuid, field_key, language_code_target);
// no optimistic-concurrency token is used.
func (q *Queries) UpsertTranslation(ctx context.Context, arg UpsertTranslationParams) (Translation, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO translations (entity_type, entity_uuid, field_key, language_code_original,
			language_code_target, original_text, translated_text, source, created_by, updated_by,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (entity_type, entity_uuid, field_key, language_code_target) DO UPDATE SET
			language_code_original = excluded.language_code_original,
			original_text = excluded.original_text,
			translated_text = excluded.translated_text,
			source = excluded.source,
			updated_by = excluded.updated_by,
			updated_at = excluded.updated_at
		RETURNING `+translationColumns,
		arg.EntityType, arg.EntityUUID, arg.FieldKey, arg.LanguageCodeOriginal,
		arg.LanguageCodeTarget, arg.OriginalText, arg.TranslatedText, arg.Source,
		arg.CreatedBy, arg.UpdatedBy, arg.CreatedAt, arg.UpdatedAt)
	return scanTranslation(row)
}

// GetTranslationParams identifies one record by its upsert key.
type GetTranslationParams struct {
	EntityType         string
	EntityUUID         string
	FieldKey           string
	LanguageCodeTarget string
}

// GetTranslation returns the record for exactly the given target language.
func (q *Queries) GetTranslation(ctx context.Context, arg GetTranslationParams) (Translation, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+translationColumns+` FROM translations
		WHERE entity_type = ? AND entity_uuid = ? AND field_key = ? AND language_code_target = ?`,
		arg.EntityType, arg.EntityUUID, arg.FieldKey, arg.LanguageCodeTarget)
	return scanTranslation(row)
}

// GetTranslationByOriginalParams identifies a record by its authoring language.
type GetTranslationByOriginalParams struct {
	EntityType           string
	EntityUUID           string
	FieldKey             string
	LanguageCodeOriginal string
}

// GetTranslationByOriginal returns a record for the field whose source text was
// authored in the given language. Any target row carries the original text, so
// the newest one is as good as any.
func (q *Queries) GetTranslationByOriginal(ctx context.Context, arg GetTranslationByOriginalParams) (Translation, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+translationColumns+` FROM translations
		WHERE entity_type = ? AND entity_uuid = ? AND field_key = ? AND language_code_original = ?
		ORDER BY updated_at DESC, id DESC LIMIT 1`,
		arg.EntityType, arg.EntityUUID, arg.FieldKey, arg.LanguageCodeOriginal)
	return scanTranslation(row)
}

// ListTranslationsForEntityParams selects all records of one entity, optionally
// narrowed to a target language.
type ListTranslationsForEntityParams struct {
	EntityType         string
	EntityUUID         string
	LanguageCodeTarget string // empty means all targets
}

// ListTranslationsForEntity returns all translation records for an entity.
func (q *Queries) ListTranslationsForEntity(ctx context.Context, arg ListTranslationsForEntityParams) ([]Translation, error) {
	query := `SELECT ` + translationColumns + ` FROM translations
		WHERE entity_type = ? AND entity_uuid = ?`
	args := []any{arg.EntityType, arg.EntityUUID}
	if arg.LanguageCodeTarget != "" {
		query += ` AND language_code_target = ?`
		args = append(args, arg.LanguageCodeTarget)
	}
	query += ` ORDER BY field_key ASC, language_code_target ASC`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Translation
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListUITranslationsForLanguage returns all UI label records for one target
// language, for bulk-loading the interface catalog.
func (q *Queries) ListUITranslationsForLanguage(ctx context.Context, languageCodeTarget string) ([]Translation, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+translationColumns+` FROM translations
		WHERE entity_type = 'ui' AND language_code_target = ?
		ORDER BY entity_uuid ASC`, languageCodeTarget)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Translation
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CompletenessRow is one entity type's completeness aggregate.
type CompletenessRow struct {
	EntityType          string
	TotalRows           int64
	MissingOriginalLang int64
	MissingOriginalText int64
}

// AssessTranslationCompleteness aggregates incomplete-record counts per entity type.
func (q *Queries) AssessTranslationCompleteness(ctx context.Context) ([]CompletenessRow, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT entity_type,
			COUNT(*),
			COALESCE(SUM(CASE WHEN language_code_original IS NULL THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN original_text IS NULL THEN 1 ELSE 0 END), 0)
		FROM translations
		GROUP BY entity_type
		ORDER BY entity_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CompletenessRow
	for rows.Next() {
		var r CompletenessRow
		if err := rows.Scan(&r.EntityType, &r.TotalRows, &r.MissingOriginalLang, &r.MissingOriginalText); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListIncompleteTranslations returns rows missing original language or text.
func (q *Queries) ListIncompleteTranslations(ctx context.Context) ([]Translation, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+translationColumns+` FROM translations
		WHERE language_code_original IS NULL OR original_text IS NULL
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Translation
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// RepairTranslationParams carries the backfilled values for one historic row.
// Null members leave the stored value untouched.
type RepairTranslationParams struct {
	ID                   int64
	LanguageCodeOriginal sql.NullString
	OriginalText         sql.NullString
	UpdatedAt            time.Time
}

// RepairTranslation backfills missing original-language metadata in place.
func (q *Queries) RepairTranslation(ctx context.Context, arg RepairTranslationParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE translations SET
			language_code_original = COALESCE(language_code_original, ?),
			original_text = COALESCE(original_text, ?),
			updated_at = ?
		WHERE id = ?`,
		arg.LanguageCodeOriginal, arg.OriginalText, arg.UpdatedAt, arg.ID)
	return err
}

// CountIncompleteTranslations returns how many rows still miss original
// language or original text, per the post-migration validation rules.
func (q *Queries) CountIncompleteTranslations(ctx context.Context, entityType string) (missingLang, missingText int64, err error) {
	err = q.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN language_code_original IS NULL THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN original_text IS NULL THEN 1 ELSE 0 END), 0)
		FROM translations WHERE entity_type = ?`, entityType).Scan(&missingLang, &missingText)
	return missingLang, missingText, err
}
