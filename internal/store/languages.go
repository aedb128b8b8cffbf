package store

import (
	"context"
	"time"
)

const languageColumns = `id, code, name, native_name, is_default, is_enabled, position, created_at, updated_at`

func scanLanguage(row interface{ Scan(...any) error }) (Language, error) {
	var l Language
	err := row.Scan(&l.ID, &l.Code, &l.Name, &l.NativeName, &l.IsDefault, &l.IsEnabled, &l.Position, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// CreateLanguageParams holds the arguments for CreateLanguage.
type CreateLanguageParams struct {
	Code       string
	Name       string
	NativeName string
	IsDefault  bool
	IsEnabled  bool
	Position   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateLanguage inserts a new system language.
func (q *Queries) CreateLanguage(ctx context.Context, arg CreateLanguageParams) (Language, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO system_languages (code, name, native_name, is_default, is_enabled, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+languageColumns,
		arg.Code, arg.Name, arg.NativeName, arg.IsDefault, arg.IsEnabled, arg.Position, arg.CreatedAt, arg.UpdatedAt)
	return scanLanguage(row)
}

// ListLanguages returns all languages, default first, then by position.
func (q *Queries) ListLanguages(ctx context.Context) ([]Language, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+languageColumns+` FROM system_languages
		ORDER BY is_default DESC, position ASC, code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var langs []Language
	for rows.Next() {
		l, err := scanLanguage(rows)
		if err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}
	return langs, rows.Err()
}

// ListEnabledLanguages returns enabled languages, default first, then by position.
func (q *Queries) ListEnabledLanguages(ctx context.Context) ([]Language, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+languageColumns+` FROM system_languages
		WHERE is_enabled = 1
		ORDER BY is_default DESC, position ASC, code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var langs []Language
	for rows.Next() {
		l, err := scanLanguage(rows)
		if err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}
	return langs, rows.Err()
}

// GetLanguageByCode returns the language with the given code.
func (q *Queries) GetLanguageByCode(ctx context.Context, code string) (Language, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+languageColumns+` FROM system_languages WHERE code = ?`, code)
	return scanLanguage(row)
}

// GetDefaultLanguage returns the language marked as default.
func (q *Queries) GetDefaultLanguage(ctx context.Context) (Language, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+languageColumns+` FROM system_languages WHERE is_default = 1 LIMIT 1`)
	return scanLanguage(row)
}

// LanguageCodeExists reports whether a language with the given code exists.
func (q *Queries) LanguageCodeExists(ctx context.Context, code string) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM system_languages WHERE code = ?`, code).Scan(&n)
	return n > 0, err
}

// CountLanguages returns the total number of languages.
func (q *Queries) CountLanguages(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM system_languages`).Scan(&n)
	return n, err
}

// ClearDefaultLanguage unsets the default flag on all languages.
func (q *Queries) ClearDefaultLanguage(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `UPDATE system_languages SET is_default = 0 WHERE is_default = 1`)
	return err
}

// SetDefaultLanguageParams holds the arguments for SetDefaultLanguage.
type SetDefaultLanguageParams struct {
	Code      string
	UpdatedAt time.Time
}

// SetDefaultLanguage marks a language as the default.
func (q *Queries) SetDefaultLanguage(ctx context.Context, arg SetDefaultLanguageParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE system_languages SET is_default = 1, is_enabled = 1, updated_at = ?
		WHERE code = ?`, arg.UpdatedAt, arg.Code)
	return err
}
