// Package store provides database access for the translation service.
// Queries follow a generated-code convention: one method per statement,
// Params structs for multi-argument writes, rows scanned into plain structs.
package store

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the subset of *sql.DB / *sql.Tx the queries need.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries exposes all database operations.
type Queries struct {
	db DBTX
}

// New creates a Queries instance bound to the given database handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries bound to a transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Language is a row of system_languages.
type Language struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	NativeName string    `json:"native_name"`
	IsDefault  bool      `json:"is_default"`
	IsEnabled  bool      `json:"is_enabled"`
	Position   int64     `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Translation is a row of translations. LanguageCodeOriginal and OriginalText
// are nullable because historic rows were written without them; the repair
// pass backfills both.
type Translation struct {
	ID                   int64          `json:"id"`
	EntityType           string         `json:"entity_type"`
	EntityUUID           string         `json:"entity_uuid"`
	FieldKey             string         `json:"field_key"`
	LanguageCodeOriginal sql.NullString `json:"language_code_original"`
	LanguageCodeTarget   string         `json:"language_code_target"`
	OriginalText         sql.NullString `json:"original_text"`
	TranslatedText       string         `json:"translated_text"`
	Source               string         `json:"source"`
	CreatedBy            string         `json:"created_by"`
	UpdatedBy            string         `json:"updated_by"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// ReportStructure is a row of report_structures.
type ReportStructure struct {
	ID                 int64     `json:"id"`
	UUID               string    `json:"uuid"`
	Name               string    `json:"name"`
	SourceLanguageCode string    `json:"source_language_code"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ReportLineItem is a row of report_line_items.
type ReportLineItem struct {
	ID            int64     `json:"id"`
	UUID          string    `json:"uuid"`
	StructureUUID string    `json:"structure_uuid"`
	ItemKey       string    `json:"item_key"`
	Description   string    `json:"description"`
	Position      int64     `json:"position"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserAccount is a row of user_accounts.
type UserAccount struct {
	ID                       int64     `json:"id"`
	UUID                     string    `json:"uuid"`
	Email                    string    `json:"email"`
	PreferredUILanguage      string    `json:"preferred_ui_language"`
	PreferredContentLanguage string    `json:"preferred_content_language"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// Event is a row of events.
type Event struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}
