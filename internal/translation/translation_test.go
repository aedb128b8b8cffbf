package translation

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/olegiv/tms-go/internal/cache"
	"github.com/olegiv/tms-go/internal/model"
	"github.com/olegiv/tms-go/internal/store"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "tms-translation-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestService seeds the default language pair and wires a Service without
// a cache in front.
func newTestService(t *testing.T, db *sql.DB) (*Service, *store.Queries, *cache.LanguageRegistry) {
	t.Helper()

	q := store.New(db)
	ctx := context.Background()
	now := time.Now()

	for _, arg := range []store.CreateLanguageParams{
		{Code: "de", Name: "German", NativeName: "Deutsch", IsDefault: true, IsEnabled: true, Position: 0, CreatedAt: now, UpdatedAt: now},
		{Code: "en", Name: "English", NativeName: "English", IsEnabled: true, Position: 1, CreatedAt: now, UpdatedAt: now},
	} {
		if _, err := q.CreateLanguage(ctx, arg); err != nil {
			t.Fatalf("CreateLanguage(%s): %v", arg.Code, err)
		}
	}

	registry := cache.NewLanguageRegistry(q, discardLogger())
	return NewService(q, registry, nil, discardLogger()), q, registry
}

func mustUpsert(t *testing.T, q *store.Queries, arg store.UpsertTranslationParams) {
	t.Helper()
	now := time.Now()
	arg.Source = model.SourceManual
	arg.CreatedBy = "test"
	arg.UpdatedBy = "test"
	arg.CreatedAt = now
	arg.UpdatedAt = now
	if _, err := q.UpsertTranslation(context.Background(), arg); err != nil {
		t.Fatalf("UpsertTranslation: %v", err)
	}
}

// insertHistoricRow writes a row with null original language and text, the
// shape the repair pass exists for.
func insertHistoricRow(t *testing.T, db *sql.DB, entityType, entityUUID, fieldKey, target, translated string) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO translations (entity_type, entity_uuid, field_key, language_code_original,
			language_code_target, original_text, translated_text, source, created_by, updated_by,
			created_at, updated_at)
		VALUES (?, ?, ?, NULL, ?, NULL, ?, 'import', 'legacy', 'legacy', ?, ?)`,
		entityType, entityUUID, fieldKey, target, translated, time.Now(), time.Now())
	if err != nil {
		t.Fatalf("inserting historic row: %v", err)
	}
}
