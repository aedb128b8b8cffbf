package middleware

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/olegiv/tms-go/internal/cache"
	"github.com/olegiv/tms-go/internal/preference"
	"github.com/olegiv/tms-go/internal/store"
)

func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "tms-middleware-test-*.db")
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

func testHandlerChain(t *testing.T, db *sql.DB) (http.Handler, *store.Queries, *preference.Preferences) {
	t.Helper()

	q := store.New(db)
	ctx := context.Background()
	now := time.Now()
	for _, arg := range []store.CreateLanguageParams{
		{Code: "de", Name: "German", NativeName: "Deutsch", IsDefault: true, IsEnabled: true, CreatedAt: now, UpdatedAt: now},
		{Code: "en", Name: "English", NativeName: "English", IsEnabled: true, Position: 1, CreatedAt: now, UpdatedAt: now},
	} {
		if _, err := q.CreateLanguage(ctx, arg); err != nil {
			t.Fatalf("CreateLanguage(%s): %v", arg.Code, err)
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := cache.NewLanguageRegistry(q, logger)
	ctrl := preference.NewController(q, registry, logger)

	var captured preference.Preferences
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prefs, ok := GetPreferences(r)
		if !ok {
			t.Error("preferences missing from request context")
		}
		captured = prefs
		w.WriteHeader(http.StatusOK)
	})

	return Language(ctrl, registry, logger)(inner), q, &captured
}

func TestLanguage_DefaultWithoutHints(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	handler, _, captured := testHandlerChain(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if captured.ContentLanguage != "de" || captured.InterfaceLanguage != "de" {
		t.Errorf("prefs = %+v, want default de", *captured)
	}
	if captured.HasURLOverride {
		t.Error("HasURLOverride = true without ?lang=")
	}
}

func TestLanguage_URLOverride(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	handler, _, captured := testHandlerChain(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/reports?lang=en", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if captured.ContentLanguage != "en" {
		t.Errorf("ContentLanguage = %q, want overridden en", captured.ContentLanguage)
	}
	if !captured.HasURLOverride {
		t.Error("HasURLOverride = false, want true")
	}
}

func TestLanguage_OverrideRecomputedPerRequest(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	handler, _, captured := testHandlerChain(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/reports?lang=en", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if !captured.HasURLOverride {
		t.Fatal("first request should carry the override")
	}

	// The next navigation without ?lang= must not remember the override.
	req = httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if captured.HasURLOverride {
		t.Error("override leaked into a request without ?lang=")
	}
	if captured.ContentLanguage != "de" {
		t.Errorf("ContentLanguage = %q, want stored/default de", captured.ContentLanguage)
	}
}

func TestLanguage_UserPreference(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	handler, q, captured := testHandlerChain(t, db)

	now := time.Now()
	if _, err := q.CreateUserAccount(context.Background(), store.CreateUserAccountParams{
		UUID: "u1", Email: "u1@example.com",
		PreferredUILanguage: "en", PreferredContentLanguage: "en",
		CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreateUserAccount: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set(UserUUIDHeader, "u1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if captured.InterfaceLanguage != "en" || captured.ContentLanguage != "en" {
		t.Errorf("prefs = %+v, want stored en/en", *captured)
	}
}

func TestLanguage_AcceptLanguageFallback(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	handler, _, captured := testHandlerChain(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if captured.ContentLanguage != "en" {
		t.Errorf("ContentLanguage = %q, want en from Accept-Language", captured.ContentLanguage)
	}
}

func TestLanguage_UserPreferenceBeatsAcceptLanguage(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	handler, q, captured := testHandlerChain(t, db)

	now := time.Now()
	if _, err := q.CreateUserAccount(context.Background(), store.CreateUserAccountParams{
		UUID: "u1", Email: "u1@example.com",
		PreferredUILanguage: "de", PreferredContentLanguage: "de",
		CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreateUserAccount: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set(UserUUIDHeader, "u1")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if captured.ContentLanguage != "de" {
		t.Errorf("ContentLanguage = %q, stored preference must win over the header", captured.ContentLanguage)
	}
}
