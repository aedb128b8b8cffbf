package preference

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/olegiv/tms-go/internal/cache"
	"github.com/olegiv/tms-go/internal/store"
)

func testController(t *testing.T) (*Controller, *store.Queries, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "tms-preference-test-*.db")
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

	q := store.New(db)
	ctx := context.Background()
	now := time.Now()
	for _, arg := range []store.CreateLanguageParams{
		{Code: "de", Name: "German", NativeName: "Deutsch", IsDefault: true, IsEnabled: true, CreatedAt: now, UpdatedAt: now},
		{Code: "en", Name: "English", NativeName: "English", IsEnabled: true, Position: 1, CreatedAt: now, UpdatedAt: now},
		{Code: "fr", Name: "French", NativeName: "Français", IsEnabled: true, Position: 2, CreatedAt: now, UpdatedAt: now},
	} {
		if _, err := q.CreateLanguage(ctx, arg); err != nil {
			t.Fatalf("CreateLanguage(%s): %v", arg.Code, err)
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := cache.NewLanguageRegistry(q, logger)
	c := NewController(q, registry, logger)

	return c, q, func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
}

func mustCreateUser(t *testing.T, q *store.Queries, uuid, ui, content string) {
	t.Helper()
	now := time.Now()
	if _, err := q.CreateUserAccount(context.Background(), store.CreateUserAccountParams{
		UUID: uuid, Email: uuid + "@example.com",
		PreferredUILanguage: ui, PreferredContentLanguage: content,
		CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreateUserAccount: %v", err)
	}
}

func TestResolve_StoredPreferences(t *testing.T) {
	c, q, cleanup := testController(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, q, "u1", "en", "de")

	prefs, err := c.Resolve(ctx, "u1", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if prefs.InterfaceLanguage != "en" {
		t.Errorf("InterfaceLanguage = %q, want en", prefs.InterfaceLanguage)
	}
	if prefs.ContentLanguage != "de" {
		t.Errorf("ContentLanguage = %q, want de", prefs.ContentLanguage)
	}
	if prefs.HasURLOverride {
		t.Error("HasURLOverride = true without a ?lang= parameter")
	}
}

func TestResolve_URLOverride(t *testing.T) {
	c, q, cleanup := testController(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, q, "u1", "de", "de")

	prefs, err := c.Resolve(ctx, "u1", "en")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if prefs.ContentLanguage != "en" {
		t.Errorf("ContentLanguage = %q, want overridden en", prefs.ContentLanguage)
	}
	if !prefs.HasURLOverride {
		t.Error("HasURLOverride = false, want true")
	}
	// Interface language is not affected by the content override.
	if prefs.InterfaceLanguage != "de" {
		t.Errorf("InterfaceLanguage = %q, want de", prefs.InterfaceLanguage)
	}
}

func TestResolve_UnknownOverrideIgnored(t *testing.T) {
	c, q, cleanup := testController(t)
	defer cleanup()

	mustCreateUser(t, q, "u1", "de", "de")

	prefs, err := c.Resolve(context.Background(), "u1", "xx")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if prefs.ContentLanguage != "de" || prefs.HasURLOverride {
		t.Errorf("prefs = %+v, want stored de and no override", prefs)
	}
}

func TestResolve_UnknownUserFallsBackToDefault(t *testing.T) {
	c, _, cleanup := testController(t)
	defer cleanup()

	prefs, err := c.Resolve(context.Background(), "missing", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if prefs.InterfaceLanguage != "de" || prefs.ContentLanguage != "de" {
		t.Errorf("prefs = %+v, want registry default de", prefs)
	}
}

func TestSetContentLanguage_NotPersistedWhileOverrideActive(t *testing.T) {
	c, q, cleanup := testController(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, q, "u1", "de", "de")

	// With ?lang=en active, setting fr must not write through.
	if err := c.SetContentLanguage(ctx, "u1", "fr", "en"); err != nil {
		t.Fatalf("SetContentLanguage: %v", err)
	}

	user, err := q.GetUserAccountByUUID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUserAccountByUUID: %v", err)
	}
	if user.PreferredContentLanguage != "de" {
		t.Errorf("stored content language = %q, want untouched de", user.PreferredContentLanguage)
	}

	// Without the override the write goes through.
	if err := c.SetContentLanguage(ctx, "u1", "fr", ""); err != nil {
		t.Fatalf("SetContentLanguage: %v", err)
	}
	user, err = q.GetUserAccountByUUID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUserAccountByUUID: %v", err)
	}
	if user.PreferredContentLanguage != "fr" {
		t.Errorf("stored content language = %q, want fr", user.PreferredContentLanguage)
	}
}

func TestSetInterfaceLanguage_Independent(t *testing.T) {
	c, q, cleanup := testController(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, q, "u1", "de", "de")

	if err := c.SetInterfaceLanguage(ctx, "u1", "en"); err != nil {
		t.Fatalf("SetInterfaceLanguage: %v", err)
	}

	user, err := q.GetUserAccountByUUID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUserAccountByUUID: %v", err)
	}
	if user.PreferredUILanguage != "en" {
		t.Errorf("ui language = %q, want en", user.PreferredUILanguage)
	}
	if user.PreferredContentLanguage != "de" {
		t.Errorf("content language = %q, must stay de", user.PreferredContentLanguage)
	}
}

// Codes are case-insensitive, lower case canonical: upper-case input must be
// accepted, stored lower case, and match as an override.
func TestSetLanguage_CaseInsensitive(t *testing.T) {
	c, q, cleanup := testController(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, q, "u1", "de", "de")

	if err := c.SetContentLanguage(ctx, "u1", "EN", ""); err != nil {
		t.Fatalf("SetContentLanguage(EN): %v", err)
	}
	if err := c.SetInterfaceLanguage(ctx, "u1", "FR"); err != nil {
		t.Fatalf("SetInterfaceLanguage(FR): %v", err)
	}

	user, err := q.GetUserAccountByUUID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUserAccountByUUID: %v", err)
	}
	if user.PreferredContentLanguage != "en" {
		t.Errorf("stored content language = %q, want canonical en", user.PreferredContentLanguage)
	}
	if user.PreferredUILanguage != "fr" {
		t.Errorf("stored ui language = %q, want canonical fr", user.PreferredUILanguage)
	}

	prefs, err := c.Resolve(ctx, "u1", "DE")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if prefs.ContentLanguage != "de" || !prefs.HasURLOverride {
		t.Errorf("prefs = %+v, want override de applied case-insensitively", prefs)
	}
}

func TestSetLanguage_RejectsUnknownCode(t *testing.T) {
	c, q, cleanup := testController(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateUser(t, q, "u1", "de", "de")

	if err := c.SetInterfaceLanguage(ctx, "u1", "xx"); err == nil {
		t.Error("SetInterfaceLanguage accepted an unknown code")
	}
	if err := c.SetContentLanguage(ctx, "u1", "xx", ""); err == nil {
		t.Error("SetContentLanguage accepted an unknown code")
	}
}
