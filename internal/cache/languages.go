package cache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/olegiv/tms-go/internal/store"
)

// fallbackLanguages is served when the backing store is unreachable. The UI
// must always be able to render something, so registry reads fail closed to
// this two-entry list at the cost of a possibly stale language set.
var fallbackLanguages = []store.Language{
	{Code: "de", Name: "German", NativeName: "Deutsch", IsDefault: true, IsEnabled: true, Position: 0},
	{Code: "en", Name: "English", NativeName: "English", IsEnabled: true, Position: 1},
}

// LanguageRegistry provides cached access to the system languages and the
// single default language.
type LanguageRegistry struct {
	queries *store.Queries
	logger  *slog.Logger

	mu          sync.RWMutex
	enabled     []store.Language
	byCode      map[string]store.Language
	defaultLang *store.Language
	loaded      bool
}

// NewLanguageRegistry creates a registry reading through the given queries.
func NewLanguageRegistry(queries *store.Queries, logger *slog.Logger) *LanguageRegistry {
	return &LanguageRegistry{
		queries: queries,
		logger:  logger,
		byCode:  make(map[string]store.Language),
	}
}

// ListEnabled returns the enabled languages, default first. On a store error
// it returns the hardcoded fallback pair instead of failing.
func (r *LanguageRegistry) ListEnabled(ctx context.Context) []store.Language {
	r.mu.RLock()
	if r.loaded {
		result := make([]store.Language, len(r.enabled))
		copy(result, r.enabled)
		r.mu.RUnlock()
		return result
	}
	r.mu.RUnlock()

	if err := r.loadAll(ctx); err != nil {
		r.logger.Warn("language registry unreachable, using fallback list", "error", err)
		result := make([]store.Language, len(fallbackLanguages))
		copy(result, fallbackLanguages)
		return result
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]store.Language, len(r.enabled))
	copy(result, r.enabled)
	return result
}

// DefaultCode returns the default language code, falling back to the
// hardcoded default when the store is unreachable or no default is set.
func (r *LanguageRegistry) DefaultCode(ctx context.Context) string {
	r.mu.RLock()
	if r.loaded && r.defaultLang != nil {
		code := r.defaultLang.Code
		r.mu.RUnlock()
		return code
	}
	r.mu.RUnlock()

	if err := r.loadAll(ctx); err != nil {
		r.logger.Warn("language registry unreachable, using fallback default", "error", err)
		return fallbackLanguages[0].Code
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.defaultLang != nil {
		return r.defaultLang.Code
	}
	return fallbackLanguages[0].Code
}

// IsEnabledCode reports whether code belongs to the enabled language set.
// With the store unreachable, the fallback pair is consulted.
func (r *LanguageRegistry) IsEnabledCode(ctx context.Context, code string) bool {
	for _, lang := range r.ListEnabled(ctx) {
		if lang.Code == code {
			return true
		}
	}
	return false
}

// loadAll loads all enabled languages from the database.
func (r *LanguageRegistry) loadAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if r.loaded {
		return nil
	}

	languages, err := r.queries.ListEnabledLanguages(ctx)
	if err != nil {
		return err
	}

	r.enabled = languages
	r.byCode = make(map[string]store.Language, len(languages))
	r.defaultLang = nil
	for _, lang := range languages {
		r.byCode[lang.Code] = lang
		if lang.IsDefault {
			langCopy := lang
			r.defaultLang = &langCopy
		}
	}

	r.loaded = true
	return nil
}

// Invalidate clears the registry, forcing a reload on next access.
// Called after any language mutation.
func (r *LanguageRegistry) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = false
	r.enabled = nil
	r.byCode = make(map[string]store.Language)
	r.defaultLang = nil
}

// Preload loads the languages eagerly, for warming up on startup.
func (r *LanguageRegistry) Preload(ctx context.Context) error {
	return r.loadAll(ctx)
}
