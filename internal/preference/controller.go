// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package preference tracks per-user language preferences: the interface
// language for UI chrome and the content language for displayed entity text,
// independently settable, with a transient URL override for the content
// language that is never persisted.
package preference

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/tms-go/internal/cache"
	"github.com/olegiv/tms-go/internal/store"
)

// Preferences is the resolved language state for one request.
type Preferences struct {
	InterfaceLanguage string `json:"interface_language"`
	ContentLanguage   string `json:"content_language"`
	HasURLOverride    bool   `json:"has_url_override"`
}

// Controller resolves and persists user language preferences. The URL
// override is recomputed from the request on every resolution, never cached
// or stored.
type Controller struct {
	queries  *store.Queries
	registry *cache.LanguageRegistry
	logger   *slog.Logger
}

// NewController creates a preference controller.
func NewController(queries *store.Queries, registry *cache.LanguageRegistry, logger *slog.Logger) *Controller {
	return &Controller{queries: queries, registry: registry, logger: logger}
}

// Resolve returns the effective preferences for a user. urlOverride is the
// raw ?lang= value from the current request, empty when absent; it wins over
// the stored content language when it names an enabled language. Codes are
// matched case-insensitively, lower case is canonical.
func (c *Controller) Resolve(ctx context.Context, userUUID, urlOverride string) (Preferences, error) {
	urlOverride = strings.ToLower(urlOverride)
	defaultCode := c.registry.DefaultCode(ctx)
	prefs := Preferences{InterfaceLanguage: defaultCode, ContentLanguage: defaultCode}

	if userUUID != "" {
		user, err := c.queries.GetUserAccountByUUID(ctx, userUUID)
		switch {
		case err == nil:
			if c.registry.IsEnabledCode(ctx, user.PreferredUILanguage) {
				prefs.InterfaceLanguage = user.PreferredUILanguage
			}
			if c.registry.IsEnabledCode(ctx, user.PreferredContentLanguage) {
				prefs.ContentLanguage = user.PreferredContentLanguage
			}
		case errors.Is(err, sql.ErrNoRows):
			// Unknown user keeps the defaults.
		default:
			return Preferences{}, err
		}
	}

	if urlOverride != "" && c.registry.IsEnabledCode(ctx, urlOverride) {
		prefs.ContentLanguage = urlOverride
		prefs.HasURLOverride = true
	}

	return prefs, nil
}

// SetInterfaceLanguage persists the interface language for a user.
func (c *Controller) SetInterfaceLanguage(ctx context.Context, userUUID, code string) error {
	code = strings.ToLower(code)
	if !c.registry.IsEnabledCode(ctx, code) {
		return errUnknownLanguage(code)
	}
	return c.queries.UpdateUserUILanguage(ctx, store.UpdateUserUILanguageParams{
		UUID:                userUUID,
		PreferredUILanguage: code,
		UpdatedAt:           time.Now(),
	})
}

// SetContentLanguage persists the content language for a user. While a URL
// override is active the stored preference is left untouched: the override is
// what the user currently sees, and writing through it would silently change
// what they see after the override goes away.
func (c *Controller) SetContentLanguage(ctx context.Context, userUUID, code, urlOverride string) error {
	code = strings.ToLower(code)
	urlOverride = strings.ToLower(urlOverride)
	if !c.registry.IsEnabledCode(ctx, code) {
		return errUnknownLanguage(code)
	}
	if urlOverride != "" && c.registry.IsEnabledCode(ctx, urlOverride) {
		c.logger.Info("content language change skipped while URL override active",
			"user_uuid", userUUID, "requested", code, "override", urlOverride)
		return nil
	}
	return c.queries.UpdateUserContentLanguage(ctx, store.UpdateUserContentLanguageParams{
		UUID:                     userUUID,
		PreferredContentLanguage: code,
		UpdatedAt:                time.Now(),
	})
}

// UnknownLanguageError marks a preference write naming a language outside the
// enabled set.
type UnknownLanguageError struct {
	Code string
}

func (e *UnknownLanguageError) Error() string {
	return "unknown or disabled language code: " + e.Code
}

func errUnknownLanguage(code string) error {
	return &UnknownLanguageError{Code: code}
}
