// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for request language
// resolution and context handling.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/olegiv/tms-go/internal/cache"
	"github.com/olegiv/tms-go/internal/preference"
)

// ContextKey is the type for request context keys set by this package.
type ContextKey string

// ContextKeyPreferences carries the resolved language preferences.
const ContextKeyPreferences ContextKey = "language_preferences"

// UserUUIDHeader names the header the identity layer uses to hand the
// current user to this service.
const UserUUIDHeader = "X-User-UUID"

// Language resolves the request's language preferences and stores them in the
// context. Priority order for the content language:
//
//  1. Query parameter ?lang=XX, a transient override recomputed on every
//     request and never persisted
//  2. The user's stored preference
//  3. Accept-Language header matching against the enabled languages
//  4. The registry default
func Language(ctrl *preference.Controller, registry *cache.LanguageRegistry, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			urlOverride := strings.ToLower(r.URL.Query().Get("lang"))
			userUUID := r.Header.Get(UserUUIDHeader)

			prefs, err := ctrl.Resolve(ctx, userUUID, urlOverride)
			if err != nil {
				logger.Error("resolving language preferences", "user_uuid", userUUID, "error", err)
				defaultCode := registry.DefaultCode(ctx)
				prefs = preference.Preferences{InterfaceLanguage: defaultCode, ContentLanguage: defaultCode}
			}

			// An anonymous request without an override can still carry an
			// Accept-Language hint.
			if userUUID == "" && !prefs.HasURLOverride {
				if code, ok := matchAcceptLanguage(ctx, registry, r.Header.Get("Accept-Language")); ok {
					prefs.InterfaceLanguage = code
					prefs.ContentLanguage = code
				}
			}

			ctx = context.WithValue(ctx, ContextKeyPreferences, prefs)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// matchAcceptLanguage matches an Accept-Language header against the enabled
// language set.
func matchAcceptLanguage(ctx context.Context, registry *cache.LanguageRegistry, header string) (string, bool) {
	if header == "" {
		return "", false
	}

	enabled := registry.ListEnabled(ctx)
	tags := make([]language.Tag, 0, len(enabled))
	codes := make([]string, 0, len(enabled))
	for _, lang := range enabled {
		tag, err := language.Parse(lang.Code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		codes = append(codes, lang.Code)
	}
	if len(tags) == 0 {
		return "", false
	}

	wanted, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(wanted) == 0 {
		return "", false
	}

	matcher := language.NewMatcher(tags)
	_, index, confidence := matcher.Match(wanted...)
	if confidence == language.No {
		return "", false
	}
	return codes[index], true
}

// GetPreferences retrieves the resolved preferences from the request context.
// The second return is false when the Language middleware did not run.
func GetPreferences(r *http.Request) (preference.Preferences, bool) {
	prefs, ok := r.Context().Value(ContextKeyPreferences).(preference.Preferences)
	return prefs, ok
}
