// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain constants and helpers shared across the
// translation service: entity types, provenance tags, field key conventions,
// and language metadata used in provider prompts.
package model

// LanguageNames maps language codes to English names used in provider prompts.
var LanguageNames = map[string]string{
	"de": "German",
	"en": "English",
	"fr": "French",
	"es": "Spanish",
	"it": "Italian",
	"sv": "Swedish",
	"da": "Danish",
	"no": "Norwegian",
	"fi": "Finnish",
	"nl": "Dutch",
}

// LanguageName returns the English name for a code, falling back to the code itself.
func LanguageName(code string) string {
	if name, ok := LanguageNames[code]; ok {
		return name
	}
	return code
}
