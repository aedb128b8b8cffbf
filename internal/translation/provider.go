// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"context"
	"strings"

	"github.com/olegiv/tms-go/internal/model"
)

// TextItem is one source text submitted for translation.
type TextItem struct {
	FieldKey string
	Text     string
}

// Provider turns a set of source texts into target-language text. The
// response is free text expected to follow the "field_key: text" convention;
// ParseProviderResponse handles everything it does not guarantee.
type Provider interface {
	Translate(ctx context.Context, sourceLanguage, targetLanguage string, items []TextItem) (string, error)
}

const systemPrompt = "You are a professional financial translator. Translate financial " +
	"and accounting terms accurately while maintaining their professional context. " +
	"Always preserve the field_key: text format in your response."

// buildPrompt renders the user prompt for one batch and target language.
func buildPrompt(sourceLanguage, targetLanguage string, items []TextItem) string {
	var sb strings.Builder
	sb.WriteString("Translate the following ")
	sb.WriteString(model.LanguageName(sourceLanguage))
	sb.WriteString(" financial/accounting terms to ")
	sb.WriteString(model.LanguageName(targetLanguage))
	sb.WriteString(".\n")
	sb.WriteString("These are report structure names, line item descriptions, and other financial terminology.\n")
	sb.WriteString("Maintain professional financial language and context.\n")
	sb.WriteString("Keep the same format with field_key: translated_text for each line.\n")
	sb.WriteString("If a term should not be translated (like proper nouns), keep it as is.\n\n")
	for _, item := range items {
		sb.WriteString(item.FieldKey)
		sb.WriteString(": ")
		sb.WriteString(item.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
