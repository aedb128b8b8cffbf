// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"strings"

	"github.com/olegiv/tms-go/internal/model"
)

// ParsedLine is one usable "field_key: text" line from a provider response.
type ParsedLine struct {
	FieldKey string
	Text     string
}

// UnparsableLine is a non-blank response line that could not be turned into a
// translation. The pipeline counts these as failures instead of aborting the
// batch.
type UnparsableLine struct {
	Raw    string
	Reason string
}

// ParseProviderResponse splits a free-text provider response into parsed and
// unparsable lines. The provider is asked for strict "field_key: text" lines
// but offers no schema guarantee, so every line is checked defensively:
// missing separator, empty field key, over-long field key and empty text are
// all discarded per line.
func ParseProviderResponse(content string) ([]ParsedLine, []UnparsableLine) {
	var parsed []ParsedLine
	var unparsable []UnparsableLine

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fieldKey, text, ok := strings.Cut(line, ":")
		if !ok {
			unparsable = append(unparsable, UnparsableLine{Raw: line, Reason: "missing separator"})
			continue
		}

		fieldKey = strings.TrimSpace(fieldKey)
		text = strings.TrimSpace(text)

		switch {
		case fieldKey == "":
			unparsable = append(unparsable, UnparsableLine{Raw: line, Reason: "empty field key"})
		case len(fieldKey) > model.MaxFieldKeyLen:
			unparsable = append(unparsable, UnparsableLine{Raw: line, Reason: "field key too long"})
		case text == "":
			unparsable = append(unparsable, UnparsableLine{Raw: line, Reason: "empty text"})
		default:
			parsed = append(parsed, ParsedLine{FieldKey: fieldKey, Text: text})
		}
	}

	return parsed, unparsable
}
