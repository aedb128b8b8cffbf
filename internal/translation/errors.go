// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package translation implements multilingual text resolution for report
// structures, line items and interface labels: a deterministic fallback chain
// over stored translation records, an AI-backed generation pipeline for
// filling gaps, and a repair pass for historic rows written without original
// language metadata.
package translation

import "fmt"

// ValidationError marks malformed input to the resolver or pipeline. It fails
// fast and never partially executes, unlike a counted per-item failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func errInvalidEntityType(entityType string) error {
	return &ValidationError{Field: "entity_type", Reason: fmt.Sprintf("unknown entity type %q", entityType)}
}

func errEmptyBatch() error {
	return &ValidationError{Field: "texts", Reason: "batch must contain at least one item"}
}
