// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Entity types for translations. UI entities are identified by a ui_key string
// carried in the entity UUID column; report entities by their UUID.
const (
	EntityTypeUI              = "ui"
	EntityTypeReportStructure = "report_structure"
	EntityTypeReportLineItem  = "report_line_item"
)

// Translation sources (provenance).
const (
	SourceManual = "manual"
	SourceAI     = "ai"
	SourceImport = "import"
)

// ValidEntityType reports whether t is one of the known entity types.
func ValidEntityType(t string) bool {
	switch t {
	case EntityTypeUI, EntityTypeReportStructure, EntityTypeReportLineItem:
		return true
	}
	return false
}

// ValidSource reports whether s is a known provenance tag.
func ValidSource(s string) bool {
	switch s {
	case SourceManual, SourceAI, SourceImport:
		return true
	}
	return false
}

// MissingSentinel returns the placeholder for an unresolved translation gap.
// The literal format is load-bearing: it is user-visible, greppable, and the
// completeness tooling treats it as "generation needed", never as content.
func MissingSentinel(fieldKey string) string {
	return "[missing:" + fieldKey + "]"
}

// MaxFieldKeyLen bounds field keys accepted from provider responses.
const MaxFieldKeyLen = 500

// FieldKeyStructureName is the field key for a report structure's own name.
const FieldKeyStructureName = "report_structure_name"

// LineItemDescriptionFieldKey builds the field key for a line item description.
func LineItemDescriptionFieldKey(itemKey string) string {
	return itemKey + "_description"
}

// FieldKeyUIText is the field key used for UI label translations; UI entities
// carry their label key as the entity identifier, so the field is constant.
const FieldKeyUIText = "text"
