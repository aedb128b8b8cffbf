// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
)

// RepairAssess reports per-entity-type completeness of the translations table.
func (h *Handler) RepairAssess(w http.ResponseWriter, r *http.Request) {
	report, err := h.repairer.Assess(r.Context())
	if err != nil {
		h.logger.Error("assessing translation completeness", "error", err)
		WriteInternalError(w, "assessment failed")
		return
	}
	WriteSuccess(w, report, nil)
}

// RepairMigrate runs the historic-data repair pass. ?dry_run=true counts the
// rows that would change without writing.
func (h *Handler) RepairMigrate(w http.ResponseWriter, r *http.Request) {
	dryRun := r.URL.Query().Get("dry_run") == "true"

	result, err := h.repairer.Migrate(r.Context(), dryRun)
	if err != nil {
		h.logger.Error("running translation repair", "dry_run", dryRun, "error", err)
		WriteInternalError(w, "repair failed")
		return
	}
	WriteSuccess(w, result, nil)
}

// RepairValidate reports which rows remain non-compliant after migration.
func (h *Handler) RepairValidate(w http.ResponseWriter, r *http.Request) {
	result, err := h.repairer.Validate(r.Context())
	if err != nil {
		h.logger.Error("validating translation completeness", "error", err)
		WriteInternalError(w, "validation failed")
		return
	}
	WriteSuccess(w, result, nil)
}
