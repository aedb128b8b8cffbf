package store

import (
	"context"
	"time"
)

// CreateReportStructureParams holds the arguments for CreateReportStructure.
type CreateReportStructureParams struct {
	UUID               string
	Name               string
	SourceLanguageCode string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CreateReportStructure inserts a new report structure.
func (q *Queries) CreateReportStructure(ctx context.Context, arg CreateReportStructureParams) (ReportStructure, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO report_structures (uuid, name, source_language_code, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, uuid, name, source_language_code, created_at, updated_at`,
		arg.UUID, arg.Name, arg.SourceLanguageCode, arg.CreatedAt, arg.UpdatedAt)
	var s ReportStructure
	err := row.Scan(&s.ID, &s.UUID, &s.Name, &s.SourceLanguageCode, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// GetReportStructureByUUID returns the structure with the given UUID.
func (q *Queries) GetReportStructureByUUID(ctx context.Context, uuid string) (ReportStructure, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, uuid, name, source_language_code, created_at, updated_at
		FROM report_structures WHERE uuid = ?`, uuid)
	var s ReportStructure
	err := row.Scan(&s.ID, &s.UUID, &s.Name, &s.SourceLanguageCode, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// ListReportStructures returns all report structures.
func (q *Queries) ListReportStructures(ctx context.Context) ([]ReportStructure, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, uuid, name, source_language_code, created_at, updated_at
		FROM report_structures ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReportStructure
	for rows.Next() {
		var s ReportStructure
		if err := rows.Scan(&s.ID, &s.UUID, &s.Name, &s.SourceLanguageCode, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreateReportLineItemParams holds the arguments for CreateReportLineItem.
type CreateReportLineItemParams struct {
	UUID          string
	StructureUUID string
	ItemKey       string
	Description   string
	Position      int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateReportLineItem inserts a new line item.
func (q *Queries) CreateReportLineItem(ctx context.Context, arg CreateReportLineItemParams) (ReportLineItem, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO report_line_items (uuid, structure_uuid, item_key, description, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, uuid, structure_uuid, item_key, description, position, created_at, updated_at`,
		arg.UUID, arg.StructureUUID, arg.ItemKey, arg.Description, arg.Position, arg.CreatedAt, arg.UpdatedAt)
	var li ReportLineItem
	err := row.Scan(&li.ID, &li.UUID, &li.StructureUUID, &li.ItemKey, &li.Description, &li.Position, &li.CreatedAt, &li.UpdatedAt)
	return li, err
}

// ListLineItemsForStructure returns all line items of a structure in position order.
func (q *Queries) ListLineItemsForStructure(ctx context.Context, structureUUID string) ([]ReportLineItem, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, uuid, structure_uuid, item_key, description, position, created_at, updated_at
		FROM report_line_items WHERE structure_uuid = ? ORDER BY position ASC, id ASC`, structureUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReportLineItem
	for rows.Next() {
		var li ReportLineItem
		if err := rows.Scan(&li.ID, &li.UUID, &li.StructureUUID, &li.ItemKey, &li.Description, &li.Position, &li.CreatedAt, &li.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, li)
	}
	return out, rows.Err()
}
