// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/olegiv/tms-go/internal/cache"
	"github.com/olegiv/tms-go/internal/model"
	"github.com/olegiv/tms-go/internal/store"
)

// Pipeline generates missing translations in bulk through an external
// provider and persists them via the store accessor with source "ai".
//
// Failures are tallied, not propagated: a failing batch or line item reports
// into the summary counts and never blocks sibling work. A total provider
// outage still returns a structured summary.
type Pipeline struct {
	queries   *store.Queries
	service   *Service
	registry  *cache.LanguageRegistry
	provider  Provider
	logger    *slog.Logger
	batchSize int
	itemDelay time.Duration
}

// NewPipeline wires the generation pipeline.
func NewPipeline(queries *store.Queries, service *Service, registry *cache.LanguageRegistry,
	provider Provider, logger *slog.Logger, batchSize int, itemDelay time.Duration) *Pipeline {
	if batchSize < 1 {
		batchSize = 10
	}
	return &Pipeline{
		queries:   queries,
		service:   service,
		registry:  registry,
		provider:  provider,
		logger:    logger,
		batchSize: batchSize,
		itemDelay: itemDelay,
	}
}

// BatchRequest describes one generation run over arbitrary text items
// belonging to a single entity.
type BatchRequest struct {
	EntityType      string
	EntityUUID      string
	Items           []TextItem
	SourceLanguage  string
	TargetLanguages []string // empty defaults to "the other" language
	Actor           string
}

// BatchSummary reports partial success of a generation run.
type BatchSummary struct {
	SuccessCount    int      `json:"success_count"`
	FailureCount    int      `json:"failure_count"`
	SourceLanguage  string   `json:"source_language"`
	TargetLanguages []string `json:"target_languages"`
}

// TranslateBatch generates target-language records for the given items. Items
// are chunked to bound request size; each chunk issues one provider call per
// target language. Lines the provider mangles are dropped and counted, the
// rest are persisted.
func (p *Pipeline) TranslateBatch(ctx context.Context, req BatchRequest) (BatchSummary, error) {
	if len(req.Items) == 0 {
		return BatchSummary{}, errEmptyBatch()
	}
	if !model.ValidEntityType(req.EntityType) {
		return BatchSummary{}, errInvalidEntityType(req.EntityType)
	}

	source := req.SourceLanguage
	if source == "" {
		source = p.registry.DefaultCode(ctx)
	}
	targets := req.TargetLanguages
	if len(targets) == 0 {
		targets = []string{p.otherLanguage(ctx, source)}
	}

	summary := BatchSummary{SourceLanguage: source, TargetLanguages: targets}

	for start := 0; start < len(req.Items); start += p.batchSize {
		end := start + p.batchSize
		if end > len(req.Items) {
			end = len(req.Items)
		}
		chunk := req.Items[start:end]

		for _, target := range targets {
			saved := p.translateChunk(ctx, req, chunk, source, target)
			summary.SuccessCount += saved
			summary.FailureCount += len(chunk) - saved
		}
	}

	return summary, nil
}

// translateChunk runs one provider call and persists whatever parses back.
// Returns the number of items saved.
func (p *Pipeline) translateChunk(ctx context.Context, req BatchRequest, chunk []TextItem, source, target string) int {
	content, err := p.provider.Translate(ctx, source, target, chunk)
	if err != nil {
		p.logger.Warn("pipeline provider call failed",
			"entity_type", req.EntityType, "entity_uuid", req.EntityUUID,
			"target", target, "items", len(chunk), "error", err)
		return 0
	}

	parsed, unparsable := ParseProviderResponse(content)
	for _, bad := range unparsable {
		p.logger.Warn("pipeline discarded malformed provider line",
			"entity_uuid", req.EntityUUID, "target", target,
			"line", bad.Raw, "reason", bad.Reason)
	}

	originals := make(map[string]string, len(chunk))
	for _, item := range chunk {
		originals[item.FieldKey] = item.Text
	}

	var records []BatchRecord
	for _, line := range parsed {
		originalText, ok := originals[line.FieldKey]
		if !ok || originalText == "" {
			p.logger.Warn("pipeline discarded unknown field key from provider",
				"entity_uuid", req.EntityUUID, "field_key", line.FieldKey)
			continue
		}
		records = append(records, BatchRecord{
			EntityType:           req.EntityType,
			EntityUUID:           req.EntityUUID,
			FieldKey:             line.FieldKey,
			LanguageCodeOriginal: source,
			LanguageCodeTarget:   target,
			OriginalText:         originalText,
			TranslatedText:       line.Text,
			Source:               model.SourceAI,
			Actor:                req.Actor,
		})
	}
	if len(records) == 0 {
		return 0
	}

	// Persist with a detached context: a caller abandoning the request must
	// not abort writes for provider work already done, or structures would be
	// left partially translated.
	if err := p.service.UpsertBatch(context.WithoutCancel(ctx), records); err != nil {
		p.logger.Error("pipeline failed to persist translations",
			"entity_uuid", req.EntityUUID, "target", target, "error", err)
		return 0
	}
	return len(records)
}

// StructureSummary reports a whole-structure retroactive generation run.
type StructureSummary struct {
	StructureUUID      string   `json:"structure_uuid"`
	LineItemsProcessed int      `json:"line_items_processed"`
	SuccessCount       int      `json:"success_count"`
	FailureCount       int      `json:"failure_count"`
	SourceLanguage     string   `json:"source_language"`
	TargetLanguages    []string `json:"target_languages"`
}

// GenerateForStructure translates a report structure's name plus every line
// item description. Line items go through the provider one at a time with a
// short inter-call delay for provider rate limits; one failing item never
// blocks the rest.
func (p *Pipeline) GenerateForStructure(ctx context.Context, structureUUID, actor string) (StructureSummary, error) {
	structure, err := p.queries.GetReportStructureByUUID(ctx, structureUUID)
	if err != nil {
		return StructureSummary{}, fmt.Errorf("loading structure %s: %w", structureUUID, err)
	}

	source := structure.SourceLanguageCode
	if source == "" {
		source = p.registry.DefaultCode(ctx)
	}
	targets := []string{p.otherLanguage(ctx, source)}

	summary := StructureSummary{
		StructureUUID:   structureUUID,
		SourceLanguage:  source,
		TargetLanguages: targets,
	}

	nameResult, err := p.TranslateBatch(ctx, BatchRequest{
		EntityType:      model.EntityTypeReportStructure,
		EntityUUID:      structureUUID,
		Items:           []TextItem{{FieldKey: model.FieldKeyStructureName, Text: structure.Name}},
		SourceLanguage:  source,
		TargetLanguages: targets,
		Actor:           actor,
	})
	if err != nil {
		return summary, err
	}
	if nameResult.FailureCount > 0 {
		p.logger.Warn("pipeline structure name translation failed", "structure_uuid", structureUUID)
	}

	items, err := p.queries.ListLineItemsForStructure(ctx, structureUUID)
	if err != nil {
		return summary, fmt.Errorf("loading line items: %w", err)
	}
	summary.LineItemsProcessed = len(items)

	limiter := rate.NewLimiter(rate.Every(p.itemDelay), 1)
	for _, item := range items {
		if item.Description == "" {
			continue
		}
		if err := limiter.Wait(ctx); err != nil {
			return summary, err
		}

		itemResult, err := p.TranslateBatch(ctx, BatchRequest{
			EntityType:      model.EntityTypeReportLineItem,
			EntityUUID:      item.UUID,
			Items:           []TextItem{{FieldKey: model.LineItemDescriptionFieldKey(item.ItemKey), Text: item.Description}},
			SourceLanguage:  source,
			TargetLanguages: targets,
			Actor:           actor,
		})
		if err != nil || itemResult.FailureCount > 0 {
			p.logger.Warn("pipeline line item translation failed",
				"structure_uuid", structureUUID, "line_item_uuid", item.UUID, "error", err)
			summary.FailureCount++
			continue
		}
		summary.SuccessCount++
	}

	return summary, nil
}

// otherLanguage picks the default target: the non-default language when
// source is the default, the default otherwise.
func (p *Pipeline) otherLanguage(ctx context.Context, source string) string {
	defaultCode := p.registry.DefaultCode(ctx)
	if source != defaultCode {
		return defaultCode
	}
	for _, lang := range p.registry.ListEnabled(ctx) {
		if lang.Code != source {
			return lang.Code
		}
	}
	return defaultCode
}
