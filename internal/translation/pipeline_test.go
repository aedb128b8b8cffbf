package translation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/tms-go/internal/model"
	"github.com/olegiv/tms-go/internal/store"
)

// fakeProvider scripts provider responses per call.
type fakeProvider struct {
	translateFn func(sourceLanguage, targetLanguage string, items []TextItem) (string, error)
	calls       int
}

func (f *fakeProvider) Translate(_ context.Context, sourceLanguage, targetLanguage string, items []TextItem) (string, error) {
	f.calls++
	return f.translateFn(sourceLanguage, targetLanguage, items)
}

// echoProvider translates every item to "<target>:<text>" in valid line format.
func echoProvider() *fakeProvider {
	return &fakeProvider{translateFn: func(_, target string, items []TextItem) (string, error) {
		out := ""
		for _, item := range items {
			out += fmt.Sprintf("%s: %s-%s\n", item.FieldKey, target, item.Text)
		}
		return out, nil
	}}
}

func newTestPipeline(t *testing.T, svc *Service, q *store.Queries, provider Provider) *Pipeline {
	t.Helper()
	return NewPipeline(q, svc, svc.registry, provider, discardLogger(), 10, time.Millisecond)
}

func TestTranslateBatch_PartialFailure(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	svc, q, _ := newTestService(t, db)
	ctx := context.Background()

	// Provider mangles exactly one of ten lines.
	provider := &fakeProvider{translateFn: func(_, _ string, items []TextItem) (string, error) {
		out := ""
		for i, item := range items {
			if i == 3 {
				out += "this line has no separator\n"
				continue
			}
			out += fmt.Sprintf("%s: translated %s\n", item.FieldKey, item.Text)
		}
		return out, nil
	}}
	p := newTestPipeline(t, svc, q, provider)

	items := make([]TextItem, 10)
	for i := range items {
		items[i] = TextItem{FieldKey: fmt.Sprintf("item_%d_description", i), Text: fmt.Sprintf("Posten %d", i)}
	}

	summary, err := p.TranslateBatch(ctx, BatchRequest{
		EntityType:      model.EntityTypeReportLineItem,
		EntityUUID:      "li1",
		Items:           items,
		SourceLanguage:  "de",
		TargetLanguages: []string{"en"},
		Actor:           "test",
	})
	require.NoError(t, err)
	assert.Equal(t, 9, summary.SuccessCount)
	assert.Equal(t, 1, summary.FailureCount)

	stored, err := q.ListTranslationsForEntity(ctx, store.ListTranslationsForEntityParams{
		EntityType: model.EntityTypeReportLineItem, EntityUUID: "li1", LanguageCodeTarget: "en",
	})
	require.NoError(t, err)
	assert.Len(t, stored, 9)
	for _, rec := range stored {
		assert.Equal(t, model.SourceAI, rec.Source)
		assert.Equal(t, "de", rec.LanguageCodeOriginal.String)
		assert.True(t, rec.OriginalText.Valid)
	}
}

func TestTranslateBatch_ProviderOutage(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	svc, q, _ := newTestService(t, db)

	provider := &fakeProvider{translateFn: func(_, _ string, _ []TextItem) (string, error) {
		return "", errors.New("provider unavailable")
	}}
	p := newTestPipeline(t, svc, q, provider)

	summary, err := p.TranslateBatch(context.Background(), BatchRequest{
		EntityType:      model.EntityTypeReportStructure,
		EntityUUID:      "s1",
		Items:           []TextItem{{FieldKey: "a", Text: "x"}, {FieldKey: "b", Text: "y"}},
		SourceLanguage:  "de",
		TargetLanguages: []string{"en"},
	})
	// Total outage still yields a structured summary, not an error.
	require.NoError(t, err)
	assert.Equal(t, 0, summary.SuccessCount)
	assert.Equal(t, 2, summary.FailureCount)
}

func TestTranslateBatch_EmptyBatchFailsFast(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	svc, q, _ := newTestService(t, db)
	p := newTestPipeline(t, svc, q, echoProvider())

	_, err := p.TranslateBatch(context.Background(), BatchRequest{
		EntityType: model.EntityTypeReportStructure,
		EntityUUID: "s1",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestTranslateBatch_DefaultTargetIsOtherLanguage(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	svc, q, _ := newTestService(t, db)
	p := newTestPipeline(t, svc, q, echoProvider())
	ctx := context.Background()

	// Source is the default (de), so the implied target is en.
	summary, err := p.TranslateBatch(ctx, BatchRequest{
		EntityType:     model.EntityTypeReportStructure,
		EntityUUID:     "s1",
		Items:          []TextItem{{FieldKey: model.FieldKeyStructureName, Text: "Bilanz"}},
		SourceLanguage: "de",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, summary.TargetLanguages)

	// And the other way around.
	summary, err = p.TranslateBatch(ctx, BatchRequest{
		EntityType:     model.EntityTypeReportStructure,
		EntityUUID:     "s2",
		Items:          []TextItem{{FieldKey: model.FieldKeyStructureName, Text: "Balance Sheet"}},
		SourceLanguage: "en",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"de"}, summary.TargetLanguages)
}

func TestGenerateForStructure(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	svc, q, _ := newTestService(t, db)
	ctx := context.Background()
	now := time.Now()

	_, err := q.CreateReportStructure(ctx, store.CreateReportStructureParams{
		UUID: "S1", Name: "Bilanz", SourceLanguageCode: "de", CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	for i, item := range []struct{ key, desc string }{
		{"cash", "Kasse"},
		{"receivables", "Forderungen"},
		{"empty", ""}, // skipped, no description
	} {
		_, err := q.CreateReportLineItem(ctx, store.CreateReportLineItemParams{
			UUID: fmt.Sprintf("LI%d", i), StructureUUID: "S1", ItemKey: item.key,
			Description: item.desc, Position: int64(i), CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)
	}

	translations := map[string]string{
		"report_structure_name":   "Balance Sheet",
		"cash_description":        "Cash",
		"receivables_description": "Receivables",
	}
	provider := &fakeProvider{translateFn: func(_, _ string, items []TextItem) (string, error) {
		out := ""
		for _, item := range items {
			out += fmt.Sprintf("%s: %s\n", item.FieldKey, translations[item.FieldKey])
		}
		return out, nil
	}}
	p := newTestPipeline(t, svc, q, provider)

	// Before generation the English name resolves to the sentinel.
	got, err := svc.GetText(ctx, model.EntityTypeReportStructure, "S1", model.FieldKeyStructureName, "en")
	require.NoError(t, err)
	assert.Equal(t, "[missing:report_structure_name]", got)

	summary, err := p.GenerateForStructure(ctx, "S1", "admin")
	require.NoError(t, err)
	assert.Equal(t, "S1", summary.StructureUUID)
	assert.Equal(t, 3, summary.LineItemsProcessed)
	assert.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, 0, summary.FailureCount)
	assert.Equal(t, "de", summary.SourceLanguage)
	assert.Equal(t, []string{"en"}, summary.TargetLanguages)

	got, err = svc.GetText(ctx, model.EntityTypeReportStructure, "S1", model.FieldKeyStructureName, "en")
	require.NoError(t, err)
	assert.Equal(t, "Balance Sheet", got)

	got, err = svc.GetText(ctx, model.EntityTypeReportLineItem, "LI0", "cash_description", "en")
	require.NoError(t, err)
	assert.Equal(t, "Cash", got)
}

func TestGenerateForStructure_ItemFailureDoesNotBlockOthers(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()
	svc, q, _ := newTestService(t, db)
	ctx := context.Background()
	now := time.Now()

	_, err := q.CreateReportStructure(ctx, store.CreateReportStructureParams{
		UUID: "S1", Name: "Bilanz", SourceLanguageCode: "de", CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	for i, key := range []string{"cash", "broken", "receivables"} {
		_, err := q.CreateReportLineItem(ctx, store.CreateReportLineItemParams{
			UUID: fmt.Sprintf("LI%d", i), StructureUUID: "S1", ItemKey: key,
			Description: "Beschreibung " + key, Position: int64(i), CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)
	}

	provider := &fakeProvider{translateFn: func(_, _ string, items []TextItem) (string, error) {
		if items[0].FieldKey == "broken_description" {
			return "", errors.New("provider glitch")
		}
		return items[0].FieldKey + ": translated\n", nil
	}}
	p := newTestPipeline(t, svc, q, provider)

	summary, err := p.GenerateForStructure(ctx, "S1", "admin")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, 1, summary.FailureCount)
}
