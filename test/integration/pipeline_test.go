package integration

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/matching"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/processor"
)

func noopLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func newEngine() *matching.Engine {
	return matching.NewEngine(noopLogger(), nil, nil, nil, matching.DefaultConfig())
}

func clientProfile() *models.ClientProfile {
	return &models.ClientProfile{
		Sector:        "FinTech",
		Stage:         "Seed",
		Location:      "Boston",
		FundingAmount: "$1M",
	}
}

func TestPipeline_ScoreComposition(t *testing.T) {
	engine := newEngine()

	ranked, err := engine.Match(context.Background(), "test-tenant", matching.MatchRequest{
		Profile: clientProfile(),
		Kind:    models.RecordKindInvestor,
		Records: []models.RawRecord{
			{
				"investor_name": "Acme Ventures",
				"focus_sectors": "fintech, saas",
				"stage":         "Seed",
				"location":      "Boston, MA",
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, ranked, 1)

	// three of four criteria match; the candidate publishes no ticket size,
	// so the amount criterion contributes nothing either way
	entry := ranked[0]
	assert.Equal(t, 85, entry.Result.RoundedScore())
	assert.Equal(t, 35.0, entry.Result.Breakdown.Sector)
	assert.Equal(t, 30.0, entry.Result.Breakdown.Stage)
	assert.Equal(t, 20.0, entry.Result.Breakdown.Location)
	assert.Equal(t, 0.0, entry.Result.Breakdown.Amount)
}

func TestPipeline_SchemaVariantsScoreAlike(t *testing.T) {
	engine := newEngine()

	// the same investor under three upstream schemas
	variants := []models.RawRecord{
		{
			"investor_name": "Acme Ventures",
			"focus_sectors": "fintech",
			"stage":         "Seed",
			"location":      "Boston",
		},
		{
			"Name":       "Acme Ventures",
			"Industries": []any{"fintech"},
			"Fund_Stage": "Seed",
			"City":       "Boston",
		},
		{
			"fund_name":  "Acme Ventures",
			"sectors":    "fintech",
			"fund_stage": "Seed",
			"hq":         "Boston",
		},
	}

	ranked, err := engine.Match(context.Background(), "test-tenant", matching.MatchRequest{
		Profile: clientProfile(),
		Kind:    models.RecordKindInvestor,
		Records: variants,
	})
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	for _, entry := range ranked {
		assert.Equal(t, "Acme Ventures", entry.Candidate.DisplayName)
		assert.Equal(t, ranked[0].Result.Score, entry.Result.Score,
			"schema spelling must not change the score")
	}
}

func TestPipeline_TieBreakIsAlphabetical(t *testing.T) {
	engine := newEngine()

	record := func(name string) models.RawRecord {
		return models.RawRecord{
			"investor_name": name,
			"focus_sectors": "fintech",
			"stage":         "Seed",
			"location":      "Boston",
		}
	}

	ranked, err := engine.Match(context.Background(), "test-tenant", matching.MatchRequest{
		Profile: clientProfile(),
		Kind:    models.RecordKindInvestor,
		Records: []models.RawRecord{record("Zeta Capital"), record("Acme Ventures")},
	})
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, ranked[0].Result.Score, ranked[1].Result.Score)
	assert.Equal(t, "Acme Ventures", ranked[0].Candidate.DisplayName)
	assert.Equal(t, "Zeta Capital", ranked[1].Candidate.DisplayName)
}

func TestPipeline_FilterToggleReordersOnly(t *testing.T) {
	engine := newEngine()

	records := []models.RawRecord{
		{
			"investor_name": "Sector Only Fund",
			"focus_sectors": "fintech",
			"stage":         "Growth",
			"location":      "Berlin",
		},
		{
			"investor_name": "Stage And Location Fund",
			"focus_sectors": "biotech",
			"stage":         "Seed",
			"location":      "Boston",
		},
	}

	req := matching.MatchRequest{
		Profile: clientProfile(),
		Kind:    models.RecordKindInvestor,
		Records: records,
		Filters: map[string]bool{"sector": true, "stage": false, "location": false},
	}

	ranked, err := engine.Match(context.Background(), "test-tenant", req)
	require.NoError(t, err)
	require.Len(t, ranked, 2, "filters reorder, they never drop")

	// only the enabled sector filter counts
	assert.Equal(t, "Sector Only Fund", ranked[0].Candidate.DisplayName)
	assert.Equal(t, 1, ranked[0].SatisfiedFilterCount)
	assert.Equal(t, 0, ranked[1].SatisfiedFilterCount)

	// flipping the toggles flips the order
	req.Filters = map[string]bool{"sector": false, "stage": true, "location": true}
	ranked, err = engine.Match(context.Background(), "test-tenant", req)
	require.NoError(t, err)
	assert.Equal(t, "Stage And Location Fund", ranked[0].Candidate.DisplayName)
	assert.Equal(t, 2, ranked[0].SatisfiedFilterCount)
}

func TestPipeline_SparseRecordResolution(t *testing.T) {
	engine := newEngine()

	resolved, err := engine.ResolveAll(context.Background(), "test-tenant", models.RecordKindInvestor, []models.RawRecord{
		{"Name": "Acme Ventures", "Contact": "j.doe@acme.vc"},
	})
	require.NoError(t, err)
	require.Len(t, resolved, 1)

	candidate := resolved[0]
	assert.Equal(t, "Acme Ventures", candidate.DisplayName)
	assert.Equal(t, "J Doe", candidate.PartnerName)
	assert.Equal(t, "j.doe@acme.vc", candidate.Email)
	assert.Equal(t, models.Unresolved, candidate.Location)
	assert.Empty(t, candidate.Stage)
	assert.Empty(t, candidate.FocusSectors)
}

func TestPipeline_KafkaRoundTrip(t *testing.T) {
	publisher := &eventRecorder{}
	p := processor.NewProcessor(noopLogger(), newEngine(), publisher)

	payload := map[string]any{
		"tenant_id":   "test-tenant",
		"request_id":  "req-1",
		"record_kind": "investor",
		"profile": map[string]any{
			"sector":         "FinTech",
			"stage":          "Seed",
			"location":       "Boston",
			"funding_amount": "$1M",
		},
		"records": []map[string]any{
			{
				"investor_name": "Acme Ventures",
				"focus_sectors": "fintech, saas",
				"stage":         "Seed",
				"location":      "Boston, MA",
			},
			{
				"investor_name": "Berlin Biotech Fund",
				"focus_sectors": "biotech",
				"stage":         "Growth",
				"location":      "Berlin",
			},
		},
	}
	value, err := json.Marshal(payload)
	require.NoError(t, err)

	msg := &kafka.IncomingMessage{Key: "req-1", Value: value}
	require.NoError(t, p.ProcessMessage(context.Background(), msg))

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, "match.completed", event.EventType)
	assert.Equal(t, 2, event.CandidateCount)
	require.Len(t, event.Results, 2)
	assert.Equal(t, "Acme Ventures", event.Results[0].DisplayName)
	assert.Equal(t, 85, event.Results[0].Score)
	assert.Greater(t, event.Results[0].Score, event.Results[1].Score)
}

type eventRecorder struct {
	events []*kafka.MatchCompletedEvent
}

func (r *eventRecorder) PublishMatchCompleted(_ context.Context, event *kafka.MatchCompletedEvent) error {
	r.events = append(r.events, event)
	return nil
}
