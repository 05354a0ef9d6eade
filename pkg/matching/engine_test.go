package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/scoring"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func testEngine() *Engine {
	return NewEngine(testLogger(), nil, nil, nil, DefaultConfig())
}

func sampleRequest() MatchRequest {
	return MatchRequest{
		Profile: &models.ClientProfile{
			Sector:        "FinTech",
			Stage:         "Seed",
			Location:      "Boston",
			FundingAmount: "$1M",
		},
		Kind: models.RecordKindInvestor,
		Records: []models.RawRecord{
			{
				"investor_name": "Acme Ventures",
				"focus_sectors": "fintech, saas",
				"stage":         "Seed",
				"location":      "Boston, MA",
			},
			{
				"investor_name": "Zeta Capital",
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
}

func TestEngine_Match(t *testing.T) {
	engine := testEngine()

	t.Run("RanksBatch", func(t *testing.T) {
		ranked, err := engine.Match(context.Background(), "tenant-1", sampleRequest())
		require.NoError(t, err)
		require.Len(t, ranked, 3)

		// equal scores fall through to the name tie-break
		assert.Equal(t, "Acme Ventures", ranked[0].Candidate.DisplayName)
		assert.Equal(t, "Zeta Capital", ranked[1].Candidate.DisplayName)
		assert.Equal(t, "Berlin Biotech Fund", ranked[2].Candidate.DisplayName)
		assert.Greater(t, ranked[0].Result.Score, ranked[2].Result.Score)
	})

	t.Run("EmptyBatch", func(t *testing.T) {
		req := sampleRequest()
		req.Records = nil

		ranked, err := engine.Match(context.Background(), "tenant-1", req)
		require.NoError(t, err)
		require.NotNil(t, ranked)
		assert.Empty(t, ranked)
	})

	t.Run("ProfileBuiltFromClientRecord", func(t *testing.T) {
		req := sampleRequest()
		req.Profile = nil
		req.ClientRecord = models.RawRecord{
			"industry":       "FinTech",
			"fund_stage":     "Seed",
			"location":       "Boston",
			"investment_ask": "$1M",
		}

		ranked, err := engine.Match(context.Background(), "tenant-1", req)
		require.NoError(t, err)
		require.Len(t, ranked, 3)
		assert.Equal(t, "Acme Ventures", ranked[0].Candidate.DisplayName)
	})

	t.Run("UnknownKind", func(t *testing.T) {
		req := sampleRequest()
		req.Kind = models.RecordKind("charity")

		_, err := engine.Match(context.Background(), "tenant-1", req)
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrUnknownRecordKind)
		assert.True(t, models.IsContractError(err))
	})

	t.Run("UnknownFilter", func(t *testing.T) {
		req := sampleRequest()
		req.Filters = map[string]bool{"vibes": true}

		_, err := engine.Match(context.Background(), "tenant-1", req)
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrUnknownFilter)
	})

	t.Run("FiltersReorderWithoutDropping", func(t *testing.T) {
		req := sampleRequest()
		req.Filters = map[string]bool{"sector": true, "stage": true}

		ranked, err := engine.Match(context.Background(), "tenant-1", req)
		require.NoError(t, err)
		require.Len(t, ranked, 3)
		assert.Equal(t, 2, ranked[0].SatisfiedFilterCount)
		assert.Equal(t, 0, ranked[2].SatisfiedFilterCount)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := engine.Match(ctx, "tenant-1", sampleRequest())
		assert.Error(t, err)
	})
}

func TestEngine_Purity(t *testing.T) {
	engine := testEngine()
	req := sampleRequest()
	req.Filters = map[string]bool{"sector": true}

	first, err := engine.Match(context.Background(), "tenant-1", req)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := engine.Match(context.Background(), "tenant-1", req)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEngine_WorkerCountIndependence(t *testing.T) {
	req := sampleRequest()

	serial := NewEngine(testLogger(), nil, nil, nil, Config{WorkerCount: 1, CacheTTL: 0})
	parallel := NewEngine(testLogger(), nil, nil, nil, Config{WorkerCount: 8, CacheTTL: 0})

	a, err := serial.Match(context.Background(), "tenant-1", req)
	require.NoError(t, err)
	b, err := parallel.Match(context.Background(), "tenant-1", req)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestEngine_ResolveAll(t *testing.T) {
	engine := testEngine()

	t.Run("ResolvesWithoutScoring", func(t *testing.T) {
		records := []models.RawRecord{
			{"Name": "Acme Ventures", "Contact": "j.doe@acme.vc"},
		}
		resolved, err := engine.ResolveAll(context.Background(), "tenant-1", models.RecordKindInvestor, records)
		require.NoError(t, err)
		require.Len(t, resolved, 1)
		assert.Equal(t, "Acme Ventures", resolved[0].DisplayName)
		assert.Equal(t, "J Doe", resolved[0].PartnerName)
	})

	t.Run("UnknownKind", func(t *testing.T) {
		_, err := engine.ResolveAll(context.Background(), "tenant-1", models.RecordKind("charity"), nil)
		assert.ErrorIs(t, err, models.ErrUnknownRecordKind)
	})
}

// fakeCache records cache traffic for assertions.
type fakeCache struct {
	store map[string][]models.RankedEntry
	gets  int
	hits  int
	sets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]models.RankedEntry)}
}

func (c *fakeCache) GetRanked(_ context.Context, key string) ([]models.RankedEntry, bool) {
	c.gets++
	entries, ok := c.store[key]
	if ok {
		c.hits++
	}
	return entries, ok
}

func (c *fakeCache) SetRanked(_ context.Context, key string, entries []models.RankedEntry, _ time.Duration) {
	c.sets++
	c.store[key] = entries
}

func TestEngine_ResultCache(t *testing.T) {
	t.Run("SecondCallHits", func(t *testing.T) {
		cache := newFakeCache()
		engine := NewEngine(testLogger(), nil, nil, cache, DefaultConfig())
		req := sampleRequest()

		first, err := engine.Match(context.Background(), "tenant-1", req)
		require.NoError(t, err)
		assert.Equal(t, 1, cache.sets)

		second, err := engine.Match(context.Background(), "tenant-1", req)
		require.NoError(t, err)
		assert.Equal(t, 1, cache.hits)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, cache.sets, "a cache hit must not rewrite the entry")
	})

	t.Run("FilterToggleChangesKey", func(t *testing.T) {
		cache := newFakeCache()
		engine := NewEngine(testLogger(), nil, nil, cache, DefaultConfig())

		req := sampleRequest()
		_, err := engine.Match(context.Background(), "tenant-1", req)
		require.NoError(t, err)

		req.Filters = map[string]bool{"sector": true}
		_, err = engine.Match(context.Background(), "tenant-1", req)
		require.NoError(t, err)

		assert.Equal(t, 0, cache.hits)
		assert.Equal(t, 2, cache.sets)
	})

	t.Run("TenantChangesKey", func(t *testing.T) {
		cache := newFakeCache()
		engine := NewEngine(testLogger(), nil, nil, cache, DefaultConfig())
		req := sampleRequest()

		_, err := engine.Match(context.Background(), "tenant-1", req)
		require.NoError(t, err)
		_, err = engine.Match(context.Background(), "tenant-2", req)
		require.NoError(t, err)

		assert.Equal(t, 0, cache.hits)
	})

	t.Run("ZeroTTLDisablesCaching", func(t *testing.T) {
		cache := newFakeCache()
		engine := NewEngine(testLogger(), nil, nil, cache, Config{WorkerCount: 2, CacheTTL: 0})

		_, err := engine.Match(context.Background(), "tenant-1", sampleRequest())
		require.NoError(t, err)
		assert.Equal(t, 0, cache.gets)
		assert.Equal(t, 0, cache.sets)
	})
}

// failingWeights always errors, standing in for a broken store.
type failingWeights struct{}

func (failingWeights) WeightsForTenant(context.Context, string) (scoring.WeightTable, error) {
	return scoring.WeightTable{}, errors.New("store unavailable")
}

func TestEngine_WeightSourceFallback(t *testing.T) {
	engine := NewEngine(testLogger(), nil, failingWeights{}, nil, DefaultConfig())

	ranked, err := engine.Match(context.Background(), "tenant-1", sampleRequest())
	require.NoError(t, err, "weight source failure falls back to defaults")
	require.Len(t, ranked, 3)
}
