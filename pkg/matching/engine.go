// Package matching orchestrates the resolve, score, and rank stages for one
// batch of candidate records.
package matching

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/fingerprint"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/profile"
	"github.com/Ramsey-B/fern/pkg/ranking"
	"github.com/Ramsey-B/fern/pkg/resolver"
	"github.com/Ramsey-B/fern/pkg/scoring"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// AliasSource provides tenant alias tables. A nil source means the
// compiled-in defaults apply.
type AliasSource interface {
	TableForKind(ctx context.Context, tenantID string, kind models.RecordKind) (resolver.AliasTable, error)
}

// WeightSource provides tenant weight tables. A nil source means the
// compiled-in defaults apply.
type WeightSource interface {
	WeightsForTenant(ctx context.Context, tenantID string) (scoring.WeightTable, error)
}

// ResultCache memoizes ranked output keyed by an input fingerprint. The
// presentation layer re-invokes matching on every filter toggle, so repeated
// identical inputs are the common case.
type ResultCache interface {
	GetRanked(ctx context.Context, key string) ([]models.RankedEntry, bool)
	SetRanked(ctx context.Context, key string, entries []models.RankedEntry, ttl time.Duration)
}

// Config contains engine tuning options.
type Config struct {
	WorkerCount int           // goroutines scoring candidates; <= 0 means GOMAXPROCS
	CacheTTL    time.Duration // ranked result memoization TTL; <= 0 disables caching
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		WorkerCount: 4,
		CacheTTL:    5 * time.Minute,
	}
}

// Engine runs the matching pipeline. All dependencies beyond the logger are
// optional: with nil sources and cache the engine is a pure library over the
// compiled-in tables, which is what the integration tests and embedded
// callers use.
type Engine struct {
	logger  ectologger.Logger
	aliases AliasSource
	weights WeightSource
	cache   ResultCache
	config  Config
}

// NewEngine creates a matching engine.
func NewEngine(logger ectologger.Logger, aliases AliasSource, weights WeightSource, cache ResultCache, config Config) *Engine {
	return &Engine{
		logger:  logger,
		aliases: aliases,
		weights: weights,
		cache:   cache,
		config:  config,
	}
}

// MatchRequest is one batch invocation: a profile (or the raw client record
// to build one from), the candidate records, the record kind selecting the
// alias tables, and the user's filter toggles.
type MatchRequest struct {
	Profile      *models.ClientProfile
	ClientRecord models.RawRecord
	Kind         models.RecordKind
	Records      []models.RawRecord
	Filters      map[string]bool
}

// Match resolves, scores, and ranks the batch. Contract violations (unknown
// kind, unknown filter key) return errors; data-quality problems inside
// records never do. An empty batch returns an empty slice.
func (e *Engine) Match(ctx context.Context, tenantID string, req MatchRequest) ([]models.RankedEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Engine.Match")
	defer span.End()

	if err := req.Kind.Validate(); err != nil {
		return nil, err
	}
	filters, err := ranking.ParseFilters(req.Filters)
	if err != nil {
		return nil, err
	}

	log := e.logger.WithContext(ctx).WithFields(map[string]any{
		"tenant_id":    tenantID,
		"record_kind":  string(req.Kind),
		"record_count": len(req.Records),
	})

	clientProfile := e.buildProfile(req)
	table, err := e.aliasTable(ctx, tenantID, req.Kind)
	if err != nil {
		return nil, err
	}
	weights := e.weightTable(ctx, tenantID, log)

	cacheKey := e.cacheKey(tenantID, req, clientProfile, weights)
	if e.cache != nil && e.config.CacheTTL > 0 {
		if entries, ok := e.cache.GetRanked(ctx, cacheKey); ok {
			log.WithFields(map[string]any{"entry_count": len(entries)}).Debug("Ranked result served from cache")
			return entries, nil
		}
	}

	scored, err := e.scoreAll(ctx, clientProfile, req.Records, table, weights)
	if err != nil {
		return nil, err
	}

	// ranking stays single-threaded; a global order needs one consistent view
	ranked := ranking.Rank(scored, filters)

	if e.cache != nil && e.config.CacheTTL > 0 {
		e.cache.SetRanked(ctx, cacheKey, ranked, e.config.CacheTTL)
	}

	log.WithFields(map[string]any{"entry_count": len(ranked)}).Debug("Batch matched")
	return ranked, nil
}

// ResolveAll returns the resolved view of each record without scoring, for
// callers that preview normalization before matching.
func (e *Engine) ResolveAll(ctx context.Context, tenantID string, kind models.RecordKind, records []models.RawRecord) ([]models.ResolvedCandidate, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Engine.ResolveAll")
	defer span.End()

	if err := kind.Validate(); err != nil {
		return nil, err
	}
	table, err := e.aliasTable(ctx, tenantID, kind)
	if err != nil {
		return nil, err
	}

	resolved := make([]models.ResolvedCandidate, len(records))
	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		resolved[i] = resolver.Resolve(record, table)
	}
	return resolved, nil
}

func (e *Engine) buildProfile(req MatchRequest) models.ClientProfile {
	if req.Profile != nil {
		return *req.Profile
	}
	return profile.BuildProfile(req.ClientRecord)
}

func (e *Engine) aliasTable(ctx context.Context, tenantID string, kind models.RecordKind) (resolver.AliasTable, error) {
	if e.aliases == nil {
		return resolver.DefaultTable(kind)
	}
	return e.aliases.TableForKind(ctx, tenantID, kind)
}

func (e *Engine) weightTable(ctx context.Context, tenantID string, log ectologger.Logger) scoring.WeightTable {
	if e.weights == nil {
		return scoring.DefaultWeights()
	}
	weights, err := e.weights.WeightsForTenant(ctx, tenantID)
	if err != nil {
		log.WithError(err).Warn("Failed to load tenant weights, using defaults")
		return scoring.DefaultWeights()
	}
	return weights
}

// scoreAll fans resolution and scoring out across a bounded worker pool and
// fans the results back in by index. Workers check for cancellation between
// candidates, so a long batch stops cooperatively.
func (e *Engine) scoreAll(
	ctx context.Context,
	clientProfile models.ClientProfile,
	records []models.RawRecord,
	table resolver.AliasTable,
	weights scoring.WeightTable,
) ([]models.RankedEntry, error) {
	if len(records) == 0 {
		return []models.RankedEntry{}, nil
	}

	workers := e.config.WorkerCount
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(records) {
		workers = len(records)
	}

	scorer := scoring.NewScorer(weights)
	entries := make([]models.RankedEntry, len(records))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				candidate := resolver.Resolve(records[i], table)
				entries[i] = models.RankedEntry{
					Candidate: candidate,
					Result:    scorer.Score(clientProfile, candidate),
				}
			}
		}()
	}

	for i := range records {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// cacheKey fingerprints every input that can change the ranked output.
func (e *Engine) cacheKey(tenantID string, req MatchRequest, clientProfile models.ClientProfile, weights scoring.WeightTable) string {
	records := make([]any, len(req.Records))
	for i, r := range req.Records {
		records[i] = map[string]any(r)
	}
	return fingerprint.Generate(map[string]any{
		"tenant":  tenantID,
		"kind":    string(req.Kind),
		"profile": clientProfile,
		"records": records,
		"filters": req.Filters,
		"weights": weights,
	})
}
