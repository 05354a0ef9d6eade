// Package processor handles incoming match request messages. It runs the
// matching engine over each batch and emits the outcome on the output topic.
package processor

import (
	"context"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/matching"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Publisher emits match outcome events. A nil publisher disables emission,
// which is how the engine runs in request/response-only deployments.
type Publisher interface {
	PublishMatchCompleted(ctx context.Context, event *kafka.MatchCompletedEvent) error
}

// Processor handles message processing for batch match requests
type Processor struct {
	logger    ectologger.Logger
	engine    *matching.Engine
	publisher Publisher
}

// NewProcessor creates a new match request processor
func NewProcessor(logger ectologger.Logger, engine *matching.Engine, publisher Publisher) *Processor {
	return &Processor{
		logger:    logger,
		engine:    engine,
		publisher: publisher,
	}
}

// ProcessMessage handles an incoming Kafka message. A returned error means
// the message should be retried; malformed requests are reported on the
// output topic and consumed without retry.
func (p *Processor) ProcessMessage(ctx context.Context, msg *kafka.IncomingMessage) error {
	ctx, span := tracing.StartSpan(ctx, "processor.ProcessMessage")
	defer span.End()

	log := p.logger.WithContext(ctx).WithFields(map[string]any{
		"key":    msg.Key,
		"topic":  msg.Topic,
		"offset": msg.Offset,
	})

	if msg.Request == nil {
		if err := msg.ParseMatchRequest(); err != nil {
			log.WithError(err).Error("Failed to parse match request")
			return err
		}
	}

	tenantID := msg.GetTenantID()
	if tenantID == "" {
		log.Error("Missing tenant_id in message")
		return nil // Skip message, don't retry
	}

	req := msg.Request
	log = log.WithFields(map[string]any{
		"tenant_id":    tenantID,
		"request_id":   msg.GetRequestID(),
		"record_kind":  string(req.Kind),
		"record_count": len(req.Records),
	})
	log.Debug("Processing match request")

	ranked, err := p.engine.Match(ctx, tenantID, matching.MatchRequest{
		Profile:      req.Profile,
		ClientRecord: req.ClientRecord,
		Kind:         req.Kind,
		Records:      req.Records,
		Filters:      req.Filters,
	})
	if err != nil {
		// An invalid request stays invalid no matter how often it is
		// retried, so report it and move on.
		if models.IsContractError(err) {
			log.WithError(err).Warn("Rejecting invalid match request")
			p.publishFailed(ctx, msg, err, log)
			return nil
		}
		log.WithError(err).Error("Failed to match batch")
		return err
	}

	p.publishCompleted(ctx, msg, ranked, log)

	log.WithFields(map[string]any{"entry_count": len(ranked)}).Info("Match request processed")
	return nil
}

func (p *Processor) publishCompleted(ctx context.Context, msg *kafka.IncomingMessage, ranked []models.RankedEntry, log ectologger.Logger) {
	if p.publisher == nil {
		return
	}

	event := &kafka.MatchCompletedEvent{
		EventType:      "match.completed",
		TenantID:       msg.GetTenantID(),
		RequestID:      msg.GetRequestID(),
		Kind:           msg.Request.Kind,
		CandidateCount: len(msg.Request.Records),
		Results:        models.NewRankedEntryViews(ranked),
		Timestamp:      time.Now().UTC(),
	}
	if err := p.publisher.PublishMatchCompleted(ctx, event); err != nil {
		// The result is already computed; emission failure is logged
		// rather than forcing a reprocess of the whole batch.
		log.WithError(err).Error("Failed to publish match completed event")
	}
}

func (p *Processor) publishFailed(ctx context.Context, msg *kafka.IncomingMessage, matchErr error, log ectologger.Logger) {
	if p.publisher == nil {
		return
	}

	event := &kafka.MatchCompletedEvent{
		EventType:      "match.failed",
		TenantID:       msg.GetTenantID(),
		RequestID:      msg.GetRequestID(),
		Kind:           msg.Request.Kind,
		CandidateCount: len(msg.Request.Records),
		Error:          matchErr.Error(),
		Timestamp:      time.Now().UTC(),
	}
	if err := p.publisher.PublishMatchCompleted(ctx, event); err != nil {
		log.WithError(err).Error("Failed to publish match failed event")
	}
}
