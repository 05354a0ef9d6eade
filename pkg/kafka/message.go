package kafka

import (
	"encoding/json"
	"time"

	"github.com/Ramsey-B/fern/pkg/models"
)

// MatchRequestMessage is the payload of a batch match request consumed from
// the input topic. Either Profile or ClientRecord carries the client side;
// when both are present Profile wins.
type MatchRequestMessage struct {
	TenantID     string                `json:"tenant_id"`
	RequestID    string                `json:"request_id"`
	Kind         models.RecordKind     `json:"record_kind"`
	Profile      *models.ClientProfile `json:"profile,omitempty"`
	ClientRecord models.RawRecord      `json:"client_record,omitempty"`
	Records      []models.RawRecord    `json:"records"`
	Filters      map[string]bool       `json:"filters,omitempty"`
	Timestamp    time.Time             `json:"timestamp"`
}

// IncomingMessage wraps a raw Kafka message with parsed headers
type IncomingMessage struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Partition int
	Offset    int64
	Timestamp time.Time
	Topic     string

	// Parsed content
	Request *MatchRequestMessage
}

// ParseMatchRequest parses the message value as a match request
func (m *IncomingMessage) ParseMatchRequest() error {
	var req MatchRequestMessage
	if err := json.Unmarshal(m.Value, &req); err != nil {
		return err
	}
	m.Request = &req
	return nil
}

// GetTenantID returns the tenant ID from the request body, falling back to
// the message header.
func (m *IncomingMessage) GetTenantID() string {
	if m.Request != nil && m.Request.TenantID != "" {
		return m.Request.TenantID
	}
	return m.Headers["tenant_id"]
}

// GetRequestID returns the request ID, falling back to the message key so
// emitted events always correlate to something.
func (m *IncomingMessage) GetRequestID() string {
	if m.Request != nil && m.Request.RequestID != "" {
		return m.Request.RequestID
	}
	return m.Key
}

// MatchCompletedEvent is emitted on the output topic after a batch finishes.
// EventType is "match.completed" on success and "match.failed" when the
// request itself was invalid.
type MatchCompletedEvent struct {
	EventType      string                   `json:"event_type"`
	TenantID       string                   `json:"tenant_id"`
	RequestID      string                   `json:"request_id"`
	Kind           models.RecordKind        `json:"record_kind"`
	CandidateCount int                      `json:"candidate_count"`
	Results        []models.RankedEntryView `json:"results,omitempty"`
	Error          string                   `json:"error,omitempty"`
	Timestamp      time.Time                `json:"timestamp"`
}
