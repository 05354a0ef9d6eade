package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "fern-api", cfg.AppName)
	assert.Equal(t, 3003, cfg.Port)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "match-requests", cfg.KafkaInputTopic)
	assert.Equal(t, "match-events", cfg.KafkaOutputTopic)
	assert.Equal(t, 5*time.Minute, cfg.ResultCacheTTL)
	assert.Equal(t, 4, cfg.MatchWorkerCount)
	assert.Equal(t, "investor", cfg.DefaultRecordKind)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("RESULT_CACHE_TTL", "30s")
	t.Setenv("MATCH_WORKER_COUNT", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.ResultCacheTTL)
	assert.Equal(t, 8, cfg.MatchWorkerCount)
}
