package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "helpdesk-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, 20, cfg.Engine.JustificationMinChars)
	assert.Zero(t, cfg.Engine.AutotriageInterval(), "worker disabled by default")
	assert.Empty(t, cfg.Engine.EvidencePolicy())
	assert.Equal(t, "helpdesk:events", cfg.Notification.RedisChannel)
}

func TestLoadEngineOverrides(t *testing.T) {
	t.Setenv("ENGINE_JUSTIFICATION_MIN_CHARS", "40")
	t.Setenv("ENGINE_AUTOTRIAGE_INTERVAL_SECONDS", "300")
	t.Setenv("ENGINE_EVIDENCE_REQUIRED_TRANSITIONS", "EN_PROCESO>RESUELTO, RESUELTO>CERRADO")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Engine.JustificationMinChars)
	assert.Equal(t, 5*time.Minute, cfg.Engine.AutotriageInterval())
	assert.Equal(t, map[string]bool{
		"EN_PROCESO>RESUELTO": true,
		"RESUELTO>CERRADO":    true,
	}, cfg.Engine.EvidencePolicy())
}

func TestLoadInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}
