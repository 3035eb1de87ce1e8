package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultEngineConfig(t *testing.T) {
	cfg := DefaultEngineConfig()

	assert.True(t, cfg.EnableAutoActions)
	assert.Equal(t, 3, cfg.WeakScoreThreshold)
	assert.Equal(t, 2, cfg.CriticalScoreThreshold)
	assert.Equal(t, 10, cfg.MaxActions)
}

func TestEngineConfigFromEnv(t *testing.T) {
	t.Run("defaults when unset", func(t *testing.T) {
		t.Setenv("ENABLE_AUTO_ACTIONS", "")
		t.Setenv("MAX_AUTO_ACTIONS", "")
		cfg := EngineConfigFromEnv()
		assert.Equal(t, DefaultEngineConfig(), cfg)
	})

	t.Run("disable flag", func(t *testing.T) {
		t.Setenv("ENABLE_AUTO_ACTIONS", "false")
		cfg := EngineConfigFromEnv()
		assert.False(t, cfg.EnableAutoActions)
	})

	t.Run("max actions override", func(t *testing.T) {
		t.Setenv("MAX_AUTO_ACTIONS", "5")
		cfg := EngineConfigFromEnv()
		assert.Equal(t, 5, cfg.MaxActions)
	})

	t.Run("garbage values fall back", func(t *testing.T) {
		t.Setenv("ENABLE_AUTO_ACTIONS", "maybe")
		t.Setenv("MAX_AUTO_ACTIONS", "-4")
		cfg := EngineConfigFromEnv()
		assert.True(t, cfg.EnableAutoActions)
		assert.Equal(t, 10, cfg.MaxActions)
	})
}
