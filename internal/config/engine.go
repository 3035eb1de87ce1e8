package config

import (
	"os"
	"strconv"
)

// EngineConfig configures the signal and action engines. It is resolved once
// at startup and injected into the services; the engines themselves never
// touch the environment, so tests can substitute any configuration.
type EngineConfig struct {
	// EnableAutoActions gates the whole generation pipeline. When false the
	// orchestrator is an explicit no-op, not an error.
	EnableAutoActions bool

	// WeakScoreThreshold is the highest answer score still considered weak.
	WeakScoreThreshold int

	// CriticalScoreThreshold is the highest answer score considered critical.
	CriticalScoreThreshold int

	// MaxActions caps the number of actions generated in one run.
	MaxActions int
}

// DefaultEngineConfig returns the documented defaults: weak answers score 3
// or below, critical answers 2 or below, at most 10 actions per run.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		EnableAutoActions:      true,
		WeakScoreThreshold:     3,
		CriticalScoreThreshold: 2,
		MaxActions:             10,
	}
}

// EngineConfigFromEnv resolves the engine configuration at startup.
// ENABLE_AUTO_ACTIONS=false turns the pipeline off.
func EngineConfigFromEnv() EngineConfig {
	cfg := DefaultEngineConfig()
	if val := os.Getenv("ENABLE_AUTO_ACTIONS"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			cfg.EnableAutoActions = enabled
		}
	}
	if val := os.Getenv("MAX_AUTO_ACTIONS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.MaxActions = n
		}
	}
	return cfg
}
