// Package config loads the engine's static configuration: its
// diagnostic name, per-level pre-sizing, and logging/debug-check
// toggles.
package config

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/StepanBambestikov/ExchangePriceTimePriority/pkg/logging"
	"github.com/StepanBambestikov/ExchangePriceTimePriority/pkg/orderbook"
)

// EngineConfig controls a MatchingEngine's non-functional knobs. None of
// its fields change matching semantics.
type EngineConfig struct {
	// Name is the engine's diagnostic identity.
	Name string `yaml:"name"`
	// InitialLevelCapacity seeds each new price level's ring buffer, to
	// avoid per-order allocation in the hot path.
	InitialLevelCapacity int `yaml:"initial_level_capacity"`
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
	// DebugChecks enables the caller-misuse warnings.
	DebugChecks bool `yaml:"debug_checks"`
}

// Load reads an EngineConfig from a YAML file, expanding $VAR
// references against the process environment. If filePath is empty, it
// falls back to the CONFIG_FILE environment variable.
func Load(filePath string) (*EngineConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	sugar := zap.S().With("func", "config.Load", "filePath", filePath)
	sugar.Debug("loading engine config")

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &EngineConfig{}
	if err := yaml.Unmarshal(configBytes, cfg); err != nil {
		sugar.Error("failed to parse config file")
		return nil, err
	}

	sugar.Debugf("config: %+v", cfg)
	return cfg, nil
}

// NewEngine builds a MatchingEngine wired from this config: diagnostic
// name, pre-sized price levels, debug checks, and a zap-backed logger at
// the configured level.
func (c *EngineConfig) NewEngine() *orderbook.MatchingEngine {
	engine := orderbook.NewMatchingEngineWithCapacity(c.Name, c.InitialLevelCapacity)
	engine.SetDebugChecks(c.DebugChecks)
	engine.SetLogger(logging.NewLogger(logging.ParseLevel(c.LogLevel)))
	return engine
}
