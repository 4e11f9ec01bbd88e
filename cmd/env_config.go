package cmd

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds environment overrides. They apply only to flags that
// were not passed explicitly.
type EnvConfig struct {
	LogLevel     string `env:"GRIDSIR_LOG_LEVEL"`
	Seed         *int64 `env:"GRIDSIR_SEED"`
	DefaultsFile string `env:"GRIDSIR_DEFAULTS"`
	Preset       string `env:"GRIDSIR_PRESET"`
}

// parseEnv loads EnvConfig from the process environment.
func parseEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg EnvConfig, changed func(name string) bool) {
	if cfg.LogLevel != "" && !changed("log") {
		logLevel = cfg.LogLevel
	}
	if cfg.Seed != nil && !changed("seed") {
		seed = *cfg.Seed
	}
	if cfg.DefaultsFile != "" && !changed("defaults") {
		defaultsFilePath = cfg.DefaultsFile
	}
	if cfg.Preset != "" && !changed("preset") {
		presetName = cfg.Preset
	}
}
