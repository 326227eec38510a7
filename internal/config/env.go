// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"strings"

	xglog "github.com/Aditya1156/DayPilot/internal/log"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "SIGNINGCFG"

// envOverrides is filled by envconfig; nil fields were not set.
type envOverrides struct {
	ProjectRoot      *string `envconfig:"PROJECT_ROOT"`
	KeyProperties    *string `envconfig:"KEY_PROPERTIES"`
	LocalProperties  *string `envconfig:"LOCAL_PROPERTIES"`
	MissingKeyPolicy *string `envconfig:"MISSING_KEY_POLICY"`
	ConfineStoreFile *bool   `envconfig:"CONFINE_STORE_FILE"`
	DebugKeystore    *string `envconfig:"DEBUG_KEYSTORE"`
	LogLevel         *string `envconfig:"LOG_LEVEL"`
}

func loadEnvOverrides() (envOverrides, error) {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return env, fmt.Errorf("parse environment: %w", err)
	}
	return env, nil
}

// apply merges set overrides into cfg and logs each one.
func (e envOverrides) apply(cfg *Config) {
	logger := xglog.WithComponent("config")
	set := func(name, value string) {
		logger.Debug().
			Str("key", EnvPrefix+"_"+name).
			Str("value", value).
			Str("source", "environment").
			Msg("using environment variable")
	}

	if e.ProjectRoot != nil && strings.TrimSpace(*e.ProjectRoot) != "" {
		cfg.ProjectRoot = strings.TrimSpace(*e.ProjectRoot)
		set("PROJECT_ROOT", cfg.ProjectRoot)
	}
	if e.KeyProperties != nil && strings.TrimSpace(*e.KeyProperties) != "" {
		cfg.KeyProperties = strings.TrimSpace(*e.KeyProperties)
		set("KEY_PROPERTIES", cfg.KeyProperties)
	}
	if e.LocalProperties != nil && strings.TrimSpace(*e.LocalProperties) != "" {
		cfg.LocalProperties = strings.TrimSpace(*e.LocalProperties)
		set("LOCAL_PROPERTIES", cfg.LocalProperties)
	}
	if e.MissingKeyPolicy != nil && strings.TrimSpace(*e.MissingKeyPolicy) != "" {
		cfg.MissingKeyPolicy = policyOrRaw(*e.MissingKeyPolicy)
		set("MISSING_KEY_POLICY", string(cfg.MissingKeyPolicy))
	}
	if e.ConfineStoreFile != nil {
		cfg.ConfineStoreFile = *e.ConfineStoreFile
		set("CONFINE_STORE_FILE", fmt.Sprint(cfg.ConfineStoreFile))
	}
	if e.DebugKeystore != nil && strings.TrimSpace(*e.DebugKeystore) != "" {
		cfg.DebugKeystore = strings.TrimSpace(*e.DebugKeystore)
		set("DEBUG_KEYSTORE", cfg.DebugKeystore)
	}
	if e.LogLevel != nil && strings.TrimSpace(*e.LogLevel) != "" {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(*e.LogLevel))
		set("LOG_LEVEL", cfg.Log.Level)
	}
}
