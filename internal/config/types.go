// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"path/filepath"

	"github.com/Aditya1156/DayPilot/internal/buildconfig"
	"github.com/Aditya1156/DayPilot/internal/signing"
)

// LogConfig configures internal/log.
type LogConfig struct {
	Level   string `yaml:"level" json:"level"`
	Console bool   `yaml:"console" json:"console"`
}

// Config is the effective tool configuration.
type Config struct {
	// ProjectRoot is the absolute Android project directory.
	ProjectRoot      string                `yaml:"projectRoot" json:"projectRoot"`
	KeyProperties    string                `yaml:"keyProperties" json:"keyProperties"`
	LocalProperties  string                `yaml:"localProperties" json:"localProperties"`
	MissingKeyPolicy signing.Policy        `yaml:"missingKeyPolicy" json:"missingKeyPolicy"`
	ConfineStoreFile bool                  `yaml:"confineStoreFile" json:"confineStoreFile"`
	DebugKeystore    string                `yaml:"debugKeystore" json:"debugKeystore"`
	Log              LogConfig             `yaml:"log" json:"log"`
	App              buildconfig.AppConfig `yaml:"app" json:"app"`

	Version string `yaml:"-" json:"-"`
}

// FileConfig is the on-disk YAML layout.
type FileConfig struct {
	ProjectRoot      string                `yaml:"projectRoot"`
	KeyProperties    string                `yaml:"keyProperties"`
	LocalProperties  string                `yaml:"localProperties"`
	MissingKeyPolicy string                `yaml:"missingKeyPolicy"`
	ConfineStoreFile bool                  `yaml:"confineStoreFile"`
	DebugKeystore    string                `yaml:"debugKeystore"`
	Log              LogConfig             `yaml:"log"`
	App              buildconfig.AppConfig `yaml:"app"`
}

// DebugIdentity returns the fallback identity for this configuration.
func (c Config) DebugIdentity() signing.Identity {
	return signing.DebugIdentity(c.DebugKeystore)
}

// Resolver builds the release signing resolver for this configuration.
func (c Config) Resolver() *signing.Resolver {
	return &signing.Resolver{
		ProjectRoot:      c.ProjectRoot,
		PropertiesPath:   c.KeyProperties,
		Fallback:         c.DebugIdentity(),
		Policy:           c.MissingKeyPolicy,
		ConfineStoreFile: c.ConfineStoreFile,
	}
}

// LocalPropertiesFile returns the absolute location of local.properties.
func (c Config) LocalPropertiesFile() string {
	if filepath.IsAbs(c.LocalProperties) {
		return c.LocalProperties
	}
	return filepath.Join(c.ProjectRoot, c.LocalProperties)
}
