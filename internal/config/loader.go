// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Aditya1156/DayPilot/internal/buildconfig"
	"github.com/Aditya1156/DayPilot/internal/signing"
	"gopkg.in/yaml.v3"
)

// Default file names, relative to the project root.
const (
	DefaultKeyProperties   = signing.DefaultPropertiesFile
	DefaultLocalProperties = "local.properties"
	DefaultConfigFile      = "signingcfg.yaml"
)

// Loader handles configuration loading with precedence
type Loader struct {
	configPath string
	version    string
	overrides  []func(*Config)
}

// NewLoader creates a new configuration loader. An empty configPath skips
// the file layer.
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath: configPath,
		version:    version,
	}
}

// Override registers fn to run after the env layer. The CLI uses it for
// flags, which take precedence over everything else.
func (l *Loader) Override(fn func(*Config)) *Loader {
	l.overrides = append(l.overrides, fn)
	return l
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		ProjectRoot:      ".",
		KeyProperties:    DefaultKeyProperties,
		LocalProperties:  DefaultLocalProperties,
		MissingKeyPolicy: signing.PolicyReject,
		Log:              LogConfig{Level: "info"},
		App:              buildconfig.Defaults(),
	}
}

// Load loads configuration with precedence: Flags > ENV > File > Defaults
// It enforces Strict Validated Order: Parse File (Strict) -> Apply Env -> Validate
func (l *Loader) Load() (Config, error) {
	cfg := Defaults()

	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath, fileView(cfg))
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		cfg = mergeFileConfig(cfg, fileCfg, filepath.Dir(l.configPath))
	}

	env, err := loadEnvOverrides()
	if err != nil {
		return cfg, err
	}
	env.apply(&cfg)

	for _, fn := range l.overrides {
		fn(&cfg)
	}

	if err := l.finalize(&cfg); err != nil {
		return cfg, err
	}

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// finalize makes paths absolute and folds in the Flutter-provided values.
func (l *Loader) finalize(cfg *Config) error {
	cfg.Version = l.version
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	root, err := filepath.Abs(cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}
	cfg.ProjectRoot = root

	if cfg.DebugKeystore == "" {
		ks, err := signing.DefaultDebugKeystore()
		if err != nil {
			return err
		}
		cfg.DebugKeystore = ks
	} else {
		ks, err := expandHome(cfg.DebugKeystore)
		if err != nil {
			return err
		}
		cfg.DebugKeystore = ks
	}

	lp, err := buildconfig.LoadLocalProperties(cfg.LocalPropertiesFile())
	if err != nil {
		return fmt.Errorf("load local properties: %w", err)
	}
	cfg.App = lp.Apply(cfg.App).WithSDK(buildconfig.FlutterDefaults())
	return nil
}

// loadFile decodes the YAML file at path over base with STRICT parsing.
// Unknown fields will cause a fatal error to prevent misconfiguration.
func (l *Loader) loadFile(path string, base FileConfig) (FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return base, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read file: %w", err)
	}

	fileCfg := base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return base, nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return base, fmt.Errorf("%w: %w", ErrUnknownConfigField, err)
		}
		return base, fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return fileCfg, nil
}

// LoadFileConfig loads a YAML config file over the defaults without applying
// env overrides or validation.
func LoadFileConfig(path string) (FileConfig, error) {
	return NewLoader(path, "").loadFile(path, fileView(Defaults()))
}

func fileView(cfg Config) FileConfig {
	return FileConfig{
		ProjectRoot:      cfg.ProjectRoot,
		KeyProperties:    cfg.KeyProperties,
		LocalProperties:  cfg.LocalProperties,
		MissingKeyPolicy: string(cfg.MissingKeyPolicy),
		ConfineStoreFile: cfg.ConfineStoreFile,
		DebugKeystore:    cfg.DebugKeystore,
		Log:              cfg.Log,
		App:              cfg.App,
	}
}

// mergeFileConfig copies the file layer into cfg. A relative projectRoot is
// rooted at the directory holding the config file.
func mergeFileConfig(cfg Config, f FileConfig, baseDir string) Config {
	cfg.ProjectRoot = f.ProjectRoot
	if !filepath.IsAbs(cfg.ProjectRoot) {
		cfg.ProjectRoot = filepath.Join(baseDir, cfg.ProjectRoot)
	}
	cfg.KeyProperties = f.KeyProperties
	cfg.LocalProperties = f.LocalProperties
	cfg.MissingKeyPolicy = policyOrRaw(f.MissingKeyPolicy)
	cfg.ConfineStoreFile = f.ConfineStoreFile
	cfg.DebugKeystore = f.DebugKeystore
	cfg.Log = f.Log
	cfg.App = f.App
	return cfg
}

// policyOrRaw normalises known policies and keeps unknown input so that
// validation can report it verbatim.
func policyOrRaw(s string) signing.Policy {
	if p, err := signing.ParsePolicy(s); err == nil {
		return p
	}
	return signing.Policy(s)
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", p, err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
