// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Aditya1156/DayPilot/internal/buildconfig"
	"github.com/Aditya1156/DayPilot/internal/signing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ANDROID_USER_HOME", "/opt/android-user")
	root := t.TempDir()
	t.Setenv(EnvPrefix+"_PROJECT_ROOT", root)

	cfg, err := NewLoader("", "test-version").Load()
	require.NoError(t, err)

	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, DefaultKeyProperties, cfg.KeyProperties)
	assert.Equal(t, DefaultLocalProperties, cfg.LocalProperties)
	assert.Equal(t, signing.PolicyReject, cfg.MissingKeyPolicy)
	assert.False(t, cfg.ConfineStoreFile)
	assert.Equal(t, "/opt/android-user/debug.keystore", cfg.DebugKeystore)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "test-version", cfg.Version)
	assert.Equal(t, buildconfig.Defaults(), cfg.App)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "android"), 0o750))

	path := writeConfig(t, dir, `
projectRoot: android
keyProperties: signing/key.properties
missingKeyPolicy: fallback
confineStoreFile: true
debugKeystore: /keys/debug.keystore
log:
  level: DEBUG
app:
  applicationId: com.daypilot.app.beta
  sdk:
    minSdk: 24
  version:
    versionCode: 7
    versionName: 1.2.0
`)

	cfg, err := NewLoader(path, "1.0.0").Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "android"), cfg.ProjectRoot, "relative root is rooted at the config file")
	assert.Equal(t, "signing/key.properties", cfg.KeyProperties)
	assert.Equal(t, signing.PolicyFallback, cfg.MissingKeyPolicy)
	assert.True(t, cfg.ConfineStoreFile)
	assert.Equal(t, "/keys/debug.keystore", cfg.DebugKeystore)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Fields not in the file keep their defaults.
	assert.Equal(t, "com.daypilot.app", cfg.App.Namespace)
	assert.Equal(t, "com.daypilot.app.beta", cfg.App.ApplicationID)
	assert.Equal(t, 24, cfg.App.SDK.MinSDK)
	assert.Equal(t, buildconfig.FlutterDefaults().TargetSDK, cfg.App.SDK.TargetSDK)
	assert.Equal(t, buildconfig.Versions{Code: 7, Name: "1.2.0"}, cfg.App.Version)
	assert.Equal(t, buildconfig.Defaults().Dependencies, cfg.App.Dependencies)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	path := writeConfig(t, dir, "missingKeyPolicy: fallback\nkeyProperties: file.properties\n")

	t.Setenv(EnvPrefix+"_PROJECT_ROOT", other)
	t.Setenv(EnvPrefix+"_MISSING_KEY_POLICY", "reject")
	t.Setenv(EnvPrefix+"_CONFINE_STORE_FILE", "true")
	t.Setenv(EnvPrefix+"_LOG_LEVEL", "WARN")
	t.Setenv(EnvPrefix+"_DEBUG_KEYSTORE", "/env/debug.keystore")

	cfg, err := NewLoader(path, "").Load()
	require.NoError(t, err)

	assert.Equal(t, other, cfg.ProjectRoot)
	assert.Equal(t, signing.PolicyReject, cfg.MissingKeyPolicy)
	assert.Equal(t, "file.properties", cfg.KeyProperties)
	assert.True(t, cfg.ConfineStoreFile)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/env/debug.keystore", cfg.DebugKeystore)
}

func TestLoad_InvalidEnvBool(t *testing.T) {
	t.Setenv(EnvPrefix+"_PROJECT_ROOT", t.TempDir())
	t.Setenv(EnvPrefix+"_CONFINE_STORE_FILE", "maybe")

	_, err := NewLoader("", "").Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFINE_STORE_FILE")
}

func TestLoad_InvalidPolicy(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "missingKeyPolicy: ignore\n")

	_, err := NewLoader(path, "").Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "MissingKeyPolicy")
	assert.Contains(t, err.Error(), "ignore")
}

func TestLoad_InvalidApp(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "app:\n  applicationId: daypilot\n")

	_, err := NewLoader(path, "").Load()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "App.ApplicationID")
}

func TestLoad_MissingProjectRoot(t *testing.T) {
	t.Setenv(EnvPrefix+"_PROJECT_ROOT", filepath.Join(t.TempDir(), "nope"))

	_, err := NewLoader("", "").Load()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "ProjectRoot")
}

func TestLoad_LocalPropertiesVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultLocalProperties),
		[]byte("flutter.versionCode=12\nflutter.versionName=3.0.1\n"), 0o600))
	path := writeConfig(t, dir, "app:\n  version:\n    versionCode: 2\n    versionName: 0.0.2\n")

	cfg, err := NewLoader(path, "").Load()
	require.NoError(t, err)
	assert.Equal(t, buildconfig.Versions{Code: 12, Name: "3.0.1"}, cfg.App.Version)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signingcfg.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	_, err := NewLoader(path, "").Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only YAML supported")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml"), "").Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "")

	cfg, err := NewLoader(path, "").Load()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.ProjectRoot)
}

func TestConfig_Resolver(t *testing.T) {
	cfg := Defaults()
	cfg.ProjectRoot = "/proj"
	cfg.DebugKeystore = "/home/dev/.android/debug.keystore"
	cfg.MissingKeyPolicy = signing.PolicyFallback
	cfg.ConfineStoreFile = true

	r := cfg.Resolver()
	assert.Equal(t, "/proj", r.ProjectRoot)
	assert.Equal(t, "/proj/key.properties", r.PropertiesFile())
	assert.Equal(t, signing.PolicyFallback, r.Policy)
	assert.True(t, r.ConfineStoreFile)
	assert.Equal(t, signing.DebugIdentity("/home/dev/.android/debug.keystore"), r.Fallback)
	assert.Equal(t, "/proj/local.properties", cfg.LocalPropertiesFile())
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/dev")
	got, err := expandHome("~/.android/debug.keystore")
	require.NoError(t, err)
	assert.Equal(t, "/home/dev/.android/debug.keystore", got)

	got, err = expandHome("/abs/debug.keystore")
	require.NoError(t, err)
	assert.Equal(t, "/abs/debug.keystore", got)
}

func TestLoad_OverrideBeatsEnv(t *testing.T) {
	root := t.TempDir()
	t.Setenv("SIGNINGCFG_KEY_PROPERTIES", "env.properties")

	cfg, err := NewLoader("", "test").
		Override(func(c *Config) {
			c.ProjectRoot = root
			c.KeyProperties = "flag.properties"
		}).
		Load()
	require.NoError(t, err)
	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, "flag.properties", cfg.KeyProperties)
}
