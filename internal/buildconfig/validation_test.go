// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package buildconfig

import (
	"errors"
	"testing"

	"github.com/Aditya1156/DayPilot/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DefaultsAreValid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
		field  string
	}{
		{"bad namespace", func(a *AppConfig) { a.Namespace = "daypilot" }, "Namespace"},
		{"bad application id", func(a *AppConfig) { a.ApplicationID = "com.day-pilot.app" }, "ApplicationID"},
		{"min above target", func(a *AppConfig) { a.SDK.MinSDK = 36 }, "SDK.MinSDK"},
		{"target above compile", func(a *AppConfig) { a.SDK.TargetSDK = 36 }, "SDK.TargetSDK"},
		{"zero version code", func(a *AppConfig) { a.Version.Code = 0 }, "Version.Code"},
		{"empty version name", func(a *AppConfig) { a.Version.Name = "" }, "Version.Name"},
		{"unknown java level", func(a *AppConfig) { a.Java.SourceCompatibility = "9" }, "Java.SourceCompatibility"},
		{"jvm target mismatch", func(a *AppConfig) { a.Java.JVMTarget = "17" }, "Java.JVMTarget"},
		{"desugaring without library", func(a *AppConfig) { a.Dependencies = a.Dependencies[1:] }, "CoreLibraryDesugaring"},
		{"library without desugaring", func(a *AppConfig) { a.CoreLibraryDesugaring = false }, "CoreLibraryDesugaring"},
		{"malformed coordinate", func(a *AppConfig) {
			a.Dependencies = append(a.Dependencies, Dependency{Configuration: ConfigImplementation, Coordinate: "firebase-auth"})
		}, "Dependencies[2].Coordinate"},
		{"unversioned platform", func(a *AppConfig) {
			a.Dependencies[1].Coordinate = "com.google.firebase:firebase-bom"
		}, "Dependencies[1].Coordinate"},
		{"unversioned without bom", func(a *AppConfig) {
			a.Dependencies = append(a.Dependencies, Dependency{Configuration: "testImplementation", Coordinate: "com.google.firebase:firebase-auth"})
		}, "Dependencies[2].Coordinate"},
		{"empty configuration", func(a *AppConfig) {
			a.Dependencies = append(a.Dependencies, Dependency{Coordinate: "a.b:c:1"})
		}, "Dependencies[2].Configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := Defaults()
			tt.mutate(&app)

			err := Validate(app)
			require.Error(t, err)

			var ve validate.ValidationError
			require.True(t, errors.As(err, &ve))
			fields := make([]string, 0, len(ve.Errors()))
			for _, e := range ve.Errors() {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidate_BomManagedLibrary(t *testing.T) {
	app := Defaults()
	app.Dependencies = append(app.Dependencies,
		Dependency{Configuration: ConfigImplementation, Coordinate: "com.google.firebase:firebase-analytics"},
		Dependency{Configuration: ConfigImplementation, Coordinate: "com.google.firebase:firebase-messaging"},
	)
	assert.NoError(t, Validate(app))
}

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate("com.android.tools:desugar_jdk_libs:2.0.4")
	require.NoError(t, err)
	assert.Equal(t, Coordinate{Group: "com.android.tools", Artifact: "desugar_jdk_libs", Version: "2.0.4"}, c)
	assert.Equal(t, "com.android.tools:desugar_jdk_libs:2.0.4", c.String())

	c, err = ParseCoordinate("com.google.firebase:firebase-auth")
	require.NoError(t, err)
	assert.Empty(t, c.Version)

	for _, bad := range []string{"", "a", "a:b:c:d", "a::c", "a:b c"} {
		_, err := ParseCoordinate(bad)
		assert.Error(t, err, bad)
	}
}

func TestWithSDK_FillsOnlyZeroFields(t *testing.T) {
	app := AppConfig{SDK: SDKSet{MinSDK: 24}}
	got := app.WithSDK(FlutterDefaults())
	assert.Equal(t, 24, got.SDK.MinSDK)
	assert.Equal(t, FlutterDefaults().CompileSDK, got.SDK.CompileSDK)
	assert.Equal(t, FlutterDefaults().NDKVersion, got.SDK.NDKVersion)
}
