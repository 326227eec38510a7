// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package buildconfig models the declarative Android build surface of the
// DayPilot app and the resolved build plan derived from it.
package buildconfig

// SDKSet carries the SDK levels the Flutter tooling hands to the Android
// build. It is always passed explicitly.
type SDKSet struct {
	CompileSDK int    `yaml:"compileSdk" json:"compileSdk"`
	MinSDK     int    `yaml:"minSdk" json:"minSdk"`
	TargetSDK  int    `yaml:"targetSdk" json:"targetSdk"`
	NDKVersion string `yaml:"ndkVersion" json:"ndkVersion"`
}

// Versions is the user-visible version of the app.
type Versions struct {
	Code int    `yaml:"versionCode" json:"versionCode"`
	Name string `yaml:"versionName" json:"versionName"`
}

// JavaConfig holds language-level compatibility settings.
type JavaConfig struct {
	SourceCompatibility string `yaml:"sourceCompatibility" json:"sourceCompatibility"`
	TargetCompatibility string `yaml:"targetCompatibility" json:"targetCompatibility"`
	JVMTarget           string `yaml:"jvmTarget" json:"jvmTarget"`
}

// Dependency is one entry of the dependencies block.
type Dependency struct {
	Configuration string `yaml:"configuration" json:"configuration"`
	Coordinate    string `yaml:"coordinate" json:"coordinate"`
	// Platform marks a Bill of Materials import.
	Platform bool `yaml:"platform,omitempty" json:"platform,omitempty"`
}

// AppConfig is the pass-through configuration of the Android app module.
type AppConfig struct {
	Namespace             string       `yaml:"namespace" json:"namespace"`
	ApplicationID         string       `yaml:"applicationId" json:"applicationId"`
	SDK                   SDKSet       `yaml:"sdk" json:"sdk"`
	Version               Versions     `yaml:"version" json:"version"`
	Java                  JavaConfig   `yaml:"java" json:"java"`
	CoreLibraryDesugaring bool         `yaml:"coreLibraryDesugaring" json:"coreLibraryDesugaring"`
	Dependencies          []Dependency `yaml:"dependencies" json:"dependencies"`
}

// Dependency configurations understood by the validator.
const (
	ConfigImplementation        = "implementation"
	ConfigCoreLibraryDesugaring = "coreLibraryDesugaring"
)

// FlutterDefaults mirrors the values the Flutter Gradle plugin exposes as
// flutter.compileSdkVersion and friends.
func FlutterDefaults() SDKSet {
	return SDKSet{
		CompileSDK: 35,
		MinSDK:     21,
		TargetSDK:  35,
		NDKVersion: "27.0.12077973",
	}
}

// Defaults reproduces the DayPilot app module.
func Defaults() AppConfig {
	return AppConfig{
		Namespace:     "com.daypilot.app",
		ApplicationID: "com.daypilot.app",
		SDK:           FlutterDefaults(),
		Version:       Versions{Code: 1, Name: "1.0.0"},
		Java: JavaConfig{
			SourceCompatibility: "11",
			TargetCompatibility: "11",
			JVMTarget:           "11",
		},
		CoreLibraryDesugaring: true,
		Dependencies: []Dependency{
			{Configuration: ConfigCoreLibraryDesugaring, Coordinate: "com.android.tools:desugar_jdk_libs:2.0.4"},
			{Configuration: ConfigImplementation, Coordinate: "com.google.firebase:firebase-bom:34.4.0", Platform: true},
		},
	}
}

// WithSDK fills zero SDK fields from sdk.
func (a AppConfig) WithSDK(sdk SDKSet) AppConfig {
	if a.SDK.CompileSDK == 0 {
		a.SDK.CompileSDK = sdk.CompileSDK
	}
	if a.SDK.MinSDK == 0 {
		a.SDK.MinSDK = sdk.MinSDK
	}
	if a.SDK.TargetSDK == 0 {
		a.SDK.TargetSDK = sdk.TargetSDK
	}
	if a.SDK.NDKVersion == "" {
		a.SDK.NDKVersion = sdk.NDKVersion
	}
	return a
}
