// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package buildconfig

import (
	"fmt"

	"github.com/Aditya1156/DayPilot/internal/validate"
)

// JavaLevels are the language levels accepted for compatibility settings.
var JavaLevels = []string{"1.8", "11", "17", "21"}

// Validate checks the declarative surface for values the Android build would
// reject or silently misinterpret.
func Validate(app AppConfig) error {
	v := validate.New()

	v.PackageName("Namespace", app.Namespace)
	v.PackageName("ApplicationID", app.ApplicationID)

	v.Positive("SDK.MinSDK", app.SDK.MinSDK)
	v.Positive("SDK.TargetSDK", app.SDK.TargetSDK)
	v.Positive("SDK.CompileSDK", app.SDK.CompileSDK)
	v.Ordered("SDK.MinSDK", app.SDK.MinSDK, "SDK.TargetSDK", app.SDK.TargetSDK)
	v.Ordered("SDK.TargetSDK", app.SDK.TargetSDK, "SDK.CompileSDK", app.SDK.CompileSDK)

	// Play Store upper bound for versionCode.
	v.Range("Version.Code", app.Version.Code, 1, 2100000000)
	v.NotEmpty("Version.Name", app.Version.Name)

	v.OneOf("Java.SourceCompatibility", app.Java.SourceCompatibility, JavaLevels)
	v.OneOf("Java.TargetCompatibility", app.Java.TargetCompatibility, JavaLevels)
	if app.Java.JVMTarget != app.Java.TargetCompatibility {
		v.AddError("Java.JVMTarget",
			fmt.Sprintf("must match TargetCompatibility %q", app.Java.TargetCompatibility),
			app.Java.JVMTarget)
	}

	validateDependencies(v, app)

	return v.Err()
}

func validateDependencies(v *validate.Validator, app AppConfig) {
	hasPlatform := map[string]bool{}
	hasDesugarLib := false

	parsed := make([]Coordinate, len(app.Dependencies))
	ok := make([]bool, len(app.Dependencies))
	for i, dep := range app.Dependencies {
		field := fmt.Sprintf("Dependencies[%d]", i)
		if dep.Configuration == "" {
			v.AddError(field+".Configuration", "value cannot be empty", dep.Configuration)
		}
		c, err := ParseCoordinate(dep.Coordinate)
		if err != nil {
			v.AddError(field+".Coordinate", err.Error(), dep.Coordinate)
			continue
		}
		parsed[i], ok[i] = c, true

		if dep.Platform {
			if c.Version == "" {
				v.AddError(field+".Coordinate", "platform imports must pin a version", dep.Coordinate)
			}
			hasPlatform[dep.Configuration] = true
		}
		if dep.Configuration == ConfigCoreLibraryDesugaring {
			if c.Version == "" {
				v.AddError(field+".Coordinate", "desugaring library must pin a version", dep.Coordinate)
			}
			hasDesugarLib = true
		}
	}

	for i, dep := range app.Dependencies {
		if !ok[i] || dep.Platform || parsed[i].Version != "" {
			continue
		}
		if !hasPlatform[dep.Configuration] {
			v.AddError(fmt.Sprintf("Dependencies[%d].Coordinate", i),
				fmt.Sprintf("no version and no platform (BoM) import in %q", dep.Configuration),
				dep.Coordinate)
		}
	}

	switch {
	case app.CoreLibraryDesugaring && !hasDesugarLib:
		v.AddError("CoreLibraryDesugaring", "enabled without a coreLibraryDesugaring dependency", true)
	case !app.CoreLibraryDesugaring && hasDesugarLib:
		v.AddError("CoreLibraryDesugaring", "coreLibraryDesugaring dependency declared but desugaring is disabled", false)
	}
}
