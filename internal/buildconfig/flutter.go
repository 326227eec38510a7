// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package buildconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/magiconair/properties"
)

// Keys the Flutter tool writes into android/local.properties.
const (
	LocalSDKDir      = "sdk.dir"
	LocalFlutterSDK  = "flutter.sdk"
	LocalVersionCode = "flutter.versionCode"
	LocalVersionName = "flutter.versionName"
)

// LocalProperties is the subset of local.properties the build consumes.
type LocalProperties struct {
	Path       string
	AndroidSDK string
	FlutterSDK string
	// Version is zero-valued for fields the file does not set.
	Version Versions
}

// LoadLocalProperties reads path. A missing file is not an error and yields
// an empty LocalProperties.
func LoadLocalProperties(path string) (LocalProperties, error) {
	lp := LocalProperties{Path: path}

	// #nosec G304 -- the path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return lp, nil
		}
		return lp, fmt.Errorf("read %s: %w", path, err)
	}

	loader := &properties.Loader{Encoding: properties.ISO_8859_1, DisableExpansion: true}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return lp, fmt.Errorf("parse %s: %w", path, err)
	}

	lp.AndroidSDK = strings.TrimSpace(props.GetString(LocalSDKDir, ""))
	lp.FlutterSDK = strings.TrimSpace(props.GetString(LocalFlutterSDK, ""))
	lp.Version.Name = strings.TrimSpace(props.GetString(LocalVersionName, ""))
	if raw, ok := props.Get(LocalVersionCode); ok && strings.TrimSpace(raw) != "" {
		code, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return lp, fmt.Errorf("%s: %s: %w", path, LocalVersionCode, err)
		}
		lp.Version.Code = code
	}
	return lp, nil
}

// Apply overrides the app version with whatever local.properties sets,
// matching how the Flutter plugin feeds versionCode and versionName.
func (lp LocalProperties) Apply(app AppConfig) AppConfig {
	if lp.Version.Code != 0 {
		app.Version.Code = lp.Version.Code
	}
	if lp.Version.Name != "" {
		app.Version.Name = lp.Version.Name
	}
	return app
}
