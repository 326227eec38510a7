// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"errors"

	"github.com/Aditya1156/DayPilot/internal/buildconfig"
	"github.com/Aditya1156/DayPilot/internal/signing"
	"github.com/Aditya1156/DayPilot/internal/validate"
)

// Validate checks the effective configuration, including the app surface.
func Validate(cfg Config) error {
	v := validate.New()

	v.Directory("ProjectRoot", cfg.ProjectRoot)
	v.NotEmpty("KeyProperties", cfg.KeyProperties)
	v.NotEmpty("LocalProperties", cfg.LocalProperties)
	v.NotEmpty("DebugKeystore", cfg.DebugKeystore)
	v.OneOf("MissingKeyPolicy", string(cfg.MissingKeyPolicy),
		[]string{string(signing.PolicyReject), string(signing.PolicyFallback)})
	v.OneOf("Log.Level", cfg.Log.Level, validate.LogLevels)

	if err := buildconfig.Validate(cfg.App); err != nil {
		var ve validate.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		for _, e := range ve.Errors() {
			v.AddError("App."+e.Field, e.Message, e.Value)
		}
	}

	return v.Err()
}
