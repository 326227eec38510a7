// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package buildconfig

import (
	"context"
	"fmt"

	xglog "github.com/Aditya1156/DayPilot/internal/log"
	"github.com/Aditya1156/DayPilot/internal/signing"
)

// PlanSchemaVersion is bumped whenever the serialized plan layout changes.
const PlanSchemaVersion = 1

// Variant is a build variant bound to exactly one signing identity.
type Variant struct {
	Name       string           `json:"name" yaml:"name"`
	Debuggable bool             `json:"debuggable" yaml:"debuggable"`
	Signing    signing.Identity `json:"signing" yaml:"signing"`
}

// SigningSummary records how the release identity was chosen.
type SigningSummary struct {
	State   string   `json:"state" yaml:"state"`
	Source  string   `json:"source" yaml:"source"`
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// Plan is the fully resolved build configuration.
type Plan struct {
	SchemaVersion int            `json:"schemaVersion" yaml:"schemaVersion"`
	App           AppConfig      `json:"app" yaml:"app"`
	Signing       SigningSummary `json:"signing" yaml:"signing"`
	Variants      []Variant      `json:"variants" yaml:"variants"`
}

// BuildPlan validates app and binds signing identities to the debug and
// release variants. The debug variant always uses the resolver's fallback.
func BuildPlan(ctx context.Context, app AppConfig, resolver *signing.Resolver) (Plan, error) {
	if err := Validate(app); err != nil {
		return Plan{}, fmt.Errorf("app config: %w", err)
	}

	res, err := resolver.Resolve(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("resolve release signing: %w", err)
	}

	plan := Plan{
		SchemaVersion: PlanSchemaVersion,
		App:           app,
		Signing: SigningSummary{
			State:   res.State.String(),
			Source:  res.Source,
			Missing: res.Missing,
		},
		Variants: []Variant{
			{Name: "debug", Debuggable: true, Signing: resolver.Fallback},
			{Name: "release", Debuggable: false, Signing: res.Identity},
		},
	}

	logger := xglog.WithComponentFromContext(ctx, "plan")
	logger.Debug().
		Str(xglog.FieldEvent, "plan.built").
		Str("application_id", app.ApplicationID).
		Str("signing_state", plan.Signing.State).
		Msg("build plan resolved")

	return plan, nil
}

// Variant returns the named variant.
func (p Plan) Variant(name string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Redacted returns a copy of the plan with every password masked.
func (p Plan) Redacted() Plan {
	out := p
	out.Variants = make([]Variant, len(p.Variants))
	for i, v := range p.Variants {
		v.Signing = v.Signing.Redacted()
		out.Variants[i] = v
	}
	return out
}
