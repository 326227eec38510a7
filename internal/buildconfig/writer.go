// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package buildconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	xglog "github.com/Aditya1156/DayPilot/internal/log"
	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// Format selects the plan encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported plan format %q (want json or yaml)", s)
	}
}

// Encode writes v (a Plan or any other view) to w as indented JSON or YAML.
func Encode(w io.Writer, v any, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

// WritePlan atomically replaces path with the encoded plan. The file is
// created 0600 since a revealed plan carries passwords.
func WritePlan(ctx context.Context, path string, p Plan, f Format) error {
	logger := xglog.WithComponentFromContext(ctx, "plan")

	// renameio handles: temp file creation, fsync, atomic rename, cleanup on error
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o600))
	if err != nil {
		return fmt.Errorf("create pending plan file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending plan file")
		}
	}()

	if err := Encode(pendingFile, p, f); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace plan file: %w", err)
	}

	logger.Info().
		Str(xglog.FieldEvent, "plan.written").
		Str(xglog.FieldOutput, path).
		Str("format", string(f)).
		Msg("build plan written")
	return nil
}
