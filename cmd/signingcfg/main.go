// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// signingcfg resolves and validates the DayPilot Android signing
// configuration outside of Gradle.
//
// Usage:
//
//	signingcfg [--config signingcfg.yaml] [--project-root android] <command>
//
// Exit codes:
//   - 0: success
//   - 1: resolution, configuration or validation failure
//   - 2: usage error (unknown command, bad flag value)
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	xglog "github.com/Aditya1156/DayPilot/internal/log"
	"github.com/google/uuid"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks errors caused by how the tool was invoked.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// run executes the CLI and maps the outcome to an exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	xglog.Reconfigure(xglog.Config{Output: stderr})
	ctx = xglog.ContextWithRunID(ctx, uuid.NewString())

	app := newApp(stdout, stderr)
	if err := app.RunContext(ctx, args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var ue usageError
		if errors.As(err, &ue) {
			return exitUsage
		}
		return exitFailure
	}
	return exitOK
}
