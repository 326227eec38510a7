// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package signing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Aditya1156/DayPilot/internal/fsutil"
)

var (
	// ErrMissingProperty classifies credential files that lack one of the
	// required keys. Use errors.As with *MissingPropertyError for details.
	ErrMissingProperty = errors.New("missing signing property")

	// ErrRelativeProjectRoot is returned when a resolver is asked to root
	// paths at something other than an absolute directory.
	ErrRelativeProjectRoot = errors.New("project root must be absolute")

	// ErrStoreFileEscapesRoot is returned under confinement when storeFile
	// points outside the project root.
	ErrStoreFileEscapesRoot = fsutil.ErrEscapesRoot
)

// MissingPropertyError names every required key absent (or blank) in a
// credential file.
type MissingPropertyError struct {
	Path string
	Keys []string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Path, ErrMissingProperty, strings.Join(e.Keys, ", "))
}

func (e *MissingPropertyError) Is(target error) bool {
	return target == ErrMissingProperty
}
