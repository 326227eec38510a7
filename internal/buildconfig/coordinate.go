// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package buildconfig

import (
	"fmt"
	"strings"
)

// Coordinate is a Maven coordinate group:artifact[:version].
type Coordinate struct {
	Group    string
	Artifact string
	Version  string
}

func (c Coordinate) String() string {
	if c.Version == "" {
		return c.Group + ":" + c.Artifact
	}
	return c.Group + ":" + c.Artifact + ":" + c.Version
}

// ParseCoordinate splits s into its parts. A version is optional because
// BoM-managed libraries omit it.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Coordinate{}, fmt.Errorf("coordinate %q must be group:artifact[:version]", s)
	}
	for _, p := range parts {
		if p == "" || strings.ContainsAny(p, " \t/") {
			return Coordinate{}, fmt.Errorf("coordinate %q has an empty or malformed segment", s)
		}
	}
	c := Coordinate{Group: parts[0], Artifact: parts[1]}
	if len(parts) == 3 {
		c.Version = parts[2]
	}
	return c, nil
}
