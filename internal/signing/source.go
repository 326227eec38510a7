// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package signing

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/magiconair/properties"
)

// Source is the optional credential file: either Absent or Present.
type Source interface {
	// Location is the path that was checked.
	Location() string
	isSource()
}

// Absent means no credential file exists at Path.
type Absent struct {
	Path string
}

// Present holds the parsed contents of the credential file at Path.
type Present struct {
	Path       string
	Properties map[string]string
}

func (a Absent) Location() string  { return a.Path }
func (p Present) Location() string { return p.Path }
func (Absent) isSource()           {}
func (Present) isSource()          {}

// Lookup returns the property value exactly as parsed. Whitespace-only
// values count as absent.
func (p Present) Lookup(key string) (string, bool) {
	v, ok := p.Properties[key]
	if !ok {
		return "", false
	}
	return v, strings.TrimSpace(v) != ""
}

// Missing returns the required keys that are absent or blank.
func (p Present) Missing() []string {
	var missing []string
	for _, key := range RequiredProperties {
		if _, ok := p.Lookup(key); !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// Keys returns the property names in sorted order.
func (p Present) Keys() []string {
	keys := make([]string, 0, len(p.Properties))
	for k := range p.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadSource reads the credential file at path once. A file that does not
// exist yields Absent; any other read or parse failure is an error.
//
// The file is decoded like java.util.Properties: ISO-8859-1, \uXXXX escapes,
// '=' ':' or whitespace separators, and no ${} expansion.
func LoadSource(path string) (Source, error) {
	// #nosec G304 -- the path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Absent{Path: path}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseSource(path, data)
}

// ParseSource decodes properties data that was read from path.
func ParseSource(path string, data []byte) (Present, error) {
	loader := &properties.Loader{
		Encoding:         properties.ISO_8859_1,
		DisableExpansion: true,
	}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return Present{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return Present{Path: path, Properties: props.Map()}, nil
}
