// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package signing

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Aditya1156/DayPilot/internal/fsutil"
	xglog "github.com/Aditya1156/DayPilot/internal/log"
)

// DefaultPropertiesFile is the credential file name, relative to the project root.
const DefaultPropertiesFile = "key.properties"

// Policy decides what happens when a credential file exists but is incomplete.
type Policy string

const (
	// PolicyReject fails resolution and names the missing keys.
	PolicyReject Policy = "reject"
	// PolicyFallback logs a warning and signs with the debug identity.
	PolicyFallback Policy = "fallback"
)

// ParsePolicy accepts "reject" or "fallback" (case-insensitive); empty means reject.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyReject:
		return PolicyReject, nil
	case PolicyFallback:
		return PolicyFallback, nil
	default:
		return "", fmt.Errorf("unknown missing-key policy %q (want reject or fallback)", s)
	}
}

// State is the terminal state of a resolution.
type State int

const (
	StateFileAbsent State = iota
	StateFilePresent
)

func (s State) String() string {
	switch s {
	case StateFileAbsent:
		return "file_absent"
	case StateFilePresent:
		return "file_present"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Resolution is the outcome of resolving the release signing identity.
type Resolution struct {
	State    State
	Source   string
	Identity Identity
	// Missing is only set when PolicyFallback replaced an incomplete file.
	Missing []string
}

// Resolver selects the release signing identity. ProjectRoot and Fallback
// are injected; nothing is read from the working directory.
type Resolver struct {
	// ProjectRoot is the absolute Android project directory.
	ProjectRoot string
	// PropertiesPath is the credential file, relative to ProjectRoot unless absolute.
	PropertiesPath string
	// Fallback is bound to the release variant when the file is absent.
	Fallback Identity
	Policy   Policy
	// ConfineStoreFile rejects keystores outside ProjectRoot.
	ConfineStoreFile bool
}

// PropertiesFile returns the absolute location of the credential file.
func (r *Resolver) PropertiesFile() string {
	p := r.PropertiesPath
	if p == "" {
		p = DefaultPropertiesFile
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(r.ProjectRoot, p)
}

// Resolve checks for the credential file once and binds exactly one identity.
func (r *Resolver) Resolve(ctx context.Context) (Resolution, error) {
	if !filepath.IsAbs(r.ProjectRoot) {
		return Resolution{}, fmt.Errorf("%w: %q", ErrRelativeProjectRoot, r.ProjectRoot)
	}
	src, err := LoadSource(r.PropertiesFile())
	if err != nil {
		return Resolution{}, err
	}
	return r.ResolveSource(ctx, src)
}

// ResolveSource binds an identity for an already loaded source.
func (r *Resolver) ResolveSource(ctx context.Context, src Source) (Resolution, error) {
	logger := xglog.WithComponentFromContext(ctx, "signing")

	switch s := src.(type) {
	case Absent:
		logger.Info().
			Str(xglog.FieldEvent, "signing.fallback").
			Str(xglog.FieldPath, s.Path).
			Msg("no credential file, release variant uses the debug identity")
		return Resolution{State: StateFileAbsent, Source: s.Path, Identity: r.Fallback}, nil

	case Present:
		if missing := s.Missing(); len(missing) > 0 {
			if r.Policy != PolicyFallback {
				return Resolution{}, &MissingPropertyError{Path: s.Path, Keys: missing}
			}
			logger.Warn().
				Str(xglog.FieldEvent, "signing.incomplete_fallback").
				Str(xglog.FieldPath, s.Path).
				Strs(xglog.FieldMissing, missing).
				Str(xglog.FieldPolicy, string(r.Policy)).
				Msg("credential file is incomplete, release variant uses the debug identity")
			return Resolution{State: StateFilePresent, Source: s.Path, Identity: r.Fallback, Missing: missing}, nil
		}

		storeRef, _ := s.Lookup(PropStoreFile)
		storeFile, err := ResolveStoreFile(r.ProjectRoot, storeRef, r.ConfineStoreFile)
		if err != nil {
			return Resolution{}, fmt.Errorf("%s: %s: %w", s.Path, PropStoreFile, err)
		}

		alias, _ := s.Lookup(PropKeyAlias)
		keyPassword, _ := s.Lookup(PropKeyPassword)
		storePassword, _ := s.Lookup(PropStorePassword)

		id := Identity{
			Name:   IdentityRelease,
			Origin: s.Path,
			Credentials: Credentials{
				KeyAlias:      alias,
				KeyPassword:   keyPassword,
				StoreFile:     storeFile,
				StorePassword: storePassword,
			},
		}
		logger.Info().
			Str(xglog.FieldEvent, "signing.release").
			Str(xglog.FieldPath, s.Path).
			Str(xglog.FieldKeyAlias, alias).
			Str(xglog.FieldStoreFile, storeFile).
			Msg("release variant uses credentials from file")
		return Resolution{State: StateFilePresent, Source: s.Path, Identity: id}, nil

	default:
		return Resolution{}, fmt.Errorf("unsupported credential source %T", src)
	}
}

// ResolveStoreFile roots ref at projectRoot. Absolute references are kept.
// Surrounding whitespace is trimmed from the path; passwords are never trimmed.
// With confine set, the result must stay under projectRoot after symlinks
// are resolved.
func ResolveStoreFile(projectRoot, ref string, confine bool) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty keystore reference")
	}
	if filepath.IsAbs(ref) {
		if confine {
			return fsutil.ConfineAbsPath(projectRoot, ref)
		}
		return filepath.Clean(ref), nil
	}
	if confine {
		return fsutil.ConfineRelPath(projectRoot, ref)
	}
	return filepath.Join(projectRoot, ref), nil
}

// CheckKeystore verifies the identity's keystore is a regular file.
func CheckKeystore(id Identity) error {
	if err := fsutil.IsRegularFile(id.Credentials.StoreFile); err != nil {
		return fmt.Errorf("%s keystore: %w", id.Name, err)
	}
	return nil
}
