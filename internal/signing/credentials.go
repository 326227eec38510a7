// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package signing resolves the code-signing identity bound to a build variant.
//
// The release variant is signed with the credentials described by a
// key.properties file when one exists next to the Android project, and with
// the local debug identity otherwise. Resolution reads the properties file
// once and never fails because the file is missing.
package signing

import "fmt"

// Property names read from key.properties.
const (
	PropKeyAlias      = "keyAlias"
	PropKeyPassword   = "keyPassword"
	PropStoreFile     = "storeFile"
	PropStorePassword = "storePassword"
)

// RequiredProperties lists the keys a release credential file must populate,
// in the order they are reported when missing.
var RequiredProperties = []string{
	PropKeyAlias,
	PropKeyPassword,
	PropStoreFile,
	PropStorePassword,
}

const redacted = "***"

// Credentials is a complete key-signing identity. StoreFile is absolute once
// produced by a Resolver.
type Credentials struct {
	KeyAlias      string `json:"keyAlias" yaml:"keyAlias"`
	KeyPassword   string `json:"keyPassword" yaml:"keyPassword"`
	StoreFile     string `json:"storeFile" yaml:"storeFile"`
	StorePassword string `json:"storePassword" yaml:"storePassword"`
}

// Redacted returns a copy with both passwords replaced.
func (c Credentials) Redacted() Credentials {
	out := c
	if out.KeyPassword != "" {
		out.KeyPassword = redacted
	}
	if out.StorePassword != "" {
		out.StorePassword = redacted
	}
	return out
}

// String never prints the passwords.
func (c Credentials) String() string {
	r := c.Redacted()
	return fmt.Sprintf("alias=%s store=%s keyPassword=%s storePassword=%s",
		r.KeyAlias, r.StoreFile, r.KeyPassword, r.StorePassword)
}

// Identity names a set of credentials and where they came from.
type Identity struct {
	Name        string      `json:"name" yaml:"name"`
	Origin      string      `json:"origin" yaml:"origin"`
	Credentials Credentials `json:"credentials" yaml:"credentials"`
}

// Identity names.
const (
	IdentityRelease = "release"
	IdentityDebug   = "debug"
)

// OriginDebugFallback marks identities that were not read from a properties file.
const OriginDebugFallback = "debug-fallback"

// IsFallback reports whether the identity is the debug fallback.
func (i Identity) IsFallback() bool {
	return i.Origin == OriginDebugFallback
}

// Redacted returns a copy of the identity with its passwords masked.
func (i Identity) Redacted() Identity {
	out := i
	out.Credentials = i.Credentials.Redacted()
	return out
}
