// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package signing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSource_Absent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.properties")

	src, err := LoadSource(path)
	require.NoError(t, err)
	assert.Equal(t, Absent{Path: path}, src)
	assert.Equal(t, path, src.Location())
}

func TestParseSource_JavaPropertiesSyntax(t *testing.T) {
	data := []byte(`# release signing
! also a comment
keyAlias = upload
keyPassword:s3cr3t$HOME
storeFile app/upload\
  -keystore.jks
storePassword=caf\u00e9
`)
	src, err := ParseSource("key.properties", data)
	require.NoError(t, err)

	alias, ok := src.Lookup(PropKeyAlias)
	assert.True(t, ok)
	assert.Equal(t, "upload", alias)

	pw, _ := src.Lookup(PropKeyPassword)
	assert.Equal(t, "s3cr3t$HOME", pw, "no ${} expansion or env substitution")

	store, _ := src.Lookup(PropStoreFile)
	assert.Equal(t, "app/upload-keystore.jks", store)

	storePw, _ := src.Lookup(PropStorePassword)
	assert.Equal(t, "café", storePw)

	assert.Empty(t, src.Missing())
	assert.Equal(t, []string{PropKeyAlias, PropKeyPassword, PropStoreFile, PropStorePassword}, src.Keys())
}

func TestParseSource_ExpansionSyntaxIsLiteral(t *testing.T) {
	src, err := ParseSource("key.properties", []byte("keyPassword=${undefined}\n"))
	require.NoError(t, err)
	pw, ok := src.Lookup(PropKeyPassword)
	assert.True(t, ok)
	assert.Equal(t, "${undefined}", pw)
}

func TestPresent_LookupKeepsRawValue(t *testing.T) {
	src := Present{Properties: map[string]string{PropKeyPassword: " pw ", PropKeyAlias: "\t"}}

	pw, ok := src.Lookup(PropKeyPassword)
	assert.True(t, ok)
	assert.Equal(t, " pw ", pw)

	_, ok = src.Lookup(PropKeyAlias)
	assert.False(t, ok, "whitespace-only counts as absent")
}

func TestPresent_MissingReportsRequiredOrder(t *testing.T) {
	src := Present{Properties: map[string]string{PropStorePassword: "x", PropKeyAlias: "  "}}
	assert.Equal(t, []string{PropKeyAlias, PropKeyPassword, PropStoreFile}, src.Missing())
}
