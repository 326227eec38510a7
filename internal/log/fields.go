// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldService = "service"
	FieldRunID   = "run_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldCommand   = "command"

	// Signing fields
	FieldVariant  = "variant"
	FieldIdentity = "identity"
	FieldOrigin   = "origin"
	FieldKeyAlias = "key_alias"
	FieldMissing  = "missing_keys"
	FieldPolicy   = "policy"

	// Path fields
	FieldPath        = "path"
	FieldProjectRoot = "project_root"
	FieldStoreFile   = "store_file"
	FieldOutput      = "output"
)
