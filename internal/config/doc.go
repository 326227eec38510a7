// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config loads the signingcfg tool configuration.
//
// Precedence is ENV > file > defaults. The file layer is strict YAML: unknown
// keys and trailing documents are rejected. Relative paths in the file are
// rooted at the file's directory; relative paths from the environment are
// rooted at the working directory of the operator who set them.
package config
