// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package signing

import (
	"fmt"
	"os"
	"path/filepath"
)

// Values the Android Gradle plugin uses when it creates the debug keystore.
const (
	DebugKeyAlias      = "androiddebugkey"
	DebugKeyPassword   = "android"
	DebugStorePassword = "android"
	DebugKeystoreName  = "debug.keystore"
)

// DebugIdentity returns the debug signing identity backed by keystore.
func DebugIdentity(keystore string) Identity {
	return Identity{
		Name:   IdentityDebug,
		Origin: OriginDebugFallback,
		Credentials: Credentials{
			KeyAlias:      DebugKeyAlias,
			KeyPassword:   DebugKeyPassword,
			StoreFile:     keystore,
			StorePassword: DebugStorePassword,
		},
	}
}

// DefaultDebugKeystore locates the debug keystore the Android tooling
// creates: $ANDROID_USER_HOME/debug.keystore, else ~/.android/debug.keystore.
func DefaultDebugKeystore() (string, error) {
	if dir := os.Getenv("ANDROID_USER_HOME"); dir != "" {
		return filepath.Join(dir, DebugKeystoreName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate debug keystore: %w", err)
	}
	return filepath.Join(home, ".android", DebugKeystoreName), nil
}
