// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration for floatpane.

package defaults

import (
	_ "embed"
)

//go:embed floatpane.json
var systemConfig []byte

// SystemConfig returns the embedded system config JSON.
func SystemConfig() ([]byte, error) {
	return systemConfig, nil
}
