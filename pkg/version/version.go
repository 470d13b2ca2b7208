// Package version reports the server build version advertised during the
// MCP initialize handshake.
package version

import "runtime/debug"

var version = "dev"

// Version returns the module version from build info when available,
// falling back to the locally assigned string.
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
		return info.Main.Version
	}
	return version
}

// Set assigns the fallback version for local development builds.
func Set(v string) {
	if v != "" {
		version = v
	}
}
