package auth

import "strings"

// Allowlist is a static set of trusted device-identifier prefixes.
// Devices matching a prefix skip the second authentication factor.
type Allowlist struct {
	prefixes []string
}

// NewAllowlist creates an allowlist from the configured prefixes.
func NewAllowlist(prefixes []string) Allowlist {
	return Allowlist{prefixes: prefixes}
}

// Allowed reports whether deviceID is non-empty and starts with any
// configured prefix.
func (a Allowlist) Allowed(deviceID string) bool {
	if deviceID == "" {
		return false
	}
	for _, prefix := range a.prefixes {
		if prefix != "" && strings.HasPrefix(deviceID, prefix) {
			return true
		}
	}
	return false
}
