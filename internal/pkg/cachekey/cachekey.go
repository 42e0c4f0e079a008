// Package cachekey builds namespaced cache keys.
package cachekey

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gosimple/slug"
)

const (
	addressNamespace = "address:"
	hashPrefix       = "sha256-"
	maxSlugLength    = 100
)

// Address returns the geocode cache key for a free-text address.
// Addresses that slug to nothing (punctuation only) are keyed by a hash
// of the trimmed input so they do not share one entry.
func Address(address string) string {
	if s := Slug(address); s != "" {
		return addressNamespace + s
	}

	sum := sha256.Sum256([]byte(strings.TrimSpace(address)))
	return addressNamespace + hashPrefix + hex.EncodeToString(sum[:16])
}

// Slug lower-cases, transliterates and hyphenates s, bounded to 100 characters.
func Slug(s string) string {
	out := slug.Make(s)
	if len(out) > maxSlugLength {
		out = strings.Trim(out[:maxSlugLength], "-")
	}
	return out
}
