// Package typegrow provides the shared runtime pieces of the typegrow
// source generator: release metadata, schema fingerprinting, and the
// generation cache used to skip regeneration of unchanged schemas.
//
// The generation engine itself lives in compiler/gen, schema loading in
// compiler/load, and the language targets in compiler/gen/java and
// compiler/gen/golang.
package typegrow

import (
	"crypto/sha256"
	"encoding/hex"
)

// Version is the tool release version. It participates in cache
// fingerprints so that upgrading the generator invalidates stale output.
const Version = "0.4.0"

// Fingerprint returns a deterministic cache key for a schema source and
// target pair. The same bytes, target, and tool version always produce
// the same key.
func Fingerprint(target string, source []byte) string {
	h := sha256.New()
	h.Write([]byte(Version))
	h.Write([]byte{0})
	h.Write([]byte(target))
	h.Write([]byte{0})
	h.Write(source)
	return hex.EncodeToString(h.Sum(nil)[:16])
}
