// Package checksum computes content digests used to skip unchanged questions.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// SumAll digests several inputs as one stream. Each part is length-prefixed
// so that moving bytes between parts changes the digest.
func SumAll(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		n := len(p)
		_, _ = h.Write([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
		_, _ = h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}
