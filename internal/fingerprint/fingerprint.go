// Package fingerprint computes the content hash used for exact-duplicate
// document detection.
//
// The fingerprint is a 32-bit rolling sum, not a cryptographic digest.
// It is used only for equality comparison at ingest time; collisions are
// an accepted approximation.
package fingerprint

import "strconv"

// Sum returns the fingerprint of text as a decimal string.
//
// The hash accumulates hash*31 + code per character with two's-complement
// 32-bit wraparound, so the result can be negative.
func Sum(text string) string {
	var hash int32
	for _, r := range text {
		hash = hash*31 + int32(r)
	}
	return strconv.FormatInt(int64(hash), 10)
}
