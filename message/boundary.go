package message

import (
	"bytes"
	"math/rand/v2"
	"slices"
)

const (
	boundaryAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	boundaryLength   = 30
)

// GenerateBoundary returns a random 30 character alphanumeric boundary.
func GenerateBoundary() string {
	b := make([]byte, boundaryLength)
	for i := range b {
		b[i] = boundaryAlphabet[rand.IntN(len(boundaryAlphabet))]
	}
	return string(b)
}

// GenerateSafeBoundary returns a boundary from GenerateBoundary that is not
// found in any of the given bodies.
func GenerateSafeBoundary(corpus ...[]byte) string {
	for {
		boundary := []byte(GenerateBoundary())
		if !slices.ContainsFunc(corpus, func(c []byte) bool { return bytes.Contains(c, boundary) }) {
			return string(boundary)
		}
	}
}
