// Package digest implements streaming SHA-1 and SHA-256 hashing over the
// Merkle–Damgård construction.
//
// A Hasher is fed with any number of Update calls and consumed by a single
// Finalize call. Hashers are not safe for concurrent use.
package digest

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// BlockSize is the block size, in bytes, of both algorithms.
	BlockSize = 64

	// Size1 is the size, in bytes, of a SHA-1 digest.
	Size1 = 20

	// Size256 is the size, in bytes, of a SHA-256 digest.
	Size256 = 32
)

var (
	// ErrFinalized is returned by any call on a Hasher after Finalize.
	ErrFinalized = errors.New("digest: hasher already finalized")

	// ErrUnknownAlgorithm is returned for an algorithm outside the supported set.
	ErrUnknownAlgorithm = errors.New("digest: unknown algorithm")
)

// Algorithm identifies a hash family.
type Algorithm int

const (
	// SHA1 is the 160-bit family.
	SHA1 Algorithm = iota + 1
	// SHA256 is the 256-bit family.
	SHA256
)

// String returns the canonical lowercase name.
func (a Algorithm) String() string {
	switch a {
	case SHA1:
		return "sha1"
	case SHA256:
		return "sha256"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Size returns the digest length in bytes, or 0 for an unknown algorithm.
func (a Algorithm) Size() int {
	switch a {
	case SHA1:
		return Size1
	case SHA256:
		return Size256
	default:
		return 0
	}
}

// Valid reports whether a is a supported algorithm.
func (a Algorithm) Valid() bool { return a == SHA1 || a == SHA256 }

// ParseAlgorithm maps a user-supplied name to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sha1", "sha-1":
		return SHA1, nil
	case "sha256", "sha-256":
		return SHA256, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}
