// Package hash wraps the digest core for callers that render digests as text.
package hash

import (
	"encoding/hex"
	"fmt"

	"github.com/multiformats/go-multihash"

	"mdsum/internal/digest"
)

// Format selects how a digest is rendered.
type Format string

const (
	// FormatHex renders the raw digest as lowercase hex.
	FormatHex Format = "hex"
	// FormatMultihash renders the multihash encoding as lowercase hex.
	FormatMultihash Format = "multihash"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatHex, FormatMultihash:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", name)
	}
}

// Hasher wraps a one-shot digest.Hasher. Sum finalizes on first use and
// returns the cached digest afterwards.
type Hasher struct {
	d   *digest.Hasher
	sum []byte
}

// New creates a Hasher for alg.
func New(alg digest.Algorithm) (*Hasher, error) {
	d, err := digest.New(alg)
	if err != nil {
		return nil, err
	}
	return &Hasher{d: d}, nil
}

// Write adds data to the hash state.
func (h *Hasher) Write(p []byte) (int, error) { return h.d.Write(p) }

// Algorithm returns the hash family.
func (h *Hasher) Algorithm() digest.Algorithm { return h.d.Algorithm() }

// Blocks returns the number of compressions run so far.
func (h *Hasher) Blocks() uint64 { return h.d.Blocks() }

// Sum returns the raw digest.
func (h *Hasher) Sum() []byte {
	if h.sum == nil {
		// Finalize only fails on a second call, which the cache prevents.
		h.sum, _ = h.d.Finalize()
	}
	return h.sum
}

// SumHex returns the lowercase hex digest.
func (h *Hasher) SumHex() string { return hex.EncodeToString(h.Sum()) }

// Render returns the digest in format f.
func (h *Hasher) Render(f Format) (string, error) {
	return Render(h.Algorithm(), h.Sum(), f)
}

// Render formats sum, a digest produced by alg.
func Render(alg digest.Algorithm, sum []byte, f Format) (string, error) {
	switch f {
	case FormatHex, "":
		return hex.EncodeToString(sum), nil
	case FormatMultihash:
		code, err := multihashCode(alg)
		if err != nil {
			return "", err
		}
		mh, err := multihash.Encode(sum, code)
		if err != nil {
			return "", fmt.Errorf("encode multihash: %w", err)
		}
		return hex.EncodeToString(mh), nil
	default:
		return "", fmt.Errorf("unknown output format %q", f)
	}
}

func multihashCode(alg digest.Algorithm) (uint64, error) {
	switch alg {
	case digest.SHA1:
		return multihash.SHA1, nil
	case digest.SHA256:
		return multihash.SHA2_256, nil
	default:
		return 0, digest.ErrUnknownAlgorithm
	}
}
