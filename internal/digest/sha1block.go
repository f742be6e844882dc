package digest

import (
	"encoding/binary"
	"math/bits"
)

var sha1Init = [5]uint32{0x67452301, 0xEFCDAB89, 0x98BADCFE, 0x10325476, 0xC3D2E1F0}

// sha1Phase is one 20-round stretch of the SHA-1 round function.
type sha1Phase struct {
	mix func(b, c, d uint32) uint32
	k   uint32
}

const sha1PhaseRounds = 20

var sha1Phases = [4]sha1Phase{
	{mix: sha1Choose, k: 0x5A827999},
	{mix: sha1Parity, k: 0x6ED9EBA1},
	{mix: sha1Majority, k: 0x8F1BBCDC},
	{mix: sha1Parity, k: 0xCA62C1D6},
}

func sha1Choose(b, c, d uint32) uint32 { return (b & c) | (^b & d) }

func sha1Parity(b, c, d uint32) uint32 { return b ^ c ^ d }

func sha1Majority(b, c, d uint32) uint32 { return (b & c) | (b & d) | (c & d) }

// compressSHA1 folds one block into state and returns the new state.
func compressSHA1(state [5]uint32, block *[BlockSize]byte) [5]uint32 {
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 80; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, d, e := state[0], state[1], state[2], state[3], state[4]
	for i := 0; i < 80; i++ {
		p := &sha1Phases[i/sha1PhaseRounds]
		temp := bits.RotateLeft32(a, 5) + p.mix(b, c, d) + e + p.k + w[i]
		e, d, c, b, a = d, c, bits.RotateLeft32(b, 30), a, temp
	}

	state[0] += a
	state[1] += b
	state[2] += c
	state[3] += d
	state[4] += e
	return state
}

// sha1State adapts compressSHA1 to the Hasher.
type sha1State [5]uint32

func (s *sha1State) compress(block *[BlockSize]byte) {
	*s = compressSHA1(*s, block)
}

func (s *sha1State) put(dst []byte) {
	for i, v := range s {
		binary.BigEndian.PutUint32(dst[i*4:], v)
	}
}
