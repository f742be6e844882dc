package digest

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoBlockMessage = "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq"

var vectors = []struct {
	name   string
	input  string
	sha1   string
	sha256 string
}{
	{
		name:   "empty",
		input:  "",
		sha1:   "da39a3ee5e6b4b0d3255bfef95601890afd80709",
		sha256: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
	},
	{
		name:   "abc",
		input:  "abc",
		sha1:   "a9993e364706816aba3e25717850c26c9cd0d89d",
		sha256: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
	},
	{
		name:   "448 bits",
		input:  twoBlockMessage,
		sha1:   "84983e441c3bd26ebaae4aa1f95129e5e54670f1",
		sha256: "248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1",
	},
	{
		name:   "million a",
		input:  strings.Repeat("a", 1_000_000),
		sha1:   "34aa973cd4c4daa4f61eeb2bdbad27316534016f",
		sha256: "cdc76e5c9914fb9281a1c7e284d73e67f1809a48a497200e046d39ccc7112cd0",
	},
}

func TestKnownVectors(t *testing.T) {
	for _, v := range vectors {
		t.Run(v.name, func(t *testing.T) {
			got1 := Sum1([]byte(v.input))
			assert.Equal(t, v.sha1, hex.EncodeToString(got1[:]))

			got256 := Sum256([]byte(v.input))
			assert.Equal(t, v.sha256, hex.EncodeToString(got256[:]))
		})
	}
}

func TestSumByAlgorithm(t *testing.T) {
	got, err := Sum(SHA1, []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", hex.EncodeToString(got))

	_, err = Sum(Algorithm(7), []byte("abc"))
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestStreamingEqualsSingleWrite(t *testing.T) {
	for _, alg := range []Algorithm{SHA1, SHA256} {
		t.Run(alg.String(), func(t *testing.T) {
			a, err := New(alg)
			require.NoError(t, err)
			require.NoError(t, a.Update([]byte("hello world")))

			b, err := New(alg)
			require.NoError(t, err)
			require.NoError(t, b.Update([]byte("hello ")))
			require.NoError(t, b.Update(nil))
			require.NoError(t, b.Update([]byte("world")))

			sumA, err := a.Finalize()
			require.NoError(t, err)
			sumB, err := b.Finalize()
			require.NoError(t, err)
			assert.Equal(t, sumA, sumB)
		})
	}
}

func TestByteAtATime(t *testing.T) {
	msg := []byte(twoBlockMessage + twoBlockMessage + "x")
	h := NewSHA256()
	for i := range msg {
		require.NoError(t, h.Update(msg[i:i+1]))
		assert.Less(t, h.buf.len(), BlockSize)
	}
	got, err := h.Finalize()
	require.NoError(t, err)
	want := sha256.Sum256(msg)
	assert.Equal(t, want[:], got)
}

func TestRandomChunkingMatchesStdlib(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 0; n < 300; n++ {
		msg := make([]byte, n)
		rng.Read(msg)

		h1, h256 := NewSHA1(), NewSHA256()
		for rest := msg; len(rest) > 0; {
			k := rng.Intn(len(rest) + 1)
			require.NoError(t, h1.Update(rest[:k]))
			require.NoError(t, h256.Update(rest[:k]))
			rest = rest[k:]
		}

		got1, err := h1.Finalize()
		require.NoError(t, err)
		want1 := sha1.Sum(msg)
		require.Equal(t, want1[:], got1, "sha1 length %d", n)

		got256, err := h256.Finalize()
		require.NoError(t, err)
		want256 := sha256.Sum256(msg)
		require.Equal(t, want256[:], got256, "sha256 length %d", n)
	}
}

func TestDigestLengthAcrossPaddingBoundary(t *testing.T) {
	for _, n := range []int{0, 1, 55, 56, 57, 63, 64, 65, 119, 120, 128} {
		msg := make([]byte, n)
		for _, alg := range []Algorithm{SHA1, SHA256} {
			got, err := Sum(alg, msg)
			require.NoError(t, err)
			assert.Len(t, got, alg.Size(), "%s length %d", alg, n)
		}
	}
}

func TestBitCounter(t *testing.T) {
	h := NewSHA1()
	require.NoError(t, h.Update(make([]byte, 3)))
	require.NoError(t, h.Update(make([]byte, 70)))
	assert.Equal(t, uint64(73*8), h.BitLen())
}

func TestBitCounterWraps(t *testing.T) {
	h := NewSHA256()
	h.bits = ^uint64(0) - 7
	require.NoError(t, h.Update([]byte{1, 2}))
	assert.Equal(t, uint64(8), h.BitLen())
}

func countBlocks(t *testing.T, alg Algorithm, n int) uint64 {
	t.Helper()
	h, err := New(alg)
	require.NoError(t, err)
	require.NoError(t, h.Update(make([]byte, n)))
	_, err = h.Finalize()
	require.NoError(t, err)
	return h.Blocks()
}

func TestBlockCountBoundary(t *testing.T) {
	for _, alg := range []Algorithm{SHA1, SHA256} {
		// 55 bytes leave room for 0x80 and the length in the same block.
		assert.Equal(t, uint64(1), countBlocks(t, alg, 55))
		assert.Equal(t, uint64(2), countBlocks(t, alg, 56))
		assert.Equal(t, uint64(2), countBlocks(t, alg, 64))
		assert.Equal(t, uint64(2), countBlocks(t, alg, 65))
		assert.Equal(t, uint64(3), countBlocks(t, alg, 120))
		assert.Greater(t, countBlocks(t, alg, 64+56), countBlocks(t, alg, 64))
	}
}

func TestBlocksDuringUpdate(t *testing.T) {
	h := NewSHA1()
	require.NoError(t, h.Update(make([]byte, 63)))
	assert.Equal(t, uint64(0), h.Blocks())
	require.NoError(t, h.Update(make([]byte, 1)))
	assert.Equal(t, uint64(1), h.Blocks())
	require.NoError(t, h.Update(make([]byte, 129)))
	assert.Equal(t, uint64(3), h.Blocks())
}

func TestFinalizeIsOneShot(t *testing.T) {
	h := NewSHA256()
	require.NoError(t, h.Update([]byte("abc")))
	first, err := h.Finalize()
	require.NoError(t, err)
	require.Len(t, first, Size256)

	_, err = h.Finalize()
	require.ErrorIs(t, err, ErrFinalized)
	require.ErrorIs(t, h.Update([]byte("more")), ErrFinalized)

	n, err := h.Write([]byte("more"))
	require.ErrorIs(t, err, ErrFinalized)
	assert.Zero(t, n)
	assert.Equal(t, uint64(24), h.BitLen())
}

func TestWriteReportsLength(t *testing.T) {
	h := NewSHA1()
	n, err := h.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestNewUnknownAlgorithm(t *testing.T) {
	_, err := New(0)
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestParseAlgorithm(t *testing.T) {
	for name, want := range map[string]Algorithm{
		"sha1": SHA1, "SHA-1": SHA1, " sha256 ": SHA256, "Sha-256": SHA256,
	} {
		got, err := ParseAlgorithm(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseAlgorithm("md5")
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestAlgorithmProperties(t *testing.T) {
	assert.Equal(t, "sha1", SHA1.String())
	assert.Equal(t, "sha256", SHA256.String())
	assert.Equal(t, "Algorithm(9)", Algorithm(9).String())
	assert.Equal(t, 0, Algorithm(9).Size())
	assert.True(t, SHA256.Valid())
	assert.False(t, Algorithm(0).Valid())

	h := NewSHA1()
	assert.Equal(t, SHA1, h.Algorithm())
	assert.Equal(t, Size1, h.Size())
	assert.Equal(t, BlockSize, h.BlockSize())
}

func BenchmarkSHA256(b *testing.B) {
	buf := make([]byte, 8192)
	b.SetBytes(int64(len(buf)))
	for i := 0; i < b.N; i++ {
		Sum256(buf)
	}
}
