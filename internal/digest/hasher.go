package digest

// compressor is a hash state that absorbs whole blocks.
type compressor interface {
	compress(block *[BlockSize]byte)
	// put writes the state big-endian into dst, which holds at least Size bytes.
	put(dst []byte)
}

// Hasher is a one-shot streaming hash. The zero value is not usable; create
// one with New, NewSHA1 or NewSHA256.
type Hasher struct {
	alg    Algorithm
	state  compressor
	buf    blockBuffer
	bits   uint64
	blocks uint64
	done   bool
}

// New returns a Hasher for alg.
func New(alg Algorithm) (*Hasher, error) {
	switch alg {
	case SHA1:
		return NewSHA1(), nil
	case SHA256:
		return NewSHA256(), nil
	default:
		return nil, ErrUnknownAlgorithm
	}
}

// NewSHA1 returns a Hasher computing a 20-byte SHA-1 digest.
func NewSHA1() *Hasher {
	s := sha1State(sha1Init)
	return &Hasher{alg: SHA1, state: &s}
}

// NewSHA256 returns a Hasher computing a 32-byte SHA-256 digest.
func NewSHA256() *Hasher {
	s := sha256State(sha256Init)
	return &Hasher{alg: SHA256, state: &s}
}

// Algorithm returns the hash family.
func (h *Hasher) Algorithm() Algorithm { return h.alg }

// Size returns the digest length in bytes.
func (h *Hasher) Size() int { return h.alg.Size() }

// BlockSize returns the compression block size in bytes.
func (h *Hasher) BlockSize() int { return BlockSize }

// BitLen returns the number of message bits absorbed, modulo 2^64.
func (h *Hasher) BitLen() uint64 { return h.bits }

// Blocks returns how many times the compression function has run.
func (h *Hasher) Blocks() uint64 { return h.blocks }

// Update absorbs p. Any split of a message across Update calls yields the
// same digest.
func (h *Hasher) Update(p []byte) error {
	if h.done {
		return ErrFinalized
	}
	h.bits += uint64(len(p)) << 3
	h.absorb(p)
	return nil
}

// Write implements io.Writer on top of Update.
func (h *Hasher) Write(p []byte) (int, error) {
	if err := h.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Finalize pads the message, runs the last compression(s) and returns the
// digest. The Hasher cannot be used afterwards.
func (h *Hasher) Finalize() ([]byte, error) {
	if h.done {
		return nil, ErrFinalized
	}
	h.done = true

	h.absorb(padding(h.buf.len(), h.bits))
	if h.buf.len() != 0 {
		panic("digest: padding left a partial block")
	}

	out := make([]byte, h.alg.Size())
	h.state.put(out)
	return out, nil
}

// absorb feeds p through the block buffer without touching the bit counter.
func (h *Hasher) absorb(p []byte) {
	if h.buf.len() > 0 {
		p = p[h.buf.fill(p):]
		if !h.buf.full() {
			return
		}
		h.compress(&h.buf.buf)
		h.buf.reset()
	}
	for len(p) >= BlockSize {
		h.compress((*[BlockSize]byte)(p[:BlockSize]))
		p = p[BlockSize:]
	}
	h.buf.fill(p)
}

func (h *Hasher) compress(block *[BlockSize]byte) {
	h.state.compress(block)
	h.blocks++
}

// Sum1 returns the SHA-1 digest of data.
func Sum1(data []byte) [Size1]byte {
	h := NewSHA1()
	_ = h.Update(data)
	sum, _ := h.Finalize()
	return [Size1]byte(sum)
}

// Sum256 returns the SHA-256 digest of data.
func Sum256(data []byte) [Size256]byte {
	h := NewSHA256()
	_ = h.Update(data)
	sum, _ := h.Finalize()
	return [Size256]byte(sum)
}

// Sum returns the alg digest of data.
func Sum(alg Algorithm, data []byte) ([]byte, error) {
	h, err := New(alg)
	if err != nil {
		return nil, err
	}
	if err := h.Update(data); err != nil {
		return nil, err
	}
	return h.Finalize()
}
