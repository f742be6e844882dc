package digest

// blockBuffer holds the unconsumed tail of the input. n is always < BlockSize
// between Hasher calls.
type blockBuffer struct {
	buf [BlockSize]byte
	n   int
}

// fill copies as much of p as fits and returns the number of bytes taken.
func (b *blockBuffer) fill(p []byte) int {
	n := copy(b.buf[b.n:], p)
	b.n += n
	return n
}

func (b *blockBuffer) full() bool { return b.n == BlockSize }

func (b *blockBuffer) len() int { return b.n }

func (b *blockBuffer) reset() { b.n = 0 }
