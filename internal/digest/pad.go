package digest

import "encoding/binary"

// lengthSize is the width of the big-endian bit-length suffix.
const lengthSize = 8

// padding returns the bytes that complete a message with buffered bytes
// pending in the last block: 0x80, zero fill up to offset 56 mod 64, then
// bitLen as a big-endian uint64. The result is 9 to 72 bytes long.
func padding(buffered int, bitLen uint64) []byte {
	var tmp [BlockSize + lengthSize]byte
	tmp[0] = 0x80
	zeros := (2*BlockSize - lengthSize - 1 - buffered) % BlockSize
	n := 1 + zeros
	binary.BigEndian.PutUint64(tmp[n:], bitLen)
	return tmp[:n+lengthSize]
}
