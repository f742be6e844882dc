// Package source opens inputs and feeds them to a hash in fixed-size chunks.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	apperrors "mdsum/internal/errors"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Input is an opened byte source.
type Input struct {
	io.ReadCloser
	// Name is the path as given, or "-" for standard input.
	Name string
	// Size is the byte length when known, otherwise 0.
	Size uint64
}

// Open opens path, or wraps stdin when path is "-". A nil stdin means
// os.Stdin. Closing a stdin Input does not close stdin.
func Open(path string, stdin io.Reader) (*Input, error) {
	if path == Stdin {
		if stdin == nil {
			stdin = os.Stdin
		}
		return &Input{ReadCloser: io.NopCloser(stdin), Name: Stdin}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, err, apperrors.ErrInput)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat %s: %w: %w", path, err, apperrors.ErrInput)
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fmt.Errorf("%s is a directory: %w", path, apperrors.ErrInput)
	}

	var size uint64
	if info.Mode().IsRegular() {
		size = uint64(info.Size())
	}
	return &Input{ReadCloser: file, Name: path, Size: size}, nil
}

// Options tunes Feed.
type Options struct {
	// ChunkSize is the number of bytes read and written per step.
	ChunkSize int
	// OnChunk, if set, is called with the running byte total after each chunk.
	OnChunk func(total uint64)
}

// Feed copies src into dst one chunk at a time, so that every chunk reaches
// dst as its own Write call. It stops early when ctx is done.
func Feed(ctx context.Context, dst io.Writer, src io.Reader, opts Options) (uint64, error) {
	size := opts.ChunkSize
	if size <= 0 {
		size = 32 * 1024
	}
	buf := make([]byte, size)

	var total uint64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, readErr := io.ReadFull(src, buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return total, fmt.Errorf("write chunk: %w", err)
			}
			total += uint64(n)
			if opts.OnChunk != nil {
				opts.OnChunk(total)
			}
		}
		switch {
		case readErr == nil:
		case errors.Is(readErr, io.EOF), errors.Is(readErr, io.ErrUnexpectedEOF):
			return total, nil
		default:
			return total, fmt.Errorf("read: %w: %w", readErr, apperrors.ErrInput)
		}
	}
}
