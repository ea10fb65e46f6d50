// Package digest computes content fingerprints used to detect exact
// duplicate files.
package digest

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"
)

// ChunkSize is the read size used when streaming file contents.
const ChunkSize = 32 * 1024

// Digest is a BLAKE2b-256 sum of a file's full contents.
type Digest [blake2b.Size256]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// HashError is returned when a file cannot be read for hashing.
type HashError struct {
	Path string
	Err  error
}

func (e *HashError) Error() string {
	return fmt.Sprintf("hash %q: %v", e.Path, e.Err)
}

func (e *HashError) Unwrap() error {
	return e.Err
}

// File streams the contents of path through BLAKE2b-256. The context is
// checked between chunks so a slow file cannot outlive its deadline by more
// than one read.
func File(ctx context.Context, path string) (Digest, error) {
	var d Digest

	f, err := os.Open(path)
	if err != nil {
		return d, &HashError{Path: path, Err: err}
	}
	defer f.Close()

	sum, err := Reader(ctx, f)
	if err != nil {
		return d, &HashError{Path: path, Err: err}
	}
	return sum, nil
}

// Reader hashes everything readable from r.
func Reader(ctx context.Context, r io.Reader) (Digest, error) {
	var d Digest

	h, err := blake2b.New256(nil)
	if err != nil {
		return d, err
	}

	buf := make([]byte, ChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return d, err
		}
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return d, err
		}
	}

	copy(d[:], h.Sum(nil))
	return d, nil
}

// Equal reports whether two files have identical contents. Files of
// different sizes are never hashed.
func Equal(ctx context.Context, a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, &HashError{Path: a, Err: err}
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, &HashError{Path: b, Err: err}
	}
	if ai.Size() != bi.Size() {
		return false, nil
	}

	da, err := File(ctx, a)
	if err != nil {
		return false, err
	}
	db, err := File(ctx, b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(da[:], db[:]), nil
}
