package digest

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	c := filepath.Join(dir, "c.txt")
	writeFile(t, a, []byte("test content for hashing"))
	writeFile(t, b, []byte("test content for hashing"))
	writeFile(t, c, []byte("different content"))

	da, err := File(context.Background(), a)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	db, err := File(context.Background(), b)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	dc, err := File(context.Background(), c)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}

	if da != db {
		t.Error("identical content should produce identical digests")
	}
	if da == dc {
		t.Error("different content should produce different digests")
	}
	if len(da.String()) != 64 {
		t.Errorf("hex digest length = %d, want 64", len(da.String()))
	}
}

func TestFileLargerThanChunk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "large.bin")
	content := bytes.Repeat([]byte("0123456789abcdef"), ChunkSize/4)
	writeFile(t, path, content)

	got, err := File(context.Background(), path)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	want, err := Reader(context.Background(), bytes.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Error("streamed digest differs from in-memory digest")
	}
}

func TestFileNotFound(t *testing.T) {
	_, err := File(context.Background(), filepath.Join(t.TempDir(), "missing"))
	var herr *HashError
	if !errors.As(err, &herr) {
		t.Fatalf("expected *HashError, got %v", err)
	}
	if !os.IsNotExist(errors.Unwrap(err)) {
		t.Errorf("expected not-exist cause, got %v", errors.Unwrap(err))
	}
}

func TestFileCanceled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x")
	writeFile(t, path, []byte("x"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := File(ctx, path); !errors.Is(err, context.Canceled) {
		t.Errorf("File() error = %v, want context.Canceled", err)
	}
}

func TestEqual(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	c := filepath.Join(dir, "c")
	d := filepath.Join(dir, "d")
	writeFile(t, a, []byte("same bytes"))
	writeFile(t, b, []byte("same bytes"))
	writeFile(t, c, []byte("same bytez"))
	writeFile(t, d, []byte("longer content here"))

	tests := []struct {
		name string
		x, y string
		want bool
	}{
		{"identical", a, b, true},
		{"same size different bytes", a, c, false},
		{"different size", a, d, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Equal(context.Background(), tt.x, tt.y)
			if err != nil {
				t.Fatalf("Equal() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}
