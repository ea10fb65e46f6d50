package organizer

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"github.com/babarot/tidyup/internal/config"
	"github.com/babarot/tidyup/internal/utils/log"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{
		"a.txt",
		"Photo.JPG",
		".hidden",
		"notes/.DS_Store",
		"notes/todo.md",
		"notes/deep/song.mp3",
		"build.tmp",
		"Thumbs.db",
		"big.bin",
		"out/already.txt",
		".cache/x.txt",
	} {
		content := "x"
		if name == "big.bin" {
			content = "0123456789012345678901234567890123456789"
		}
		writeFile(t, filepath.Join(root, name), content)
	}

	cfg := config.Default()
	cfg.Scan.Exclude = config.ExcludeConfig{
		Files:    []string{"Thumbs.db"},
		Patterns: []string{`^build\.`},
		Globs:    []string{"*.tmp"},
		MaxSize:  "32",
	}
	filter, err := NewFilter(cfg)
	require.NoError(t, err)

	records, err := Scan(context.Background(), root, filter, []string{filepath.Join(root, "out")}, log.Discard())
	require.NoError(t, err)

	got := lo.Map(records, func(r FileRecord, _ int) string { return filepath.ToSlash(r.RelPath) })
	sort.Strings(got)
	assert.Equal(t, []string{".cache/x.txt", "Photo.JPG", "a.txt", "notes/deep/song.mp3", "notes/todo.md"}, got)

	photo, ok := lo.Find(records, func(r FileRecord) bool { return r.Name == "Photo.JPG" })
	require.True(t, ok)
	assert.Equal(t, ".jpg", photo.Extension)
	assert.Equal(t, int64(1), photo.Size)
	assert.True(t, filepath.IsAbs(photo.Path))
}

func TestScanHiddenPolicy(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".env"), "x")
	writeFile(t, filepath.Join(root, "_draft.txt"), "x")

	tests := []struct {
		name string
		scan config.ScanConfig
		want []string
	}{
		{name: "default prefix", scan: config.ScanConfig{SkipHidden: true, HiddenPrefix: "."}, want: []string{"_draft.txt"}},
		{name: "custom prefix", scan: config.ScanConfig{SkipHidden: true, HiddenPrefix: "_"}, want: []string{".env"}},
		{name: "disabled", scan: config.ScanConfig{SkipHidden: false, HiddenPrefix: "."}, want: []string{".env", "_draft.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Scan = tt.scan
			filter, err := NewFilter(cfg)
			require.NoError(t, err)

			records, err := Scan(context.Background(), root, filter, nil, log.Discard())
			require.NoError(t, err)
			got := lo.Map(records, func(r FileRecord, _ int) string { return r.Name })
			sort.Strings(got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanCanceled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	filter, err := NewFilter(config.Default())
	require.NoError(t, err)
	_, err = Scan(ctx, root, filter, nil, log.Discard())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"a.TXT":          ".txt",
		"archive.tar.gz": ".gz",
		"Makefile":       "",
		".bashrc":        "",
		"trailing.":      ".",
	}
	for name, want := range tests {
		if got := extension(name); got != want {
			t.Errorf("extension(%q) = %q, want %q", name, got, want)
		}
	}
}
