package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load([]byte("{}"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got, want := cfg.FileTypes.Names(), DefaultCategories().Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("categories = %v, want %v", got, want)
	}
	if !cfg.OrganizeByDate || !cfg.HandleDuplicates || cfg.CreateBackup || !cfg.GenerateReport {
		t.Errorf("unexpected default flags: %+v", cfg)
	}
	if got := cfg.MinFileSizeBytes(); got != 1024 {
		t.Errorf("MinFileSizeBytes() = %d, want 1024", got)
	}
	for _, p := range []string{cfg.SourceDir, cfg.TargetDir, cfg.BackupDir, cfg.ReportDir} {
		if !filepath.IsAbs(p) {
			t.Errorf("path %q should be absolute after loading", p)
		}
	}
	if filepath.Base(cfg.SourceDir) != "test_source" {
		t.Errorf("SourceDir = %q, want .../test_source", cfg.SourceDir)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	doc := `{
  "source_directory": "` + filepath.ToSlash(filepath.Join(dir, "in")) + `",
  "target_directory": "` + filepath.ToSlash(filepath.Join(dir, "out")) + `",
  "organize_by_date": false,
  "min_file_size_kb": 5,
  "some_future_option": 42,
  "file_types": {
    "Pictures": ["JPG", "png"],
    "Notes": [".md"]
  }
}`
	cfg, err := Load([]byte(doc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Categories{
		{Name: "Pictures", Extensions: []string{".jpg", ".png"}},
		{Name: "Notes", Extensions: []string{".md"}},
	}
	if !reflect.DeepEqual(cfg.FileTypes, want) {
		t.Errorf("FileTypes = %+v, want %+v", cfg.FileTypes, want)
	}
	if cfg.OrganizeByDate {
		t.Error("organize_by_date should be false")
	}
	if !cfg.HandleDuplicates {
		t.Error("handle_duplicates should keep its default")
	}
	if got := cfg.MinFileSizeBytes(); got != 5*1024 {
		t.Errorf("MinFileSizeBytes() = %d, want %d", got, 5*1024)
	}
}

func TestLoadRejectsOverlappingExtensions(t *testing.T) {
	doc := `
file_types:
  Images: [".jpg", ".svg"]
  Vector: [".SVG", ".ai"]
`
	_, err := Load([]byte(doc))
	if err == nil {
		t.Fatal("expected an error for overlapping extensions")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if !strings.Contains(verr.Reason, `".svg"`) || !strings.Contains(verr.Reason, "Images") || !strings.Contains(verr.Reason, "Vector") {
		t.Errorf("reason should name the extension and both categories: %s", verr.Reason)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{name: "valid size string", doc: `min_file_size: 5KB`},
		{name: "invalid size string", doc: `min_file_size: five`, wantErr: true},
		{name: "negative kb", doc: `min_file_size_kb: -1`, wantErr: true},
		{name: "bad regexp", doc: "scan:\n  exclude:\n    patterns: [\"(\"]", wantErr: true},
		{name: "bad glob", doc: "scan:\n  exclude:\n    globs: [\"[\"]", wantErr: true},
		{name: "bad log level", doc: "logging:\n  level: loud", wantErr: true},
		{name: "too much parallelism", doc: "engine:\n  parallelism: 1000", wantErr: true},
		{name: "duplicate category", doc: "file_types:\n  A: [.a]\n  A: [.b]", wantErr: true},
		{name: "same source and target", doc: "source_directory: ./x\ntarget_directory: ./x", wantErr: true},
		{name: "fractional kb", doc: `min_file_size_kb: 0.5`},
		{name: "nul byte in path", doc: "source_directory: \"in\\0put\"", wantErr: true},
		{name: "target is a file", doc: "target_directory: " + os.Args[0], wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMinFileSizeBytes(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want int64
	}{
		{name: "kb only", cfg: Config{MinFileSizeKB: 5}, want: 5120},
		{name: "zero", cfg: Config{}, want: 0},
		{name: "string wins", cfg: Config{MinFileSizeKB: 5, MinFileSize: "1MB"}, want: 1024 * 1024},
		{name: "bytes", cfg: Config{MinFileSize: "100"}, want: 100},
		{name: "fractional kb", cfg: Config{MinFileSizeKB: 0.5}, want: 512},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.MinFileSizeBytes(); got != tt.want {
				t.Errorf("MinFileSizeBytes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
}

func TestWriteSampleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yaml")
	if err := WriteSample(path, false); err != nil {
		t.Fatalf("WriteSample() error = %v", err)
	}
	if err := WriteSample(path, false); err == nil {
		t.Error("second WriteSample without overwrite should fail")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(data)
	if err != nil {
		t.Fatalf("Load(sample) error = %v", err)
	}
	if got, want := cfg.FileTypes.Names(), DefaultCategories().Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("sample categories = %v, want %v", got, want)
	}
}
