package organizer

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTargetDir(t *testing.T) {
	mod := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name   string
		byDate bool
		want   string
	}{
		{name: "by date", byDate: true, want: filepath.Join("/out", "Images", "2024", "03-March")},
		{name: "flat", byDate: false, want: filepath.Join("/out", "Images")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TargetDir("/out", "Images", mod, tt.byDate); got != tt.want {
				t.Errorf("TargetDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildTargetDir(t *testing.T) {
	root := t.TempDir()
	mod := time.Date(2023, 12, 24, 0, 0, 0, 0, time.Local)

	for i := 0; i < 2; i++ {
		dir, err := BuildTargetDir(root, "Documents", mod, true)
		if err != nil {
			t.Fatalf("BuildTargetDir() error = %v", err)
		}
		if want := filepath.Join(root, "Documents", "2023", "12-December"); dir != want {
			t.Errorf("dir = %q, want %q", dir, want)
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("directory was not created: %v", err)
		}
	}
}

func TestBuildTargetDirConflict(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "Documents"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := BuildTargetDir(root, "Documents", time.Now(), false); err == nil {
		t.Error("expected an error when a file occupies the category directory")
	}
}

func TestSuffixed(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/d/report.pdf", want: "/d/report_copy3.pdf"},
		{path: "/d/archive.tar.gz", want: "/d/archive.tar_copy3.gz"},
		{path: "/d/Makefile", want: "/d/Makefile_copy3"},
		{path: "/d/.env", want: "/d/.env_copy3"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			want := filepath.FromSlash(tt.want)
			if got := suffixed(filepath.FromSlash(tt.path), "copy", 3); got != want {
				t.Errorf("suffixed() = %q, want %q", got, want)
			}
		})
	}
}
