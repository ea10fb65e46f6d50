package ui

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfirmWithoutTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "answers"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tests := []struct {
		name string
		in   io.Reader
	}{
		{name: "reader", in: strings.NewReader("y\n")},
		{name: "regular file", in: f},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if Confirm("Overwrite?", tt.in, &out) {
				t.Error("Confirm() = true, want the default answer (no)")
			}
			if out.Len() != 0 {
				t.Errorf("nothing should be drawn without a terminal, got %q", out.String())
			}
		})
	}
}
