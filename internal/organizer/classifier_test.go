package organizer

import (
	"testing"

	"github.com/babarot/tidyup/internal/config"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(config.DefaultCategories())

	tests := []struct {
		ext  string
		want string
	}{
		{ext: ".jpg", want: "Images"},
		{ext: ".JPG", want: "Images"},
		{ext: "png", want: "Images"},
		{ext: ".pdf", want: "Documents"},
		{ext: ".csv", want: "Spreadsheets"},
		{ext: ".mp3", want: "Audio"},
		{ext: ".pptx", want: "Presentations"},
		{ext: ".weird", want: config.OthersCategory},
		{ext: "", want: config.OthersCategory},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := c.Classify(tt.ext); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestClassifyFirstDeclaredWins(t *testing.T) {
	c := NewClassifier(config.Categories{
		{Name: "Vector", Extensions: []string{".svg"}},
		{Name: "Images", Extensions: []string{".SVG", ".png"}},
	})
	if got := c.Classify(".svg"); got != "Vector" {
		t.Errorf("Classify(.svg) = %q, want Vector", got)
	}
	if got := c.Classify(".png"); got != "Images" {
		t.Errorf("Classify(.png) = %q, want Images", got)
	}
}
