package organizer

import (
	"github.com/babarot/tidyup/internal/config"
)

// Classifier maps file extensions to category names.
type Classifier struct {
	index map[string]string
}

// NewClassifier builds the reverse extension index. When two categories
// claim the same extension the first declared one keeps it; loaded
// configurations never reach this point with overlaps.
func NewClassifier(categories config.Categories) *Classifier {
	index := make(map[string]string)
	for _, cat := range categories {
		for _, ext := range cat.Extensions {
			ext = config.NormalizeExtension(ext)
			if ext == "" {
				continue
			}
			if _, ok := index[ext]; !ok {
				index[ext] = cat.Name
			}
		}
	}
	return &Classifier{index: index}
}

// Classify returns the category for ext, or config.OthersCategory.
func (c *Classifier) Classify(ext string) string {
	if name, ok := c.index[config.NormalizeExtension(ext)]; ok {
		return name
	}
	return config.OthersCategory
}
