package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

var seedFiles = []string{
	"example_document.txt",
	"sample_image.jpg",
	"test_data.csv",
	"presentation.pdf",
}

// seedSource creates dir and fills it with a few example files so a first
// run against a fresh setup has something to organize next time.
func seedSource(dir string, now time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var created []string
	for _, name := range seedFiles {
		path := filepath.Join(dir, name)
		body := fmt.Sprintf(
			"This is a sample %s created for testing the automation script.\nCreated on: %s\nYou can delete this file after testing.\n",
			name, now.Format("2006-01-02 15:04:05"),
		)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			return created, err
		}
		created = append(created, path)
	}
	return created, nil
}
