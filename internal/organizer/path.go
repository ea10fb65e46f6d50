package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TargetDir returns root/category, or root/category/YYYY/MM-MonthName when
// organizeByDate is set.
func TargetDir(root, category string, modTime time.Time, organizeByDate bool) string {
	if !organizeByDate {
		return filepath.Join(root, category)
	}
	return filepath.Join(root, category, modTime.Format("2006"), modTime.Format("01-January"))
}

// BuildTargetDir computes the destination directory and makes sure it exists.
func BuildTargetDir(root, category string, modTime time.Time, organizeByDate bool) (string, error) {
	dir := TargetDir(root, category, modTime, organizeByDate)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create target directory: %w", err)
	}
	return dir, nil
}

// suffixed inserts marker+n between the base name and the extension of
// path: report.pdf becomes report_copy2.pdf.
func suffixed(path, marker string, n int) string {
	dir, name := filepath.Split(path)
	ext := filepath.Ext(name)
	stem := name[:len(name)-len(ext)]
	if stem == "" {
		// dotfiles like ".env" have no stem to suffix
		stem, ext = name, ""
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s%d%s", stem, marker, n, ext))
}
