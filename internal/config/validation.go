package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobwas/glob"
	"github.com/k1LoW/duration"
)

var sizeRe = regexp.MustCompile(`^(\d+(B|K|KB|KIB|M|MB|MIB|G|GB|GIB|T|TB|TIB|P|PB|PIB)?)?$`)

// validateSize validates the size format (e.g., "10MB", "1GB"); empty is acceptable
func validateSize(fl validator.FieldLevel) bool {
	value := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	return sizeRe.MatchString(value)
}

// validateDuration accepts anything k1LoW/duration understands ("10 minutes", "1h"); empty disables
func validateDuration(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	d, err := duration.Parse(value)
	return err == nil && d >= 0
}

func validateRegexp(fl validator.FieldLevel) bool {
	_, err := regexp.Compile(fl.Field().String())
	return err == nil
}

func validateGlob(fl validator.FieldLevel) bool {
	_, err := glob.Compile(fl.Field().String())
	return err == nil
}

// expandPath expands environment variables and "~" in paths
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}

	path = os.ExpandEnv(path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return abs, nil
}

// validateDirPath is a validation function for directory paths that works on any OS.
// The standard "dirpath" validator in go-playground/validator rejects some valid
// Windows paths such as "C:\Users\name\.dir\", so this one only rejects empty
// paths and NUL bytes, and requires an existing path to be a directory.
func validateDirPath(fl validator.FieldLevel) bool {
	path := strings.TrimSpace(fl.Field().String())
	if path == "" || strings.ContainsRune(path, 0) {
		return false
	}

	cleanPath := filepath.Clean(path)

	fi, err := os.Stat(cleanPath)
	if err == nil {
		return fi.IsDir()
	}
	if os.IsNotExist(err) {
		return true
	}
	// Permission problems surface later as SourceUnavailable; the path
	// itself is well-formed.
	if _, ok := err.(*os.PathError); ok {
		return os.IsPermission(err)
	}
	return true
}
