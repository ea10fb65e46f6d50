package env

import (
	"os"
	"path/filepath"
)

const (
	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"
)

var (
	TIDYUP_CONFIG_PATH string

	TIDYUP_LOG_PATH string
)

func init() {
	// https://github.com/charmbracelet/log/issues/35
	os.Setenv("CLICOLOR_FORCE", "1")

	// Follow https://specifications.freedesktop.org/basedir-spec/latest/
	TIDYUP_CONFIG_PATH = os.Getenv("TIDYUP_CONFIG_PATH")
	if TIDYUP_CONFIG_PATH == "" {
		TIDYUP_CONFIG_PATH = filepath.Join(baseDir("XDG_CONFIG_HOME", defaultXDGConfigDirname), "tidyup", "config.yaml")
	}

	TIDYUP_LOG_PATH = os.Getenv("TIDYUP_LOG_PATH")
	if TIDYUP_LOG_PATH == "" {
		TIDYUP_LOG_PATH = filepath.Join(baseDir("XDG_DATA_HOME", defaultXDGDataDirname), "tidyup", "tidyup.log")
	}
}

// baseDir resolves an XDG base directory, falling back to a path under $HOME
// and finally to the working directory when no home is available (e.g. in CI).
func baseDir(key, fallback string) string {
	if dir := os.Getenv(key); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, fallback)
}
