package cli

import (
	"runtime/debug"

	"github.com/MakeNowJust/heredoc/v2"
)

const appURL = "https://github.com/babarot/tidyup"

// Version is stamped into the binary with -ldflags.
type Version struct {
	AppName   string
	Version   string
	Revision  string
	BuildDate string
}

// Print renders the --version banner. Development builds report the module
// version recorded by the Go toolchain instead.
func (v Version) Print() string {
	switch v.Version {
	case "unset", "unknown", "develop", "":
		if info, ok := debug.ReadBuildInfo(); ok {
			v.Version = info.Main.Version
		}
	}
	return heredoc.Docf(`
		%s - sorts a folder of files into categories
		%s

		version:   %s
		revision:  %s
		buildDate: %s
		`,
		v.AppName, appURL, v.Version, v.Revision, v.BuildDate,
	)
}
