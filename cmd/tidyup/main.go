package main

import (
	"fmt"
	"os"

	"github.com/babarot/tidyup/internal/cli"
)

const appName = "tidyup"

var (
	version   = "unset"
	revision  = "unset"
	buildDate = "unset"
)

func main() {
	if err := cli.Run(cli.Version{
		AppName:   appName,
		Version:   version,
		Revision:  revision,
		BuildDate: buildDate,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %s: %v\n", appName, err)
		os.Exit(1)
	}
}
