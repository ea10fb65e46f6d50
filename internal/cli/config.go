package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/quick"
	"github.com/babarot/tidyup/internal/config"
	"github.com/babarot/tidyup/internal/ui"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v2"
)

// CreateConfig writes the sample configuration, asking before it replaces
// an existing file.
func (c *CLI) CreateConfig() error {
	path := c.option.Config
	if path == "" {
		path = SampleConfigName
	}

	overwrite := false
	if _, err := os.Stat(path); err == nil {
		if !c.ask(fmt.Sprintf("%s already exists. Overwrite?", path)) {
			fmt.Fprintln(c.stdout, "Aborted.")
			return nil
		}
		overwrite = true
	}

	if err := config.WriteSample(path, overwrite); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	fmt.Fprintf(c.stdout, "Sample configuration file created: %s\n", path)
	fmt.Fprintln(c.stdout, "Edit this file to customize your automation settings.")
	return nil
}

// ShowConfig prints the resolved configuration as YAML, highlighted when
// stdout is a terminal.
func (c *CLI) ShowConfig() error {
	out, err := yaml.Marshal(c.config)
	if err != nil {
		return err
	}

	if f, ok := c.stdout.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		_, err := c.stdout.Write(out)
		return err
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, string(out), "yaml", "terminal16m", "monokai"); err != nil {
		_, err := c.stdout.Write(out)
		return err
	}
	_, err = io.Copy(c.stdout, &buf)
	return err
}

// ask uses the confirm hook when one is set, otherwise the interactive prompt.
func (c *CLI) ask(question string) bool {
	if c.confirm != nil {
		return c.confirm(question)
	}
	return ui.Confirm(question, c.stdin, c.stdout)
}
