package debug

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/babarot/tidyup/internal/config"
	"github.com/mattn/go-isatty"
	"github.com/nxadm/tail"
)

// Logs prints the run log at path. With live set it follows new entries
// until ctx is done; otherwise it dumps the current contents.
func Logs(ctx context.Context, w io.Writer, cfg config.LoggingConfig, path string, live bool) error {
	if live {
		return tailLiveLogs(ctx, w, cfg, path)
	}
	return showExistingLogs(w, cfg, path)
}

func tailLiveLogs(ctx context.Context, w io.Writer, cfg config.LoggingConfig, path string) error {
	if !cfg.Enabled {
		return fmt.Errorf("logging is not enabled in config: enable logging in config for live debugging")
	}

	shouldFollow := isatty.IsTerminal(os.Stdout.Fd())
	t, err := tail.TailFile(path, tail.Config{
		ReOpen: shouldFollow,
		Follow: shouldFollow,
		Poll:   true,
		Logger: tail.DiscardingLogger,
		Location: &tail.SeekInfo{
			Offset: 0,
			Whence: io.SeekEnd,
		},
	})
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("log file does not exist: try running tidyup with logging enabled")
		}
		return err
	}
	defer t.Cleanup()

	for {
		select {
		case <-ctx.Done():
			return t.Stop()
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			fmt.Fprintln(w, line.Text)
		}
	}
}

func showExistingLogs(w io.Writer, cfg config.LoggingConfig, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !cfg.Enabled {
			return fmt.Errorf("logging is not enabled in config: enable logging to create log files")
		}
		return fmt.Errorf("no log file exists yet: try running tidyup first")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fmt.Fprintln(w, scanner.Text())
	}

	return scanner.Err()
}
