package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/babarot/tidyup/internal/config"
	"github.com/babarot/tidyup/internal/env"
	"github.com/babarot/tidyup/internal/utils/debug"
	"github.com/babarot/tidyup/internal/utils/log"
	"github.com/jessevdk/go-flags"
)

// SampleConfigName is written by --create-config when no --config is given.
const SampleConfigName = "file_automation_config.yaml"

type Option struct {
	Config       string `short:"c" long:"config" description:"Path to config file (YAML or JSON)" default:""`
	CreateConfig bool   `long:"create-config" description:"Write a sample config file and exit"`
	Schedule     string `short:"s" long:"schedule" value-name:"INTERVAL" description:"Run repeatedly, e.g. \"6 hours\" or \"1 day\" (a bare number means hours)"`
	DryRun       bool   `short:"n" long:"dry-run" description:"Show where files would go without touching anything"`
	ShowConfig   bool   `long:"show-config" description:"Print the resolved configuration and exit"`

	Meta MetaOption `group:"Meta Options"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	logPath string

	stdin   io.Reader
	stdout  io.Writer
	confirm func(question string) bool
}

func Run(v Version) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[OPTIONS]"
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	c := &CLI{
		version: v,
		option:  opt,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
	}

	switch {
	case opt.Meta.Version:
		fmt.Fprint(c.stdout, v.Print())
		return nil
	case opt.CreateConfig:
		return c.CreateConfig()
	}

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}
	c.config = cfg
	c.logPath = cfg.Logging.Path
	if c.logPath == "" {
		c.logPath = env.TIDYUP_LOG_PATH
	}

	_, closeLog, err := log.Setup(c.config.Logging, c.logPath)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	defer slog.Debug("main function finished\n\n\n")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.Run(ctx); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

func (c *CLI) Run(ctx context.Context) error {
	switch c.option.Meta.Debug {
	case "live":
		return debug.Logs(ctx, c.stdout, c.config.Logging, c.logPath, true)
	case "full":
		return debug.Logs(ctx, c.stdout, c.config.Logging, c.logPath, false)
	}

	switch {
	case c.option.ShowConfig:
		return c.ShowConfig()
	case c.option.Schedule != "":
		return c.Schedule(ctx)
	default:
		return c.Organize(ctx)
	}
}
