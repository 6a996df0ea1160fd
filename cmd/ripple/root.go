package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/ripple/internal/config"
)

// cli carries state shared by all commands.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "ripple",
		Short: "Render and preview ripple components",
		Long: `Ripple keeps a retained element tree in sync with reactive components.

The CLI drives the bundled demo application (a counter, a keyed todo
list and routed detail pages):

  ripple render                   print the rendered HTML
  ripple render --route /todos --add milk --click toggle-1
  ripple serve                    live preview in the browser`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return c.setup()
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "Config file (default: ripple.yaml in the project root)")
	flags.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&c.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(
		renderCmd(c),
		serveCmd(c),
		versionCmd(c),
	)

	return rootCmd
}

// setup loads and validates configuration and builds the logger.
func (c *cli) setup() error {
	var err error
	if c.configPath != "" {
		c.cfg, err = config.LoadFile(c.configPath)
	} else {
		c.cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return err
	}

	if c.logLevel != "" {
		c.cfg.Log.Level = c.logLevel
	}
	if c.logFormat != "" {
		c.cfg.Log.Format = c.logFormat
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	level, err := c.cfg.SlogLevel()
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(c.cfg.Log.Format, "json") {
		handler = slog.NewJSONHandler(c.stderr, opts)
	} else {
		handler = slog.NewTextHandler(c.stderr, opts)
	}
	c.logger = slog.New(handler)
	slog.SetDefault(c.logger)

	return nil
}
