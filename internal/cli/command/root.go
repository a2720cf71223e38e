// Package command provides CLI command definitions for snotify-cli.
//
// It uses urfave/cli/v2 for command parsing. Global flags override the
// config file and SNOTIFY_* environment variables.
package command

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snotify-go/internal/cli/config"
	"github.com/yndnr/snotify-go/internal/cli/output"
	"github.com/yndnr/snotify-go/internal/infra/buildinfo"
	"github.com/yndnr/snotify-go/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:     "snotify-cli",
		Usage:    "X11 startup-notification protocol tool",
		Version:  buildinfo.String(),
		Flags:    globalFlags(),
		Metadata: map[string]any{},
		Commands: []*cli.Command{
			LaunchCommand(),
			CompleteCommand(),
			MonitorCommand(),
			TokenCommand(),
			HistoryCommand(),
		},
		Before: setup,
	}
	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML config file",
			EnvVars: []string{"SNOTIFY_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "display",
			Aliases: []string{"d"},
			Usage:   "X server address (defaults to $DISPLAY)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: text, json",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Shorthand for --log-level debug",
		},
	}
}

// setup merges flags over the loaded config and installs the logger.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("display") {
		cfg.Display = c.String("display")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	if c.Bool("verbose") {
		cfg.LogLevel = "debug"
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})
	if err != nil {
		return err
	}
	logger.SetDefault(log)

	c.App.Metadata["config"] = cfg
	c.App.Metadata["logger"] = log
	return nil
}

// appConfig retrieves the merged configuration from app metadata.
func appConfig(c *cli.Context) config.Config {
	if cfg, ok := c.App.Metadata["config"].(config.Config); ok {
		return cfg
	}
	return config.Default()
}

// appLogger retrieves the logger from app metadata.
func appLogger(c *cli.Context) logger.Logger {
	if l, ok := c.App.Metadata["logger"].(logger.Logger); ok {
		return l
	}
	return logger.Default()
}

// formatter returns the output formatter for the configured format.
func formatter(c *cli.Context) output.Formatter {
	return output.NewFormatter(output.Format(appConfig(c).Output))
}
