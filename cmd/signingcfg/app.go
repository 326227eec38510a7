// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Aditya1156/DayPilot/internal/config"
	xglog "github.com/Aditya1156/DayPilot/internal/log"
	"github.com/Aditya1156/DayPilot/internal/version"
	"github.com/urfave/cli/v2"
)

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:        "signingcfg",
		Usage:       "resolve the DayPilot Android signing configuration",
		Version:     version.Version,
		HideVersion: true,
		Writer:      stdout,
		ErrWriter:   stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to YAML configuration file (default: ./" + config.DefaultConfigFile + " if present)",
				EnvVars: []string{config.EnvPrefix + "_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "project-root",
				Usage: "Android project directory; overrides config and environment",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (trace, debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "console",
				Usage: "human readable logs instead of JSON lines",
			},
		},
		Commands: []*cli.Command{
			resolveCommand(),
			validateCommand(),
			planCommand(),
			inspectCommand(),
			watchCommand(),
			versionCommand(),
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return usagef("unknown command %q", c.Args().First())
			}
			_ = cli.ShowAppHelp(c)
			return usagef("no command given")
		},
		OnUsageError:   onUsageError,
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func onUsageError(_ *cli.Context, err error, _ bool) error {
	return usageError{err: err}
}

// withConfig loads the effective configuration and hands it, plus a
// command-scoped logger in the context, to f.
func withConfig(f func(*cli.Context, config.Config) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		path, err := configPath(c)
		if err != nil {
			return err
		}

		loader := config.NewLoader(path, version.Version).Override(func(cfg *config.Config) {
			if v := strings.TrimSpace(c.String("project-root")); v != "" {
				cfg.ProjectRoot = v
			}
			if v := strings.TrimSpace(c.String("log-level")); v != "" {
				cfg.Log.Level = v
			}
			if c.Bool("console") {
				cfg.Log.Console = true
			}
		})
		cfg, err := loader.Load()
		if err != nil {
			return fmt.Errorf("configuration: %w", err)
		}

		xglog.Reconfigure(xglog.Config{
			Level:   cfg.Log.Level,
			Output:  c.App.ErrWriter,
			Console: cfg.Log.Console,
		})
		// run_id is added by WithComponentFromContext at each call site.
		cmdLogger := xglog.Base().With().Str(xglog.FieldCommand, c.Command.Name).Logger()
		c.Context = cmdLogger.WithContext(c.Context)
		logger := xglog.WithComponentFromContext(c.Context, "cli")

		logger.Debug().
			Str(xglog.FieldEvent, "config.loaded").
			Str(xglog.FieldProjectRoot, cfg.ProjectRoot).
			Str(xglog.FieldPolicy, string(cfg.MissingKeyPolicy)).
			Msg("configuration loaded")

		return f(c, cfg)
	}
}

// configPath returns the explicit --config value, or the default file in
// the working directory when it exists.
func configPath(c *cli.Context) (string, error) {
	if p := strings.TrimSpace(c.String("config")); p != "" {
		return p, nil
	}
	if _, err := os.Stat(config.DefaultConfigFile); err == nil {
		return config.DefaultConfigFile, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("stat %s: %w", config.DefaultConfigFile, err)
	}
	return "", nil
}
