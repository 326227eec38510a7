// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Aditya1156/DayPilot/internal/buildconfig"
	"github.com/Aditya1156/DayPilot/internal/config"
	xglog "github.com/Aditya1156/DayPilot/internal/log"
	"github.com/Aditya1156/DayPilot/internal/signing"
	"github.com/Aditya1156/DayPilot/internal/version"
	"github.com/Aditya1156/DayPilot/internal/watch"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var (
	errFallbackRelease = errors.New("release variant would be signed with the debug identity")
	errWatchStopped    = errors.New("credential watcher stopped unexpectedly")
)

func formatFlag(value string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "output format",
		Value:   value,
	}
}

func revealFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "reveal",
		Usage: "print passwords instead of masking them",
	}
}

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "print the identity the release variant would be signed with",
		Flags: []cli.Flag{formatFlag("text"), revealFlag()},
		Action: withConfig(func(c *cli.Context, cfg config.Config) error {
			format := c.String("format")
			if format != "text" {
				if _, err := buildconfig.ParseFormat(format); err != nil {
					return usageError{err: err}
				}
			}

			res, err := cfg.Resolver().Resolve(c.Context)
			if err != nil {
				return err
			}
			return printResolution(c.App.Writer, res, format, c.Bool("reveal"))
		}),
		OnUsageError: onUsageError,
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "check the configuration, the credential file and the keystore",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "skip-keystore",
				Usage: "do not require the resolved keystore to exist",
			},
			&cli.BoolFlag{
				Name:  "require-release",
				Usage: "fail when the release variant would fall back to the debug identity",
			},
		},
		Action: withConfig(func(c *cli.Context, cfg config.Config) error {
			logger := xglog.WithComponentFromContext(c.Context, "cli")

			res, err := cfg.Resolver().Resolve(c.Context)
			if err != nil {
				return err
			}
			if c.Bool("require-release") && res.Identity.IsFallback() {
				return fmt.Errorf("%w (%s: %s)", errFallbackRelease, res.State, res.Source)
			}
			if !c.Bool("skip-keystore") {
				if err := signing.CheckKeystore(res.Identity); err != nil {
					return err
				}
			}

			logger.Info().
				Str(xglog.FieldEvent, "validate.ok").
				Str(xglog.FieldIdentity, res.Identity.Name).
				Msg("signing configuration is valid")
			fmt.Fprintf(c.App.Writer, "✓ signing configuration is valid (release signed with %s identity)\n", res.Identity.Name)
			return nil
		}),
		OnUsageError: onUsageError,
	}
}

func planCommand() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "export the resolved build plan",
		Flags: []cli.Flag{
			formatFlag(string(buildconfig.FormatJSON)),
			revealFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the plan atomically to this file instead of stdout",
			},
		},
		Action: withConfig(func(c *cli.Context, cfg config.Config) error {
			format, err := buildconfig.ParseFormat(c.String("format"))
			if err != nil {
				return usageError{err: err}
			}

			plan, err := buildconfig.BuildPlan(c.Context, cfg.App, cfg.Resolver())
			if err != nil {
				return err
			}
			if !c.Bool("reveal") {
				plan = plan.Redacted()
			}

			if out := c.String("output"); out != "" {
				if err := buildconfig.WritePlan(c.Context, out, plan, format); err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "wrote build plan to %s\n", out)
				return nil
			}
			return buildconfig.Encode(c.App.Writer, plan, format)
		}),
		OnUsageError: onUsageError,
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "dump the effective configuration and credential file with secrets masked",
		Flags: []cli.Flag{formatFlag(string(buildconfig.FormatYAML))},
		Action: withConfig(func(c *cli.Context, cfg config.Config) error {
			format, err := buildconfig.ParseFormat(c.String("format"))
			if err != nil {
				return usageError{err: err}
			}

			resolver := cfg.Resolver()
			src, err := signing.LoadSource(resolver.PropertiesFile())
			if err != nil {
				return err
			}

			view := map[string]any{
				"config":        config.MaskSecrets(cfg),
				"keyProperties": nil,
				"source":        src.Location(),
			}
			if p, ok := src.(signing.Present); ok {
				view["keyProperties"] = config.MaskSecrets(p.Properties)
				view["missing"] = p.Missing()
			}
			return buildconfig.Encode(c.App.Writer, view, format)
		}),
		OnUsageError: onUsageError,
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "re-resolve whenever the credential file changes",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Usage: "quiet period before re-resolving",
				Value: watch.DefaultDebounce,
			},
		},
		Action: withConfig(func(c *cli.Context, cfg config.Config) error {
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			resolver := cfg.Resolver()
			initial, err := resolver.Resolve(ctx)
			if err != nil {
				return err
			}
			if err := printResolution(c.App.Writer, initial, "text", false); err != nil {
				return err
			}

			holder := watch.NewHolder(resolver, initial)
			holder.Debounce = c.Duration("debounce")
			changes := make(chan signing.Resolution, 8)
			holder.RegisterListener(changes)

			if err := holder.StartWatcher(ctx); err != nil {
				return err
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				<-holder.Done()
				if ctx.Err() == nil {
					return errWatchStopped
				}
				return nil
			})
			g.Go(func() error {
				return printChanges(gctx, c.App.Writer, holder.Done(), changes)
			})
			return g.Wait()
		}),
		OnUsageError: onUsageError,
	}
}

// printChanges prints each resolution from changes until ctx is done or the
// watch loop exits.
func printChanges(ctx context.Context, w io.Writer, done <-chan struct{}, changes <-chan signing.Resolution) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return nil
		case res := <-changes:
			if err := printResolution(w, res, "text", false); err != nil {
				return err
			}
		}
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print version information",
		Action: func(c *cli.Context) error {
			_, err := fmt.Fprintln(c.App.Writer, version.String())
			return err
		},
	}
}
