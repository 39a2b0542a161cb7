// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// carousel-viewer is the interactive screen: a carousel of image
// groups above a searchable list of their items, with a bottom sheet
// listing the current matches.
//
// The catalog comes from the built-in dummy data, a catalog file
// (optionally watched for changes), or Postgres, chosen by flags or
// the config file. Background warnings appear in the status bar; the
// full log can be written to a JSON file with --log-output.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/carousel/lib/catalog"
	"github.com/bureau-foundation/carousel/lib/cli"
	"github.com/bureau-foundation/carousel/lib/config"
	"github.com/bureau-foundation/carousel/lib/query"
	"github.com/bureau-foundation/carousel/lib/version"
	"github.com/bureau-foundation/carousel/lib/viewer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}

// viewerFlags holds command-line overrides. A flag only replaces the
// config value when it was set explicitly.
type viewerFlags struct {
	configPath   string
	catalogPath  string
	dsn          string
	watch        bool
	initialQuery string
	logOutput    string
	noColor      bool
}

func run() error {
	var flags viewerFlags

	flagSet := newFlagSet(&flags)

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Fprint(os.Stdout, "carousel-viewer")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return cli.Validation("%w", err)
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return cli.Validation("unexpected argument: %s", args[0])
	}

	cfg, err := cli.LoadConfig(flags.configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg, flagSet, &flags)
	if err := cfg.Validate(); err != nil {
		return cli.Validation("%w", err)
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return cli.Validation("%w", err)
	}

	if flags.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// stderr belongs to the alt screen while the program runs, so
	// background records go to the status bar and optionally a file.
	tuiHandler := viewer.NewTUILogHandler(max(level, slog.LevelWarn))
	var logger *slog.Logger
	if cfg.Log.Output != "" {
		fileHandler, closeFile, err := cli.OpenFileLogHandler(cfg.Log.Output)
		if err != nil {
			return cli.Validation("cannot open log file %s: %w", cfg.Log.Output, err)
		}
		defer closeFile()
		logger = slog.New(cli.FanoutHandler{tuiHandler, fileHandler})
	} else {
		logger = slog.New(tuiHandler)
	}

	source, closeSource, err := cli.OpenSource(ctx, cfg.Catalog)
	if err != nil {
		return err
	}
	defer closeSource()

	store := catalog.NewStore(source, logger.With("component", "catalog"))
	defer store.Close()

	engine := query.NewEngine(store, logger.With("component", "query"))
	engineDone := make(chan struct{})
	go func() {
		defer close(engineDone)
		engine.Run(ctx)
	}()
	defer func() {
		cancel()
		<-engineDone
	}()

	if cfg.Catalog.Watch {
		stopWatch, err := catalog.WatchFile(ctx, cfg.Catalog.Path, store, logger.With("component", "watch"))
		if err != nil {
			return cli.Validation("cannot watch %s: %w", cfg.Catalog.Path, err)
		}
		defer stopWatch()
	}

	model := viewer.NewModel(engine, store, viewer.Options{
		InitialQuery: cfg.Viewer.InitialQuery,
		SheetTitle:   cfg.Viewer.SheetTitle,
		Logger:       logger.With("component", "viewer"),
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	return err
}

// newFlagSet declares the viewer's flags, bound to flags.
func newFlagSet(flags *viewerFlags) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("carousel-viewer", pflag.ContinueOnError)
	flagSet.StringVar(&flags.configPath, "config", "", "path to config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&flags.catalogPath, cli.CatalogFlag, "", "catalog file (.json, .jsonc, .jsonl, .yaml, .cbor, optionally .zst or .lz4)")
	flagSet.StringVar(&flags.dsn, cli.DSNFlag, "", "Postgres connection string to load the catalog from")
	flagSet.BoolVar(&flags.watch, "watch", false, "reload the catalog file when it changes")
	flagSet.StringVar(&flags.initialQuery, "query", "", "initial search text")
	flagSet.StringVar(&flags.logOutput, "log-output", "", "write JSON log records to this file (in addition to TUI display)")
	flagSet.BoolVar(&flags.noColor, "no-color", false, "render without colors")
	flagSet.BoolP("help", "h", false, "show help")
	return flagSet
}

// applyFlags copies explicitly set flags over the loaded config.
func applyFlags(cfg *config.Config, flagSet *pflag.FlagSet, flags *viewerFlags) {
	cli.ApplyCatalogFlags(&cfg.Catalog, flagSet, flags.catalogPath, flags.dsn)
	if flagSet.Changed("watch") {
		cfg.Catalog.Watch = flags.watch
	}
	if flagSet.Changed("query") {
		cfg.Viewer.InitialQuery = flags.initialQuery
	}
	if flagSet.Changed("log-output") {
		cfg.Log.Output = flags.logOutput
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Carousel viewer: browse image groups and search their items.

Without a catalog flag or config, shows the built-in dummy catalog.

Usage:
  carousel-viewer [flags]

Examples:
  # Browse a catalog file and reload it on change
  carousel-viewer --catalog items.yaml --watch

  # Start with a search already applied
  carousel-viewer --query "title 2"

  # Load from Postgres (see 'carousel init-db')
  carousel-viewer --dsn postgres://localhost/carousel

Keys:
  /        search          m        more options (bottom sheet)
  j/k      move            h/l      scroll the carousel
  esc      clear search    r        retry a failed load
  q        quit

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
