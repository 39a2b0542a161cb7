// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/bureau-foundation/carousel/lib/catalog"
	"github.com/bureau-foundation/carousel/lib/cli"
	"github.com/bureau-foundation/carousel/lib/config"
	"github.com/bureau-foundation/carousel/lib/query"
	"github.com/bureau-foundation/carousel/lib/version"
)

// commandTimeout bounds one command's catalog load and queries.
const commandTimeout = time.Minute

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath  string
	catalogPath string
	dsn         string
	jsonOutput  bool
	verbose     bool
}

func newRootCommand() *cobra.Command {
	options := &globalOptions{}

	root := &cobra.Command{
		Use:           "carousel",
		Short:         "Inspect and search the carousel catalog",
		Version:       version.Info(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&options.configPath, "config", "", "path to config file (default: $"+config.EnvironmentVariable+")")
	flags.StringVar(&options.catalogPath, cli.CatalogFlag, "", "catalog file to read")
	flags.StringVar(&options.dsn, cli.DSNFlag, "", "Postgres connection string")
	flags.BoolVar(&options.jsonOutput, "json", false, "write JSON instead of text")
	flags.BoolVarP(&options.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		groupsCommand(options),
		searchCommand(options),
		topCommand(options),
		exportCommand(options),
		initDBCommand(options),
	)
	return root
}

// loadConfig reads the config file and applies the persistent flags
// that were set explicitly.
func (options *globalOptions) loadConfig(command *cobra.Command) (*config.Config, error) {
	cfg, err := cli.LoadConfig(options.configPath)
	if err != nil {
		return nil, err
	}
	cli.ApplyCatalogFlags(&cfg.Catalog, command.Flags(), options.catalogPath, options.dsn)
	// One-shot commands never watch.
	cfg.Catalog.Watch = false
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("%w", err)
	}
	return cfg, nil
}

func (options *globalOptions) logger(cfg *config.Config) *slog.Logger {
	// loadConfig ran Validate, which rejects an unparseable log.level.
	level, _ := cfg.Log.SlogLevel()
	if options.verbose {
		level = slog.LevelDebug
	}
	return cli.NewCommandLogger(level)
}

// session is a loaded catalog plus a running query engine.
type session struct {
	store  *catalog.Store
	engine *query.Engine
	logger *slog.Logger
	close  func()
}

// openSession loads the catalog selected by the flags and config and
// starts a query engine over it. A catalog that cannot be loaded is an
// Unavailable error.
func (options *globalOptions) openSession(ctx context.Context, command *cobra.Command) (*session, error) {
	cfg, err := options.loadConfig(command)
	if err != nil {
		return nil, err
	}
	logger := options.logger(cfg).With("command", command.Name())

	source, closeSource, err := cli.OpenSource(ctx, cfg.Catalog)
	if err != nil {
		return nil, err
	}

	store := catalog.NewStore(source, logger)
	if _, err := store.Initialize(ctx); err != nil {
		store.Close()
		closeSource()
		return nil, cli.Unavailable("%w", err)
	}

	engine := query.NewEngine(store, logger)
	engineContext, cancelEngine := context.WithCancel(context.Background())
	engineDone := make(chan struct{})
	go func() {
		defer close(engineDone)
		engine.Run(engineContext)
	}()

	return &session{
		store:  store,
		engine: engine,
		logger: logger,
		close: func() {
			cancelEngine()
			<-engineDone
			store.Close()
			closeSource()
		},
	}, nil
}

// search sets the query and waits for the state that reflects it.
// Sync alone is not enough: the engine may not have received the
// loaded snapshot yet when it applies the query.
func (session *session) search(ctx context.Context, text string) (query.State, error) {
	states := session.engine.Subscribe()
	defer session.engine.Unsubscribe(states)

	session.engine.SetQuery(text)
	for {
		select {
		case state, ok := <-states:
			if !ok {
				return query.State{}, cli.Internal("%w", query.ErrStopped)
			}
			if state.Query == text && state.Catalog != catalog.StatusPending {
				return state, nil
			}
		case <-ctx.Done():
			return query.State{}, cli.Unavailable("waiting for search results: %w", ctx.Err())
		}
	}
}

// topCharacters asks the engine for the most frequent characters of
// items and waits for the answer.
func (session *session) topCharacters(ctx context.Context, items []catalog.Item) ([]query.CharacterCount, error) {
	results := session.engine.SubscribeTopCharacters()
	defer session.engine.UnsubscribeTopCharacters(results)

	session.engine.RequestTopCharacters(items)
	select {
	case counts, ok := <-results:
		if !ok {
			return nil, cli.Internal("%w", query.ErrStopped)
		}
		return counts, nil
	case <-ctx.Done():
		return nil, cli.Unavailable("waiting for character counts: %w", ctx.Err())
	}
}

// commandContext returns the command's context bounded by
// commandTimeout.
func commandContext(command *cobra.Command) (context.Context, context.CancelFunc) {
	parent := command.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, commandTimeout)
}
