// What's Cooking: a terminal recipe manager with a scripted cooking
// assistant.
//
// Usage:
//
//	whatscooking [--backend file|badger|memory] [--data-dir DIR] [--seed]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/whatscooking/internal/assistant"
	"github.com/hammamikhairi/whatscooking/internal/chime"
	"github.com/hammamikhairi/whatscooking/internal/config"
	"github.com/hammamikhairi/whatscooking/internal/conversation"
	"github.com/hammamikhairi/whatscooking/internal/display"
	"github.com/hammamikhairi/whatscooking/internal/domain"
	"github.com/hammamikhairi/whatscooking/internal/engine"
	"github.com/hammamikhairi/whatscooking/internal/logger"
	"github.com/hammamikhairi/whatscooking/internal/recipe"
	"github.com/hammamikhairi/whatscooking/internal/storage"
	"github.com/hammamikhairi/whatscooking/internal/timer"
)

// flags holds the command-line overrides. Only flags the user actually
// set replace config values.
type flags struct {
	configPath string
	dataDir    string
	backend    string
	logLevel   string
	logFile    string
	verbose    bool
	quiet      bool
	noChime    bool
	seed       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:           "whatscooking",
		Short:         "Manage your recipes and cook with a friendly assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			return runInteractive(cmd.Context(), cfg)
		},
	}

	fl := root.Flags()
	fl.StringVar(&f.configPath, "config", "", "config file (default "+config.DefaultPath+")")
	fl.StringVar(&f.dataDir, "data-dir", "", "directory for the recipe store")
	fl.StringVar(&f.backend, "backend", "", "storage backend: file, badger or memory")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: off, normal or verbose")
	fl.StringVar(&f.logFile, "log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	fl.BoolVar(&f.verbose, "verbose", false, "enable verbose/debug logging")
	fl.BoolVar(&f.quiet, "quiet", false, "disable all logging")
	fl.BoolVar(&f.noChime, "no-chime", false, "don't play a sound when a timer finishes")
	fl.BoolVar(&f.seed, "seed", false, "add sample recipes when the cookbook is empty")

	return root
}

// resolveConfig layers .env, the config file, the environment and the
// flags the user set.
func resolveConfig(cmd *cobra.Command, f flags) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}

	changed := cmd.Flags().Changed
	if changed("data-dir") {
		cfg.DataDir = f.dataDir
	}
	if changed("backend") {
		cfg.Backend = f.backend
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if f.verbose {
		cfg.LogLevel = "verbose"
	}
	if f.quiet {
		cfg.LogLevel = "off"
	}
	if f.noChime {
		cfg.Chime = false
	}
	if f.seed {
		cfg.Seed = true
	}
	return cfg, cfg.Validate()
}

// openLog directs logs to a file by default so the REPL stays clean.
func openLog(path string) (io.Writer, func()) {
	if path == "" || path == "stderr" {
		return os.Stderr, func() {}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return os.Stderr, func() {}
	}
	return f, func() { f.Close() }
}

// openBlobs builds the configured blob store. The close func is never nil.
func openBlobs(cfg config.Config, log *logger.Logger) (domain.BlobStore, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemoryStore(log), func() {}, nil
	case config.BackendBadger:
		db, err := storage.OpenBadger(filepath.Join(cfg.DataDir, "badger"), log)
		if err != nil {
			return nil, nil, err
		}
		return db, func() {
			if err := db.Close(); err != nil {
				log.Error("closing badger: %v", err)
			}
		}, nil
	default:
		fs, err := storage.NewFileStore(cfg.DataDir, log)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}
}

// setupLog builds the app logger and points Go's default log package at
// the same output so third-party chatter doesn't spam the terminal.
func setupLog(cfg config.Config) (*logger.Logger, func()) {
	out, closeLog := openLog(cfg.LogFile)
	stdlog.SetOutput(out)
	stdlog.SetFlags(stdlog.Ltime)
	return logger.New(logger.ParseLevel(cfg.LogLevel), out), closeLog
}

// openStore opens the configured backend and loads the recipe store. The
// returned cleanup flushes pending writes.
func openStore(ctx context.Context, cfg config.Config, log *logger.Logger, opts ...recipe.Option) (*recipe.Store, func(), error) {
	blobs, closeBlobs, err := openBlobs(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s store: %w", cfg.Backend, err)
	}

	store := recipe.NewStore(blobs, log, opts...)
	if err := store.Load(ctx); err != nil {
		// Advisory only: the session continues with an empty cookbook.
		log.Warn("%v", err)
	}
	if cfg.Seed {
		if n := recipe.Seed(store); n > 0 {
			log.Info("seeded %d sample recipes", n)
		}
	}

	return store, func() {
		store.Flush()
		closeBlobs()
	}, nil
}

func runInteractive(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt)
	defer cancel()

	log, closeLog := setupLog(cfg)
	defer closeLog()

	// The status bar reads the supervisor and the store, which are
	// created after the UI; both are set before ui.Run starts ticking.
	var (
		supervisor *timer.Supervisor
		store      *recipe.Store
	)
	ui := display.NewUI(
		func() []timer.Timer { return supervisor.Snapshot() },
		func() error { return store.Err() },
	)
	notifier := conversation.NewCLINotifier(log, ui)

	store, cleanup, err := openStore(ctx, cfg, log, recipe.WithErrorHandler(func(err error) {
		notifier.NotifyUrgent(ctx, err.Error())
	}))
	if err != nil {
		return err
	}
	defer cleanup()

	var chimer domain.Chimer = chime.NewSilent(log)
	if cfg.Chime {
		player, err := chime.NewPlayer(log)
		if err != nil {
			log.Warn("chime disabled: %v", err)
		} else {
			chimer = player
		}
	}

	supervisor = timer.New(notifier, chimer, log)
	supervisor.Start(ctx)
	defer supervisor.Stop()

	eng := engine.New(store, assistant.New(store, log), supervisor, log)
	app := newCLIApp(eng, conversation.NewKeywordParser(log), ui, log)

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal; blocks until quit.
	if err := ui.Run(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("display: %v", err)
	}
	cancel()
	return nil
}
