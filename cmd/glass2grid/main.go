package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SourishSenapati/Team-Glass2Grid/config"
	"github.com/SourishSenapati/Team-Glass2Grid/internal/adapters/jsonfile"
	"github.com/SourishSenapati/Team-Glass2Grid/internal/adapters/notify"
	"github.com/SourishSenapati/Team-Glass2Grid/internal/adapters/storage"
	"github.com/SourishSenapati/Team-Glass2Grid/internal/application/runner"
	"github.com/SourishSenapati/Team-Glass2Grid/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	mode := flag.String("mode", "", "simulate|optimize|all (overrides config)")
	fidelity := flag.String("fidelity", "", "efficiency model: direct|propagation (overrides config)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print full tables (default: compact 1-line)")
	top := flag.Int("top", 10, "rows in the sweep ranking table")
	noStore := flag.Bool("no-store", false, "do not persist runs to SQLite")
	outDir := flag.String("out", "", "directory for JSON result files (overrides config)")
	history := flag.Duration("history", 0, "list runs started within this window and exit (e.g. 24h)")
	showSweep := flag.String("show", "", "reload a persisted sweep by run id and exit")
	spectrum := flag.Bool("spectrum", false, "log absorption/emission spectrum peaks of the configured material")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *fidelity != "" {
		cfg.Simulation.Fidelity = *fidelity
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	setupLogger(cfg.Log)

	slog.Info("glass2grid starting",
		"config", *configPath,
		"mode", cfg.Mode,
		"fidelity", cfg.Simulation.Fidelity,
		"store", !*noStore,
		"out", cfg.Output.Dir,
	)

	var store *storage.SQLiteStorage
	if !*noStore || *history > 0 || *showSweep != "" {
		store, err = storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer store.Close()
	}

	notifier := notify.NewConsole(*table, *top)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch {
	case *history > 0:
		if err := runHistory(ctx, store, notifier, *history); err != nil {
			slog.Error("history failed", "err", err)
			os.Exit(1)
		}
		return
	case *showSweep != "":
		if err := runShow(ctx, store, notifier, *showSweep); err != nil {
			slog.Error("show failed", "err", err, "run_id", *showSweep)
			os.Exit(1)
		}
		return
	}

	model, err := buildModel(cfg)
	if err != nil {
		slog.Error("invalid scenario configuration", "err", err)
		os.Exit(1)
	}
	if *spectrum {
		if err := logSpectrum(model); err != nil {
			slog.Warn("spectrum failed", "err", err)
		}
	}

	opt, grid, err := buildOptimizer(cfg)
	if err != nil {
		slog.Error("invalid sweep configuration", "err", err)
		os.Exit(1)
	}

	runMode, err := runner.ParseMode(cfg.Mode)
	if err != nil {
		slog.Error("invalid mode", "err", err)
		os.Exit(1)
	}

	writer, err := jsonfile.NewWriter(cfg.Output.Dir)
	if err != nil {
		slog.Error("failed to prepare output dir", "err", err, "dir", cfg.Output.Dir)
		os.Exit(1)
	}

	// Evita un ports.Storage no-nil que envuelve un *SQLiteStorage nil.
	var runStore ports.Storage
	if !*noStore {
		runStore = store
	}

	r := runner.New(runner.Config{Mode: runMode, Grid: grid}, model, opt, notifier, runStore, writer)
	if err := r.Run(ctx); err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}

	slog.Info("glass2grid finished cleanly")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
