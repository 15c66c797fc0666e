package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/linkarena/internal/config"
	"github.com/udisondev/linkarena/internal/data"
	"github.com/udisondev/linkarena/internal/db"
	"github.com/udisondev/linkarena/internal/game/arena"
	"github.com/udisondev/linkarena/internal/game/combat"
	"github.com/udisondev/linkarena/internal/game/matchmaking"
	"github.com/udisondev/linkarena/internal/scripting"
)

const ConfigPath = "config/arenaserver.yaml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config first to determine log level
	cfgPath := config.Path(ConfigPath)
	cfg, err := config.LoadArenaServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logLevel, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	slog.Info("arena server starting", "config", cfgPath, "log_level", cfg.LogLevel, "persist", cfg.Persist)

	cat, err := data.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	slog.Info("catalog loaded", "path", cfg.CatalogPath, "formats", cat.Formats())

	scripts, err := scripting.LoadDir(cfg.ScriptsDir)
	if err != nil {
		return fmt.Errorf("loading scripts: %w", err)
	}
	defer scripts.Close()
	for _, fn := range cat.ScriptRefs() {
		if !scripts.Has(fn) {
			return fmt.Errorf("catalog skill calls lua function %q, not defined in %q", fn, cfg.ScriptsDir)
		}
	}

	var seq atomic.Uint64
	opts := []arena.Option{
		arena.WithScripts(scripts),
		arena.WithTeardownDelay(cfg.Matchmaking.TeardownDelay),
		arena.WithRNG(func() combat.RNG {
			if cfg.RNGSeed == 0 {
				return combat.NewRNG(0)
			}
			return combat.NewRNG(cfg.RNGSeed + seq.Add(1))
		}),
	}

	var pool matchmaking.RequestPool = matchmaking.NewMemoryPool()
	if cfg.Persist {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if _, err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		pool = db.NewMatchRequestRepository(database.Pool())
		opts = append(opts, arena.WithJournal(db.NewArenaRepository(database.Pool())))
	}

	svc := arena.NewService(cat, arena.NewStore(), opts...)
	reaper := matchmaking.NewReaper(svc, cfg.Matchmaking.ReaperInterval)
	svc.SetScheduler(reaper)
	worker := matchmaking.NewWorker(pool, svc, cfg.Matchmaking.Interval)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting matchmaking worker", "interval", cfg.Matchmaking.Interval)
		worker.Start(gctx)
		<-gctx.Done()
		worker.Stop()
		slog.Info("matchmaking worker stopped")
		return nil
	})

	g.Go(func() error {
		slog.Info("starting arena reaper", "interval", cfg.Matchmaking.ReaperInterval, "delay", cfg.Matchmaking.TeardownDelay)
		reaper.Start(gctx)
		<-gctx.Done()
		reaper.Stop()
		slog.Info("arena reaper stopped", "pending", reaper.Pending())
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("arena server stopped")
	return nil
}
