package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/finnb0y/virtualchips/internal/engine"
	"github.com/finnb0y/virtualchips/internal/scheduler"
	"github.com/finnb0y/virtualchips/internal/server"
	"github.com/finnb0y/virtualchips/internal/state"
	"github.com/finnb0y/virtualchips/internal/store"
)

type ServeCmd struct {
	Config     string `short:"c" default:"virtualchips.hcl" help:"Path to HCL configuration file"`
	Addr       string `short:"a" help:"Server address to bind to (overrides config)"`
	LogLevel   string `short:"l" help:"Log level (overrides config)"`
	DealerCode string `help:"Dealer access code for the bootstrap table (generated when empty)"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg.Server.LogLevel)
	logger.Info("Starting virtualchips server",
		"addr", cfg.ListenAddress(),
		"tournament", cfg.Tournament.Name,
		"levels", len(cfg.Tournament.Levels))

	st, err := newStore(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.New()
	snapshot, err := loadOrBootstrap(ctx, st, eng, cfg, c.DealerCode, logger)
	if err != nil {
		return err
	}

	dispatcher := server.NewDispatcher(eng, st, logger, snapshot)
	wsServer := server.NewServer(cfg.ListenAddress(), logger, dispatcher)
	blinds := scheduler.New(quartz.NewReal(), logger, dispatcher.Snapshot, func(m engine.Message) bool {
		res, err := dispatcher.Submit(ctx, m)
		return err == nil && res.Applied
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return dispatcher.Run(ctx) })
	g.Go(func() error { return blinds.Run(ctx) })
	g.Go(wsServer.Start)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		return wsServer.Stop()
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newLogger(level string) *log.Logger {
	logger := log.New(os.Stderr)
	switch level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

func newStore(cfg *server.Config) (store.Store, error) {
	if cfg.Server.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Server.RedisAddr})
		return store.NewRedis(&store.RedisConfig{
			Client:       client,
			TournamentID: cfg.Tournament.Name,
		})
	}
	return store.NewFile(cfg.Server.SnapshotPath)
}

// loadOrBootstrap restores the persisted snapshot, or creates a fresh
// tournament with one table when none exists yet.
func loadOrBootstrap(ctx context.Context, st store.Store, eng *engine.Engine, cfg *server.Config, dealerCode string, logger *log.Logger) (*state.State, error) {
	snapshot, err := st.Load(ctx)
	if err == nil {
		logger.Info("Restored snapshot",
			"players", len(snapshot.Players), "tables", len(snapshot.Tables))
		return snapshot, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("error loading snapshot: %w", err)
	}

	if dealerCode == "" {
		dealerCode = uuid.NewString()[:8]
	}
	snapshot = state.NewState(cfg.NewTournament(uuid.NewString()))
	snapshot, res := eng.Apply(snapshot, engine.Message{
		SenderID: "bootstrap",
		Action:   engine.CreateTable{DealerAccessCode: dealerCode},
	})
	if !res.Applied {
		return nil, fmt.Errorf("failed to create bootstrap table: %s", res.Reason)
	}
	if err := st.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("error persisting bootstrap snapshot: %w", err)
	}

	logger.Info("Created new tournament",
		"name", cfg.Tournament.Name, "dealerCode", dealerCode)
	return snapshot, nil
}
