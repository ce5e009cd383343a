package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/verdantloop/chronogarden/internal/advisor"
	"github.com/verdantloop/chronogarden/internal/catalog"
	"github.com/verdantloop/chronogarden/internal/config"
	"github.com/verdantloop/chronogarden/internal/domain"
	"github.com/verdantloop/chronogarden/internal/engine"
	"github.com/verdantloop/chronogarden/internal/event"
	"github.com/verdantloop/chronogarden/internal/leaderboard"
	"github.com/verdantloop/chronogarden/internal/logger"
	"github.com/verdantloop/chronogarden/internal/market"
	"github.com/verdantloop/chronogarden/internal/persistence"
	"github.com/verdantloop/chronogarden/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var slot string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the garden server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(slot)
		},
	}
	cmd.Flags().StringVar(&slot, "slot", persistence.DefaultSlot, "save slot to resume from and autosave to")
	return cmd
}

func runServe(slot string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, "chronogarden", version, "prod", false))
	log := slog.Default()

	cat, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		log.Warn("Catalog directory unusable, using built-in content", "dir", cfg.CatalogDir, "error", err)
		cat = catalog.Default()
	}

	store, err := persistence.Open(cfg.SaveDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	bus := event.NewMemoryBus()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var eng *engine.Engine
	if state, err := store.Load(ctx, slot); err == nil {
		eng = engine.NewFromSnapshot(cat, bus, state)
		log.Info("Resumed garden from save", "slot", slot, "player", state.PlayerName)
	} else if errors.Is(err, domain.ErrSnapshotNotFound) {
		eng = engine.New(cat, bus, cfg.PlayerName, cfg.GardenName)
		log.Info("Started fresh garden", "player", cfg.PlayerName)
	} else {
		return err
	}

	playerID := uuid.NewString()
	marketSvc := market.NewClient(cfg.MarketURL, playerID)
	leaderboardSvc := leaderboard.NewClient(cfg.LeaderboardURL, playerID)
	advisorSvc := advisor.NewClient(cfg.AdvisorURL)

	srv := server.NewServer(cfg.Port, eng, store, marketSvc, leaderboardSvc, advisorSvc, bus)

	go runTickers(ctx, eng, store, leaderboardSvc, slot, cfg.VisitorCheckInterval)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// Final autosave so an in-flight session survives restarts.
	if err := store.Save(shutdownCtx, slot, eng.Snapshot()); err != nil {
		log.Error("Final save failed", "slot", slot, "error", err)
	}
	return nil
}

// runTickers drives the engine's time-based triggers: upkeep ticks, visitor
// spawn checks, periodic autosave, and leaderboard pushes. The engine never
// schedules anything itself.
func runTickers(
	ctx context.Context,
	eng *engine.Engine,
	store *persistence.Store,
	leaderboardSvc *leaderboard.Client,
	slot string,
	visitorInterval time.Duration,
) {
	log := slog.Default()

	tick := time.NewTicker(time.Minute)
	visitor := time.NewTicker(visitorInterval)
	autosave := time.NewTicker(5 * time.Minute)
	defer tick.Stop()
	defer visitor.Stop()
	defer autosave.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			eng.Apply(ctx, engine.Tick{})
		case <-visitor.C:
			res := eng.Apply(ctx, engine.CheckVisitorSpawn{})
			if res.OK() {
				log.Info("A visitor arrived", "visitor", eng.Snapshot().CurrentVisitor)
			}
		case <-autosave.C:
			if err := store.Save(ctx, slot, eng.Snapshot()); err != nil {
				log.Error("Autosave failed", "slot", slot, "error", err)
			}
			if leaderboardSvc.Enabled() {
				if err := leaderboardSvc.Push(ctx, eng.Snapshot()); err != nil {
					log.Warn("Leaderboard push failed", "error", err)
				}
			}
		}
	}
}
