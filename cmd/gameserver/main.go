// Package main provides the game server binary that serves the PetSteps
// HTTP API.
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/petsteps/internal/api"
	"github.com/cory-johannsen/petsteps/internal/config"
	"github.com/cory-johannsen/petsteps/internal/game/battle"
	"github.com/cory-johannsen/petsteps/internal/game/dice"
	"github.com/cory-johannsen/petsteps/internal/gameserver"
	"github.com/cory-johannsen/petsteps/internal/observability"
	"github.com/cory-johannsen/petsteps/internal/pkg/clock"
	"github.com/cory-johannsen/petsteps/internal/pkg/idgen"
	"github.com/cory-johannsen/petsteps/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, zap.String("service", cfg.Server.Name))
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting game server",
		zap.String("http_addr", cfg.HTTP.Addr()),
		zap.String("backend", cfg.Storage.Backend),
	)

	roster, err := battle.LoadRoster(cfg.Game.RosterPath)
	if err != nil {
		logger.Fatal("loading opponent roster", zap.Error(err))
	}
	logger.Info("opponent roster loaded",
		zap.String("path", cfg.Game.RosterPath),
		zap.Int("opponents", len(roster.All())),
	)

	var src dice.Source
	switch cfg.Game.DiceSource {
	case config.DiceSeeded:
		src = dice.NewSeededSource(cfg.Game.Seed)
		logger.Warn("using seeded dice", zap.Uint64("seed", cfg.Game.Seed))
	default:
		src = dice.NewCryptoSource()
	}

	clk := clock.New()
	lifecycle := server.NewLifecycle(logger)

	stores, err := openStores(ctx, cfg, clk, logger)
	if err != nil {
		logger.Fatal("opening storage", zap.Error(err))
	}
	if stores.service != nil {
		lifecycle.Add(cfg.Storage.Backend, stores.service)
	}

	svc, err := gameserver.New(&gameserver.Config{
		Saves:   stores.saves,
		Battles: stores.battles,
		Roster:  roster,
		Clock:   clk,
		Dice:    dice.NewLoggedSource(src, logger),
		IDs:     idgen.NewUUID("pet"),
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("creating game service", zap.Error(err))
	}

	router, err := api.NewRouter(&api.Config{
		Service:        svc,
		Accounts:       stores.accounts,
		Logger:         logger,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})
	if err != nil {
		logger.Fatal("creating router", zap.Error(err))
	}

	ln, err := net.Listen("tcp", cfg.HTTP.Addr())
	if err != nil {
		logger.Fatal("listening", zap.String("addr", cfg.HTTP.Addr()), zap.Error(err))
	}
	httpServer := &http.Server{
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	lifecycle.Add("http", server.NewHTTPService(httpServer, ln, cfg.Server.ShutdownTimeout, logger))

	logger.Info("game server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("http_addr", ln.Addr().String()),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
