package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/petsteps/internal/config"
	"github.com/cory-johannsen/petsteps/internal/pkg/clock"
	"github.com/cory-johannsen/petsteps/internal/server"
	"github.com/cory-johannsen/petsteps/internal/storage"
	"github.com/cory-johannsen/petsteps/internal/storage/memory"
	"github.com/cory-johannsen/petsteps/internal/storage/postgres"
	redisstore "github.com/cory-johannsen/petsteps/internal/storage/redis"
)

const healthInterval = 30 * time.Second

// stores bundles the persistence contracts of one backend. service, when
// non-nil, owns the backend's connections for the process lifetime.
type stores struct {
	saves    storage.SaveStore
	battles  storage.BattleRecorder
	accounts storage.AccountStore
	service  server.Service
}

// openStores connects the backend selected by cfg.Storage.Backend.
func openStores(ctx context.Context, cfg config.Config, clk clock.Clock, logger *zap.Logger) (stores, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		dbStart := time.Now()
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return stores{}, fmt.Errorf("connecting to database: %w", err)
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
		return stores{
			saves:    db.Saves,
			battles:  db.Battles,
			accounts: db.Accounts,
			service:  healthService(logger, "database", db.Ping, db.Close),
		}, nil

	case config.BackendRedis:
		client := redisstore.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return stores{}, fmt.Errorf("connecting to redis: %w", err)
		}
		store, err := redisstore.New(&redisstore.Config{Client: client, Clock: clk, KeyPrefix: cfg.Redis.KeyPrefix})
		if err != nil {
			_ = client.Close()
			return stores{}, err
		}
		logger.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
		return stores{
			saves:    store,
			battles:  store,
			accounts: store,
			service: healthService(logger, "redis", func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			}, func() { _ = client.Close() }),
		}, nil

	case config.BackendMemory:
		logger.Warn("using in-memory storage; state is lost on exit")
		store := memory.New(clk)
		return stores{saves: store, battles: store, accounts: store}, nil

	default:
		return stores{}, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// healthService pings a backend every healthInterval until stopped, then
// runs closeFn.
func healthService(logger *zap.Logger, name string, ping func(context.Context) error, closeFn func()) server.Service {
	done := make(chan struct{})
	return &server.FuncService{
		StartFn: func() error {
			ticker := time.NewTicker(healthInterval)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return nil
				case <-ticker.C:
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					if err := ping(ctx); err != nil {
						logger.Warn("health check failed", zap.String("backend", name), zap.Error(err))
					}
					cancel()
				}
			}
		},
		StopFn: func() {
			close(done)
			closeFn()
		},
	}
}
