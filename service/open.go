package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rustyeddy/ledger/config"
	"github.com/rustyeddy/ledger/market"
	"github.com/rustyeddy/ledger/reflection"
	"github.com/rustyeddy/ledger/store"
)

// Open builds a Ledger from cfg: the SQLite journal at cfg.Store.DBPath,
// the instrument table with cfg.Instruments applied and the configured
// prompt state backend. The returned close func releases the database and
// any redis client.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Ledger, func() error, error) {
	if log == nil {
		log = zap.NewNop()
	}

	registry, err := market.NewRegistry(cfg.Instruments)
	if err != nil {
		return nil, nil, fmt.Errorf("instruments: %w", err)
	}

	db, err := store.Open(cfg.Store.DBPath)
	if err != nil {
		return nil, nil, err
	}
	closers := []func() error{db.Close}
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	var ps reflection.StateStore
	switch cfg.PromptState.Backend {
	case "memory":
		ps = reflection.NewMemoryStore()
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.PromptState.RedisAddr,
			Password: cfg.PromptState.RedisPassword,
			DB:       cfg.PromptState.RedisDB,
		})
		closers = append(closers, client.Close)

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			_ = closeAll()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.PromptState.RedisAddr, err)
		}
		ps = reflection.NewRedisStore(client, cfg.PromptState.RedisKeyPrefix, cfg.Account.ID)
	default:
		ps = db.PromptStateStore(cfg.Account.ID)
	}

	l, err := New(Options{
		Store:           db,
		PromptState:     ps,
		Registry:        registry,
		StartingBalance: decimal.NewFromFloat(cfg.Account.StartingBalance),
		Logger:          log,
	})
	if err != nil {
		_ = closeAll()
		return nil, nil, err
	}

	log.Info("ledger opened",
		zap.String("db", cfg.Store.DBPath),
		zap.String("prompt_state", cfg.PromptState.Backend),
		zap.String("account", cfg.Account.ID),
	)
	return l, closeAll, nil
}
