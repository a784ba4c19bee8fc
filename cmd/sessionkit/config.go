package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/sessionkit/pkg/chunk"
	"github.com/dmitrymomot/sessionkit/pkg/codec"
	"github.com/dmitrymomot/sessionkit/pkg/config"
	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/replay"
	"github.com/dmitrymomot/sessionkit/pkg/session"
	"github.com/dmitrymomot/sessionkit/pkg/transaction"
)

// appConfig is every package config, read from one environment.
type appConfig struct {
	Addr string `env:"DEMO_ADDR" envDefault:":8080"`

	Log         logger.Config
	Codec       codec.Config
	Chunk       chunk.Config
	Cookie      cookie.Config
	Session     session.Config
	Transaction transaction.Config
	Replay      replay.Config
}

func (c *appConfig) Validate() error {
	var errs []error
	if c.Chunk.MaxChunkBytes <= 0 || c.Chunk.MaxChunks <= 0 {
		errs = append(errs, errors.New("COOKIE_MAX_CHUNK_BYTES and COOKIE_MAX_CHUNKS must be positive"))
	}
	if c.Session.AbsoluteDuration <= 0 {
		errs = append(errs, errors.New("SESSION_ABSOLUTE_DURATION must be positive"))
	}
	if c.Session.InactivityDuration < 0 {
		errs = append(errs, errors.New("SESSION_INACTIVITY_DURATION must not be negative"))
	}
	if c.Transaction.TTL <= 0 {
		errs = append(errs, errors.New("TRANSACTION_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func loadConfig() (*appConfig, error) {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// stores is everything a command needs, built from one config.
type stores struct {
	log          *slog.Logger
	sessions     *session.Store
	transactions *transaction.Store
	closeGuard   func() error
}

func buildStores(ctx context.Context, cfg *appConfig, logOut io.Writer) (*stores, error) {
	log, err := logger.NewFromConfig(cfg.Log,
		logger.WithOutput(logOut),
		logger.WithAttr(slog.String("service", "sessionkit")),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	)
	if err != nil {
		return nil, err
	}

	c, chunks, err := buildCodec(cfg)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewFromConfig(cfg.Session, c, chunks, session.WithLogger(log))
	if err != nil {
		return nil, err
	}

	guard, closeGuard, err := replay.NewFromConfig(ctx, cfg.Replay)
	if err != nil {
		return nil, err
	}

	txOpts := []transaction.Option{transaction.WithLogger(log)}
	if guard != nil {
		txOpts = append(txOpts, transaction.WithReplayGuard(guard))
	}
	transactions, err := transaction.NewFromConfig(cfg.Transaction, c, chunks, txOpts...)
	if err != nil {
		_ = closeGuard()
		return nil, err
	}

	return &stores{
		log:          log,
		sessions:     sessions,
		transactions: transactions,
		closeGuard:   closeGuard,
	}, nil
}
