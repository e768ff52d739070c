// Package main starts the soca ledger API server.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/soca-bot/ledger/cmd/httpserver"
	"github.com/soca-bot/ledger/internal/ledgerrepo"
	"github.com/soca-bot/ledger/internal/middleware"
	"github.com/soca-bot/ledger/internal/notifier"
	"github.com/soca-bot/ledger/pkg/configpkg"
	"github.com/soca-bot/ledger/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	store, err := buildStore(config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to store")
	}

	var sink notifier.Sink
	if config.NotifyWebhookURL != "" {
		sink = notifier.NewWebhookSink(config.NotifyWebhookURL)
	} else {
		sink = notifier.NewLogSink(logger)
	}

	server, err := httpserver.New(store, sink, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().
		Str("backend", config.StoreBackend).
		Msg("SOCA LEDGER SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

func buildStore(config configpkg.Config) (ledgerrepo.Store, error) {
	switch config.StoreBackend {
	case "mem":
		return ledgerrepo.NewRepoMem(), nil
	case "redis":
		opts, err := redis.ParseURL(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}

		client := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("pinging redis: %w", err)
		}

		return ledgerrepo.NewRepoRedis(client), nil
	case "postgres":
		db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}

		return ledgerrepo.NewRepoPGS(db), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", config.StoreBackend)
	}
}
