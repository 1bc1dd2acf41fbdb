package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger/cmd/staking-ledger/cli"
	"github.com/babylonchain/staking-ledger/cmd/staking-ledger/scripts"
	"github.com/babylonchain/staking-ledger/internal/api"
	"github.com/babylonchain/staking-ledger/internal/clients"
	"github.com/babylonchain/staking-ledger/internal/config"
	"github.com/babylonchain/staking-ledger/internal/db"
	"github.com/babylonchain/staking-ledger/internal/db/model"
	"github.com/babylonchain/staking-ledger/internal/observability/healthcheck"
	"github.com/babylonchain/staking-ledger/internal/observability/metrics"
	"github.com/babylonchain/staking-ledger/internal/queue"
	"github.com/babylonchain/staking-ledger/internal/services"
	"github.com/babylonchain/staking-ledger/internal/types"
)

const shutdownTimeout = 10 * time.Second

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}
}

// @title Staking Ledger API
// @version 1.0
// @description Share accounting ledger for delegated multi-collateral staking.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// setup cli commands and flags
	if err := cli.Setup(); err != nil {
		log.Fatal().Err(err).Msg("error while setting up cli")
	}

	// load config
	cfgPath := cli.GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	genesisPath := cli.GetGenesisPath()
	genesis, err := types.NewGenesis(genesisPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading genesis file: %s", genesisPath))
	}
	prices, err := genesis.Prices()
	if err != nil {
		log.Fatal().Err(err).Msg("error while reading genesis prices")
	}

	metrics.Init(cfg.Metrics.Address())

	err = model.Setup(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up ledger db model")
	}
	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while connecting to the database")
	}
	defer func() {
		if err := dbClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("error while disconnecting from the database")
		}
	}()

	ledgerClients, err := clients.New(cfg, prices)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up ledger clients")
	}
	services, err := services.New(ctx, cfg, genesis, dbClient, ledgerClients)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up ledger services layer")
	}

	queues, err := queue.New(&cfg.Queue, services)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up queues")
	}
	defer queues.StopReceivingMessages()
	services.SetEventPublisher(queues)

	// Check if the replay flag is set
	if cli.GetReplayFlag() {
		log.Info().Msg("Replay flag is set. Starting replay of unprocessable messages.")
		err := scripts.ReplayUnprocessableMessages(ctx, queues, dbClient)
		if err != nil {
			log.Fatal().Err(err).Msg("error while replaying unprocessable messages")
		}
		return
	}

	if err := queues.StartReceivingMessages(); err != nil {
		log.Fatal().Err(err).Msg("error while starting queue consumers")
	}

	if err := healthcheck.StartHealthCheckCron(ctx, services, queues, cfg.Server.HealthCheckInterval); err != nil {
		log.Fatal().Err(err).Msg("error while starting health check cron")
	}

	apiServer, err := api.New(ctx, cfg, services)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up staking ledger api")
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error while shutting down the api server")
		}
	}()

	if err = apiServer.Start(); err != nil {
		log.Fatal().Err(err).Msg("error while starting staking ledger api")
	}
}
