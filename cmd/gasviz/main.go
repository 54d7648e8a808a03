package main

import (
	"context"
	"os"

	"github.com/gabapcia/gasviz/internal/blockfetch"
	"github.com/gabapcia/gasviz/internal/config"
	"github.com/gabapcia/gasviz/internal/gaslayout"
	"github.com/gabapcia/gasviz/internal/handlers/cli"
	"github.com/gabapcia/gasviz/internal/infra/blockchain/ethereum"
	"github.com/gabapcia/gasviz/internal/infra/scene/jsonl"
	redisstorage "github.com/gabapcia/gasviz/internal/infra/storage/redis"
	"github.com/gabapcia/gasviz/internal/pkg/logger"
	"github.com/gabapcia/gasviz/internal/pkg/resilience/retry"
	"github.com/gabapcia/gasviz/internal/pkg/telemetry"
	httptransport "github.com/gabapcia/gasviz/internal/pkg/transport/http"
	"github.com/gabapcia/gasviz/internal/pkg/transport/jsonrpc"
	"github.com/gabapcia/gasviz/internal/vizproc"
)

const serviceName = "gasviz"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		_ = logger.Init()
		logger.Fatal(ctx, "error loading configuration", "error", err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			_ = logger.Init(logger.WithLevel(cfg.LogLevel))
			logger.Fatal(ctx, "error initializing telemetry", "error", err)
		}
		defer shutdown(ctx)
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		panic(err)
	}
	defer logger.Sync()

	httpOpts := make([]httptransport.Option, 0, 1)
	if cfg.RPCAPIKeyHeader != "" {
		httpOpts = append(httpOpts, httptransport.WithHeader(cfg.RPCAPIKeyHeader, cfg.RPCAPIKey))
	}
	httpClient := httptransport.NewClient(httpOpts...)

	rpcClient := jsonrpc.NewClient(httpClient.StandardClient(), cfg.RPCEndpoint)
	chain := ethereum.NewClient(rpcClient)

	fetchOpts := []blockfetch.Option{
		blockfetch.WithFetchInterval(cfg.FetchInterval),
		blockfetch.WithDrainInterval(cfg.DrainInterval),
	}
	if cfg.FetchRetryAttempts > 0 {
		fetchOpts = append(fetchOpts, blockfetch.WithRetry(retry.New(
			retry.WithAttempts(cfg.FetchRetryAttempts),
		)))
	}
	if cfg.FetchInFlightGuard {
		fetchOpts = append(fetchOpts, blockfetch.WithInFlightGuard())
	}
	fetcher := blockfetch.New(chain, fetchOpts...)

	var store gaslayout.KnownBlockStore
	if cfg.RedisAddr != "" {
		redisOpts := make([]redisstorage.Option, 0, 1)
		if cfg.KnownBlocksRetentionLimit > 0 {
			redisOpts = append(redisOpts, redisstorage.WithRetentionLimit(cfg.KnownBlocksRetentionLimit))
		}

		redisClient, err := redisstorage.NewClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB, redisOpts...)
		if err != nil {
			logger.Fatal(ctx, "error connecting to redis", "error", err)
		}
		defer redisClient.Close()

		store = redisClient
	} else {
		memOpts := make([]gaslayout.MemoryStoreOption, 0, 1)
		if cfg.KnownBlocksRetentionLimit > 0 {
			memOpts = append(memOpts, gaslayout.WithRetentionLimit(int(cfg.KnownBlocksRetentionLimit)))
		}

		store = gaslayout.NewMemoryStore(memOpts...)
	}

	layoutService, err := gaslayout.New(store, jsonl.NewRenderer(os.Stdout))
	if err != nil {
		logger.Fatal(ctx, "error creating layout service", "error", err)
	}

	pipeline, err := vizproc.New(fetcher, layoutService)
	if err != nil {
		logger.Fatal(ctx, "error creating pipeline service", "error", err)
	}

	if err := cli.Run(ctx, pipeline, chain); err != nil {
		logger.Fatal(ctx, "error running gasviz", "error", err)
	}
}
