package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/joho/godotenv"

	"github.com/tomasrey/eod-snapshot/internal/archive"
	"github.com/tomasrey/eod-snapshot/internal/config"
	"github.com/tomasrey/eod-snapshot/internal/database"
	"github.com/tomasrey/eod-snapshot/internal/marketdata"
	"github.com/tomasrey/eod-snapshot/internal/pipeline"
	"github.com/tomasrey/eod-snapshot/internal/secrets"
	"github.com/tomasrey/eod-snapshot/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (environment variables used when empty)")
	flag.Parse()

	_ = godotenv.Load()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting snapshot run",
		"version", version.Version,
		"commit", version.Commit,
	)

	// Load configuration
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadAndValidate(*configPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"symbols", cfg.Market.Symbols,
		"bucket", cfg.Archive.Bucket,
		"table", cfg.Database.Table,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Secret.Region))
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	p := pipeline.New(cfg,
		marketdata.NewClient(
			marketdata.WithBaseURL(cfg.Market.BaseURL),
			marketdata.WithTimeout(cfg.Market.Timeout),
			marketdata.WithRateLimit(cfg.Market.RequestsPerSec),
			marketdata.WithLogger(logger),
		),
		archive.NewUploader(s3.NewFromConfig(awsCfg), cfg.Archive.Bucket,
			archive.WithLogger(logger),
		),
		secrets.NewResolver(secretsmanager.NewFromConfig(awsCfg),
			secrets.WithLogger(logger),
		),
		database.NewWriter(cfg.Database.Table,
			database.WithMaxAttempts(cfg.Database.MaxAttempts),
			database.WithRetryDelay(cfg.Database.RetryDelaySeconds),
			database.WithLogger(logger),
		),
		logger,
	)

	resp, err := p.Run(ctx)
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("run finished", "status", resp.StatusCode, "body", resp.Body)
}
