package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/tomasrey/eod-snapshot/internal/archive"
	"github.com/tomasrey/eod-snapshot/internal/config"
	"github.com/tomasrey/eod-snapshot/internal/database"
	"github.com/tomasrey/eod-snapshot/internal/marketdata"
	"github.com/tomasrey/eod-snapshot/internal/model"
	"github.com/tomasrey/eod-snapshot/internal/pipeline"
	"github.com/tomasrey/eod-snapshot/internal/secrets"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Secret.Region),
	)
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

	lambda.Start(func(ctx context.Context, event json.RawMessage) (model.Response, error) {
		return p.Run(ctx)
	})
}
