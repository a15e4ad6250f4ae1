package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tomasrey/eod-snapshot/internal/config"
	"github.com/tomasrey/eod-snapshot/internal/database"
	"github.com/tomasrey/eod-snapshot/internal/model"
	"github.com/tomasrey/eod-snapshot/internal/secrets"
)

// SuccessBody is the response body reported to the harness on success.
const SuccessBody = "Data scrapped successfully!"

// Fetcher returns one quote per symbol that has a bar, in input order.
type Fetcher interface {
	FetchDaily(ctx context.Context, symbols []string) ([]model.Quote, error)
}

// Archiver writes the records to object storage and returns the key written.
type Archiver interface {
	Store(ctx context.Context, quotes []model.Quote) (string, error)
}

// SecretSource resolves database credentials at call time.
type SecretSource interface {
	Resolve(ctx context.Context, name string) (*secrets.Credentials, error)
}

// Loader connects to the relational sink and inserts the records.
type Loader interface {
	Connect(ctx context.Context, creds *secrets.Credentials) (*sql.DB, error)
	Insert(ctx context.Context, db *sql.DB, quotes []model.Quote) error
}

// Pipeline wires the run steps together.
type Pipeline struct {
	cfg      *config.Config
	fetcher  Fetcher
	archiver Archiver
	creds    SecretSource
	loader   Loader
	logger   *slog.Logger
}

// New creates a Pipeline. A nil logger falls back to slog.Default().
func New(cfg *config.Config, fetcher Fetcher, archiver Archiver, creds SecretSource, loader Loader, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:      cfg,
		fetcher:  fetcher,
		archiver: archiver,
		creds:    creds,
		loader:   loader,
		logger:   logger,
	}
}

// Run executes fetch → archive → connect → insert in strict sequence for one
// invocation. Records flow unmodified, in fetch order, through every step.
func (p *Pipeline) Run(ctx context.Context) (model.Response, error) {
	logger := p.logger.With("run_id", uuid.NewString())

	logger.Info("fetching quotes", "symbols", p.cfg.Market.Symbols)
	quotes, err := p.fetcher.FetchDaily(ctx, p.cfg.Market.Symbols)
	if err != nil {
		return model.Response{}, fmt.Errorf("fetch quotes: %w", err)
	}
	logger.Info("quotes fetched", "count", len(quotes))

	key, err := p.archiver.Store(ctx, quotes)
	if err != nil {
		return model.Response{}, fmt.Errorf("archive quotes: %w", err)
	}
	logger.Info("archive written", "bucket", p.cfg.Archive.Bucket, "key", key)

	creds, err := p.creds.Resolve(ctx, p.cfg.Secret.Name)
	if err != nil {
		return model.Response{}, err
	}

	db, err := p.loader.Connect(ctx, creds)
	if err != nil {
		var connErr *database.ConnectError
		if errors.As(err, &connErr) {
			// Best-effort load: the archive succeeded, so the run did too.
			logger.Warn("database unavailable, archive-only run",
				"attempts", connErr.Attempts,
				"error", connErr.Err,
			)
			return model.Response{StatusCode: http.StatusOK, Body: SuccessBody}, nil
		}
		return model.Response{}, err
	}
	defer db.Close()

	if err := p.loader.Insert(ctx, db, quotes); err != nil {
		return model.Response{}, err
	}

	logger.Info("run complete", "rows", len(quotes))
	return model.Response{StatusCode: http.StatusOK, Body: SuccessBody}, nil
}
