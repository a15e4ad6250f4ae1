package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/tomasrey/eod-snapshot/internal/model"
	"github.com/tomasrey/eod-snapshot/internal/secrets"
)

// ConnectError reports that the connection retry loop was exhausted. Callers
// degrade to an archive-only run instead of aborting.
type ConnectError struct {
	Attempts int
	Err      error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("database unreachable after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// InsertError reports a row-level failure. No partial commit happens; the
// transaction is discarded with the connection.
type InsertError struct {
	Symbol string
	Err    error
}

func (e *InsertError) Error() string {
	return fmt.Sprintf("insert %s: %v", e.Symbol, e.Err)
}

func (e *InsertError) Unwrap() error { return e.Err }

// Opener opens and verifies a database connection. Injectable for tests.
type Opener func(ctx context.Context, dsn string) (*sql.DB, error)

// Writer inserts quote records into the configured table.
type Writer struct {
	table       string
	maxAttempts int
	retryDelay  int // backoff base in seconds; sleep n is retryDelay^n

	opener Opener
	sleep  func(ctx context.Context, d time.Duration) error
	logger *slog.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithMaxAttempts bounds the connection retry loop.
func WithMaxAttempts(n int) WriterOption {
	return func(w *Writer) {
		if n > 0 {
			w.maxAttempts = n
		}
	}
}

// WithRetryDelay sets the backoff base in seconds.
func WithRetryDelay(seconds int) WriterOption {
	return func(w *Writer) {
		if seconds > 0 {
			w.retryDelay = seconds
		}
	}
}

// WithOpener sets the connection opener.
func WithOpener(open Opener) WriterOption {
	return func(w *Writer) {
		w.opener = open
	}
}

// WithSleep sets the sleep function used between attempts.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) WriterOption {
	return func(w *Writer) {
		w.sleep = sleep
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

// NewWriter creates a Writer targeting the given table.
func NewWriter(table string, opts ...WriterOption) *Writer {
	w := &Writer{
		table:       table,
		maxAttempts: 3,
		retryDelay:  2,
		opener:      openMySQL,
		sleep:       sleepCtx,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Connect opens a connection using the resolved credentials, retrying up to
// maxAttempts times with delay^attempt-second sleeps between failures. When
// the loop is exhausted it returns a *ConnectError and no connection.
func (w *Writer) Connect(ctx context.Context, creds *secrets.Credentials) (*sql.DB, error) {
	dsn := BuildDSN(creds)

	var lastErr error
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		w.logger.Info("connecting to database", "attempt", attempt, "max_attempts", w.maxAttempts)

		db, err := w.opener(ctx, dsn)
		if err == nil {
			w.logger.Info("database connected", "host", creds.Host, "dbname", creds.DBName)
			return db, nil
		}
		lastErr = err

		if attempt == w.maxAttempts {
			w.logger.Warn("giving up on database connection",
				"attempts", attempt,
				"error", err,
			)
			break
		}

		backoff := time.Duration(intPow(w.retryDelay, attempt)) * time.Second
		w.logger.Warn("database connection failed",
			"attempt", attempt,
			"max_attempts", w.maxAttempts,
			"backoff", backoff,
			"error", err,
		)
		if err := w.sleep(ctx, backoff); err != nil {
			return nil, err
		}
	}

	return nil, &ConnectError{Attempts: w.maxAttempts, Err: lastErr}
}

// Insert writes one row per record in canonical column order and commits
// once for the whole batch. A failing insert returns an *InsertError without
// an explicit rollback; connection teardown discards the transaction.
func (w *Writer) Insert(ctx context.Context, db *sql.DB, quotes []model.Quote) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		fmt.Sprintf("INSERT INTO %s (fecha, moneda, Cotizacion, volumen) VALUES (?, ?, ?, ?)", w.table),
	)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, q := range quotes {
		if _, err := stmt.ExecContext(ctx, q.TradeDate, q.Symbol, q.Price, q.Volume); err != nil {
			return &InsertError{Symbol: q.Symbol, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	w.logger.Info("quotes inserted", "table", w.table, "rows", len(quotes))
	return nil
}

func openMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func intPow(base, exp int) int {
	result := 1
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
