package archive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tomasrey/eod-snapshot/internal/model"
)

// S3API is the subset of the S3 client used by the uploader, kept narrow so
// tests can fake it.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader writes the serialized records to an S3 bucket.
type Uploader struct {
	client S3API
	bucket string
	logger *slog.Logger
	now    func() time.Time
}

// UploaderOption configures an Uploader.
type UploaderOption func(*Uploader)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) UploaderOption {
	return func(u *Uploader) {
		u.logger = logger
	}
}

// WithClock overrides the wall clock used to derive the object key.
func WithClock(now func() time.Time) UploaderOption {
	return func(u *Uploader) {
		u.now = now
	}
}

// NewUploader creates an Uploader targeting the given bucket.
func NewUploader(client S3API, bucket string, opts ...UploaderOption) *Uploader {
	u := &Uploader{
		client: client,
		bucket: bucket,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Key returns the object key for the current wall-clock time: yesterday's
// date in ISO 8601 form plus ".csv".
func (u *Uploader) Key() string {
	return u.now().AddDate(0, 0, -1).Format("2006-01-02") + ".csv"
}

// Store serializes the records and PUTs them to the bucket, overwriting any
// object already at the key. It returns the key written.
func (u *Uploader) Store(ctx context.Context, quotes []model.Quote) (string, error) {
	body, err := EncodeCSV(quotes)
	if err != nil {
		return "", fmt.Errorf("encode archive: %w", err)
	}

	key := u.Key()
	u.logger.Info("uploading archive", "bucket", u.bucket, "key", key, "rows", len(quotes))

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", u.bucket, key, err)
	}

	u.logger.Info("archive uploaded", "bucket", u.bucket, "key", key)
	return key, nil
}
