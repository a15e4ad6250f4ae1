package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// CredentialError reports a secret that is missing, inaccessible, or whose
// value does not parse as the expected credential record.
type CredentialError struct {
	Name string
	Err  error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("credentials %q: %v", e.Name, e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// Credentials is the structured record stored in the secret.
type Credentials struct {
	Username string
	Password string
	Host     string
	DBName   string
	Port     int
}

// SecretsAPI is the subset of the Secrets Manager client used by the
// resolver, kept narrow so tests can fake it.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Resolver fetches credentials from Secrets Manager.
type Resolver struct {
	client SecretsAPI
	logger *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver over the given client.
func NewResolver(client SecretsAPI, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fetches and parses the named secret. There is no retry: a failure
// here is immediately fatal to the run.
func (r *Resolver) Resolve(ctx context.Context, name string) (*Credentials, error) {
	out, err := r.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return nil, &CredentialError{Name: name, Err: err}
	}
	if out.SecretString == nil {
		return nil, &CredentialError{Name: name, Err: errors.New("secret has no string value")}
	}

	creds, err := parse(*out.SecretString)
	if err != nil {
		return nil, &CredentialError{Name: name, Err: err}
	}

	r.logger.Debug("credentials resolved", "secret", name, "host", creds.Host, "dbname", creds.DBName)
	return creds, nil
}

func parse(value string) (*Credentials, error) {
	var raw struct {
		Username string          `json:"username"`
		Password string          `json:"password"`
		Host     string          `json:"host"`
		DBName   string          `json:"dbname"`
		Port     json.RawMessage `json:"port"`
	}
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return nil, fmt.Errorf("parse secret value: %w", err)
	}

	// Secrets Manager stores the port as a number or a quoted string
	// depending on how the secret was created; accept both.
	port, err := strconv.Atoi(strings.Trim(string(raw.Port), `"`))
	if err != nil {
		return nil, fmt.Errorf("parse secret port %q: %w", string(raw.Port), err)
	}

	if raw.Host == "" || raw.DBName == "" {
		return nil, errors.New("secret is missing host or dbname")
	}

	return &Credentials{
		Username: raw.Username,
		Password: raw.Password,
		Host:     raw.Host,
		DBName:   raw.DBName,
		Port:     port,
	}, nil
}
