package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type fakeSecretsAPI struct {
	value string
	err   error
	calls int
}

func (f *fakeSecretsAPI) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(f.value)}, nil
}

func TestResolve(t *testing.T) {
	api := &fakeSecretsAPI{value: `{"username":"app","password":"s3cret","host":"db.internal","dbname":"market","port":3306}`}
	r := NewResolver(api)

	creds, err := r.Resolve(context.Background(), "prod/market/mysql")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if creds.Username != "app" {
		t.Errorf("Username = %q, want %q", creds.Username, "app")
	}
	if creds.Host != "db.internal" {
		t.Errorf("Host = %q, want %q", creds.Host, "db.internal")
	}
	if creds.DBName != "market" {
		t.Errorf("DBName = %q, want %q", creds.DBName, "market")
	}
	if creds.Port != 3306 {
		t.Errorf("Port = %d, want 3306", creds.Port)
	}
}

func TestResolveStringPort(t *testing.T) {
	api := &fakeSecretsAPI{value: `{"username":"app","password":"s3cret","host":"db.internal","dbname":"market","port":"3307"}`}
	r := NewResolver(api)

	creds, err := r.Resolve(context.Background(), "prod/market/mysql")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if creds.Port != 3307 {
		t.Errorf("Port = %d, want 3307", creds.Port)
	}
}

func TestResolveMissingSecret(t *testing.T) {
	api := &fakeSecretsAPI{err: errors.New("ResourceNotFoundException")}
	r := NewResolver(api)

	_, err := r.Resolve(context.Background(), "prod/market/mysql")
	if err == nil {
		t.Fatal("Resolve() = nil error, want CredentialError")
	}

	var credErr *CredentialError
	if !errors.As(err, &credErr) {
		t.Fatalf("error type = %T, want *CredentialError", err)
	}
	if credErr.Name != "prod/market/mysql" {
		t.Errorf("CredentialError.Name = %q, want %q", credErr.Name, "prod/market/mysql")
	}
}

func TestResolveUnparseableValue(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not json", "user=app password=s3cret"},
		{"bad port", `{"username":"app","password":"x","host":"h","dbname":"d","port":"abc"}`},
		{"missing host", `{"username":"app","password":"x","dbname":"d","port":3306}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(&fakeSecretsAPI{value: tt.value})
			_, err := r.Resolve(context.Background(), "prod/market/mysql")

			var credErr *CredentialError
			if !errors.As(err, &credErr) {
				t.Fatalf("error = %v (%T), want *CredentialError", err, err)
			}
		})
	}
}

func TestResolveNoCaching(t *testing.T) {
	api := &fakeSecretsAPI{value: `{"username":"app","password":"x","host":"h","dbname":"d","port":3306}`}
	r := NewResolver(api)

	for i := 0; i < 2; i++ {
		if _, err := r.Resolve(context.Background(), "prod/market/mysql"); err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
	}
	if api.calls != 2 {
		t.Errorf("GetSecretValue calls = %d, want 2 (no caching)", api.calls)
	}
}
