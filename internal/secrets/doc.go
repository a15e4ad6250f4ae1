// Package secrets resolves database credentials from AWS Secrets Manager.
//
// The secret value is a JSON object with fields username, password, host,
// dbname and port. Resolution is done at call time with no caching; any
// failure is a *CredentialError and aborts the run.
package secrets
