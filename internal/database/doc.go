// Package database loads quote records into the MySQL sink.
//
// Connection establishment is the only component with local recovery: a
// bounded retry loop with exponential backoff (delay^attempt seconds between
// attempts). Exhausting the retries yields a *ConnectError, which callers
// treat as a degraded-but-successful run. Insert failures are fatal.
package database
