// Package pipeline runs one fetch → archive → load invocation.
//
// The database load is best-effort: when the connection retry loop is
// exhausted the run still succeeds on the strength of the archive. Every
// other failure aborts the run and propagates to the invoking harness.
package pipeline
