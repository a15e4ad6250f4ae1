// Package archive serializes quote records to CSV and writes them to S3.
//
// The object key is derived from the wall clock at upload time — yesterday's
// date in ISO 8601 form plus ".csv" — not from the dates inside the records.
// Re-running on the same day overwrites the same key; there is no versioning.
package archive
