// Package marketdata fetches end-of-day bars from the Yahoo Finance chart API.
//
// Endpoint: GET /v8/finance/chart/{symbol}?range=1d&interval=1d
//
// For each requested symbol the client keeps only the latest bar's adjusted
// close and volume. A symbol with no bar (market holiday, delisting, unknown
// symbol) contributes no record; a transport or provider error aborts the
// whole fetch. There is no per-symbol retry.
package marketdata
