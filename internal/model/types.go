package model

import "time"

// Quote is one end-of-day observation for a single instrument. Quotes are
// created by the fetcher and flow unmodified through the archiver and the
// database writer; nothing persists them between runs.
type Quote struct {
	TradeDate time.Time // bar date reported by the provider
	Symbol    string    // instrument symbol as requested (e.g. "BTC-USD")
	Price     float64   // adjusted close
	Volume    int64     // traded volume for the bar
}

// Response is the result of one invocation, returned to the harness. It has
// no persisted identity.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}
