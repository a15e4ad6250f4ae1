package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tomasrey/eod-snapshot/internal/model"
)

// FetchError reports a transport, provider, or parse failure for a symbol.
// It is fatal for the whole run.
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// FetchDaily returns the most recent daily bar for each symbol, in input
// order. Symbols without a bar are skipped, so the result may be shorter
// than the input.
func (c *Client) FetchDaily(ctx context.Context, symbols []string) ([]model.Quote, error) {
	quotes := make([]model.Quote, 0, len(symbols))

	for _, symbol := range symbols {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		q, ok, err := c.fetchSymbol(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if !ok {
			c.logger.Warn("no bar for symbol, skipping", "symbol", symbol)
			continue
		}

		c.logger.Info("fetched daily bar",
			"symbol", symbol,
			"date", q.TradeDate.Format("2006-01-02"),
			"price", q.Price,
			"volume", q.Volume,
		)
		quotes = append(quotes, q)
	}

	return quotes, nil
}

// fetchSymbol requests a one-day window at daily granularity and extracts the
// latest usable bar. ok is false when the provider returned no bar.
func (c *Client) fetchSymbol(ctx context.Context, symbol string) (model.Quote, bool, error) {
	query := url.Values{}
	query.Set("range", "1d")
	query.Set("interval", "1d")
	query.Set("includeAdjustedClose", "true")

	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return model.Quote{}, false, &FetchError{Symbol: symbol, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "eod-snapshot/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Quote{}, false, &FetchError{Symbol: symbol, Err: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Quote{}, false, &FetchError{Symbol: symbol, Err: fmt.Errorf("read response: %w", err)}
	}

	var cr chartResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		if resp.StatusCode >= 400 {
			return model.Quote{}, false, &FetchError{
				Symbol: symbol,
				Err:    fmt.Errorf("provider status %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			}
		}
		return model.Quote{}, false, &FetchError{Symbol: symbol, Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	// A structured provider error means "no data for this symbol" (unknown or
	// delisted instrument); the symbol contributes no record. Anything else
	// above 400 is a provider failure and aborts the run.
	if cr.Chart.Error != nil {
		c.logger.Debug("provider returned no data",
			"symbol", symbol,
			"code", cr.Chart.Error.Code,
			"description", cr.Chart.Error.Description,
		)
		return model.Quote{}, false, nil
	}
	if resp.StatusCode >= 400 {
		return model.Quote{}, false, &FetchError{
			Symbol: symbol,
			Err:    fmt.Errorf("provider status %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	if len(cr.Chart.Result) == 0 {
		return model.Quote{}, false, nil
	}
	return latestBar(symbol, cr.Chart.Result[0])
}

// latestBar walks the aligned indicator arrays backwards and returns the most
// recent row with a price and a volume.
func latestBar(symbol string, result chartResult) (model.Quote, bool, error) {
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return model.Quote{}, false, nil
	}

	bars := result.Indicators.Quote[0]
	var adj []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}

	for i := len(result.Timestamp) - 1; i >= 0; i-- {
		price := priceAt(adj, bars.Close, i)
		if price == nil {
			continue
		}
		if i >= len(bars.Volume) || bars.Volume[i] == nil {
			continue
		}

		return model.Quote{
			TradeDate: time.Unix(result.Timestamp[i], 0).UTC(),
			Symbol:    symbol,
			Price:     *price,
			Volume:    *bars.Volume[i],
		}, true, nil
	}

	return model.Quote{}, false, nil
}

// priceAt prefers the adjusted close; indices (^GSPC and friends) sometimes
// ship without an adjclose series, in which case the raw close is the
// adjusted close.
func priceAt(adj, close []*float64, i int) *float64 {
	if i < len(adj) && adj[i] != nil {
		return adj[i]
	}
	if i < len(close) && close[i] != nil {
		return close[i]
	}
	return nil
}
