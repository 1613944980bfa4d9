// Package quote fetches OHLCV history from the upstream quote provider.
// It is the data-fetch collaborator of the analysis core: it filters null
// entries out of the raw feed so the core only ever sees fully-dense,
// pre-cleaned series.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"stocklens/internal/config"
	"stocklens/internal/errors"
	"stocklens/internal/logging"
	"stocklens/internal/models"
	"stocklens/pkg/utils"
)

// Client fetches candle history from the Yahoo Finance chart API.
type Client struct {
	baseURL string
	http    *http.Client
	retry   utils.RetryConfig
	logger  zerolog.Logger
}

// NewClient creates a new quote client.
func NewClient(cfg config.FetchConfig, logger zerolog.Logger) *Client {
	retry := utils.DefaultRetryConfig()
	if cfg.MaxRetries > 0 {
		retry.MaxAttempts = cfg.MaxRetries
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
		},
		retry:  retry,
		logger: logger,
	}
}

// chartResponse is the response structure of the Yahoo Finance chart API.
// Price and volume columns use pointers because the feed carries JSON nulls
// for untraded intervals.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchCandles fetches the OHLCV history for a symbol at the given interval
// and range, dropping any bar with a null field.
func (c *Client) FetchCandles(ctx context.Context, symbol, interval, rng string) ([]models.Candle, error) {
	start := time.Now()
	candles, err := utils.RetryWithResult(ctx, c.retry, func() ([]models.Candle, error) {
		return c.fetchChart(ctx, symbol, interval, rng)
	})
	logging.LogFetch(c.logger, symbol, interval, len(candles), time.Since(start), err)
	if err != nil {
		return nil, errors.NewFetchError("yahoo", symbol, err)
	}
	return candles, nil
}

func (c *Client) fetchChart(ctx context.Context, symbol, interval, rng string) ([]models.Candle, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(interval), url.QueryEscape(rng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.ErrSymbolNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("api error %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, errors.ErrNoData
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, errors.ErrNoData
	}
	q := result.Indicators.Quote[0]

	n := len(result.Timestamp)
	for name, l := range map[string]int{
		"open": len(q.Open), "high": len(q.High), "low": len(q.Low),
		"close": len(q.Close), "volume": len(q.Volume),
	} {
		if l != n {
			return nil, errors.NewShapeError(name, l, n)
		}
	}

	candles := make([]models.Candle, 0, n)
	for i, ts := range result.Timestamp {
		// Untraded intervals come through as nulls; drop the whole bar.
		if q.Open[i] == nil || q.High[i] == nil || q.Low[i] == nil || q.Close[i] == nil || q.Volume[i] == nil {
			continue
		}
		candles = append(candles, models.Candle{
			Timestamp: time.Unix(ts, 0).UTC(),
			Open:      *q.Open[i],
			High:      *q.High[i],
			Low:       *q.Low[i],
			Close:     *q.Close[i],
			Volume:    *q.Volume[i],
		})
	}
	if len(candles) == 0 {
		return nil, errors.ErrNoData
	}
	return candles, nil
}
