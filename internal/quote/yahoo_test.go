package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocklens/internal/config"
	"stocklens/internal/errors"
)

const chartBody = `{
  "chart": {
    "result": [{
      "timestamp": [1748853000, 1748853300, 1748853600],
      "indicators": {
        "quote": [{
          "open":   [100.0, null, 102.0],
          "high":   [101.0, null, 103.0],
          "low":    [99.0,  null, 101.0],
          "close":  [100.5, null, 102.5],
          "volume": [5000,  null, 7000]
        }]
      }
    }],
    "error": null
  }
}`

func testClient(baseURL string) *Client {
	return NewClient(config.FetchConfig{
		BaseURL:     baseURL,
		TimeoutSecs: 5,
		MaxRetries:  1,
	}, zerolog.Nop())
}

func TestFetchCandles_DropsNullBars(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		assert.Equal(t, "5m", r.URL.Query().Get("interval"))
		assert.Equal(t, "1d", r.URL.Query().Get("range"))
		w.Write([]byte(chartBody))
	}))
	defer server.Close()

	candles, err := testClient(server.URL).FetchCandles(context.Background(), "AAPL", "5m", "1d")
	require.NoError(t, err)
	require.Len(t, candles, 2, "the null bar is dropped")

	assert.Equal(t, time.Unix(1748853000, 0).UTC(), candles[0].Timestamp)
	assert.Equal(t, 100.5, candles[0].Close)
	assert.Equal(t, int64(5000), candles[0].Volume)
	assert.Equal(t, 102.5, candles[1].Close)
}

func TestFetchCandles_SymbolNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchCandles(context.Background(), "NOPE", "5m", "1d")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSymbolNotFound)

	var fetchErr *errors.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "NOPE", fetchErr.Symbol)
	assert.Equal(t, "yahoo", fetchErr.Source)
}

func TestFetchCandles_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchCandles(context.Background(), "AAPL", "5m", "1d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestFetchCandles_AllNullBars(t *testing.T) {
	body := `{"chart":{"result":[{"timestamp":[1748853000],"indicators":{"quote":[{
	  "open":[null],"high":[null],"low":[null],"close":[null],"volume":[null]}]}}],"error":null}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchCandles(context.Background(), "AAPL", "5m", "1d")
	assert.ErrorIs(t, err, errors.ErrNoData)
}

func TestFetchCandles_ShapeMismatch(t *testing.T) {
	body := `{"chart":{"result":[{"timestamp":[1748853000,1748853300],"indicators":{"quote":[{
	  "open":[100.0,101.0],"high":[101.0,102.0],"low":[99.0],"close":[100.5,101.5],"volume":[5000,6000]}]}}],"error":null}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchCandles(context.Background(), "AAPL", "5m", "1d")
	require.Error(t, err)

	var shapeErr *errors.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "low", shapeErr.Column)
}

func TestFetchCandles_RetriesTransientFailure(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(chartBody))
	}))
	defer server.Close()

	client := NewClient(config.FetchConfig{
		BaseURL:     server.URL,
		TimeoutSecs: 5,
		MaxRetries:  3,
	}, zerolog.Nop())
	client.retry.InitialDelay = time.Millisecond

	candles, err := client.FetchCandles(context.Background(), "AAPL", "5m", "1d")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, candles, 2)
}
