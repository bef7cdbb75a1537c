package marketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/xhhuango/json"

	"stocast/models"
)

// Provider supplies a dated adjusted-close price history for a symbol.
// The simulation engine only ever reads the returned series.
type Provider interface {
	DailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]models.PricePoint, error)
}

const DefaultBaseURL = "https://api.tiingo.com"

// Client fetches end-of-day bars from the Tiingo daily prices API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) DailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]models.PricePoint, error) {
	q := url.Values{}
	q.Set("startDate", start.Format("2006-01-02"))
	q.Set("endDate", end.Format("2006-01-02"))
	q.Set("resampleFreq", "daily")
	apiURL := fmt.Sprintf("%s/tiingo/daily/%s/prices?%s", c.baseURL, url.PathEscape(symbol), q.Encode())

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build history request: %w", err)
	}
	r.Header.Add("Authorization", fmt.Sprintf("Token %s", c.token))
	r.Header.Add("Accept", "application/json")

	resp, err := c.http.Do(r)
	if err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read history response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("history request for %s failed: %s: %s", symbol, resp.Status, body)
	}

	var bars []dailyBar
	if err := json.Unmarshal(body, &bars); err != nil {
		return nil, fmt.Errorf("unmarshal history response: %w", err)
	}

	return toPricePoints(bars)
}
