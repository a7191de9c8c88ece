package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/guttosm/stockr/internal/domain/models"
	"github.com/guttosm/stockr/internal/logger"
)

// DefaultYahooBaseURL is the public Yahoo Finance chart API host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooProvider implements QuoteProvider using the Yahoo Finance v8 chart API.
type YahooProvider struct {
	Client  *http.Client
	BaseURL string
}

// NewYahooProvider creates a Yahoo provider. An empty baseURL selects the
// public API; proxyURL, when set, routes requests through an HTTP proxy.
// An unusable proxyURL is logged and requests go direct.
func NewYahooProvider(baseURL, proxyURL string, timeout time.Duration) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		u, err := parseProxy(proxyURL)
		if err != nil {
			logger.L().Warn().Err(err).Str("proxy", proxyURL).Msg("ignoring provider proxy")
		} else {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	return &YahooProvider{
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

func parseProxy(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("proxy %q is not an absolute URL", raw)
	}
	return u, nil
}

// yahooChart is the response structure of the chart endpoint.
// Price arrays contain nulls for non-trading bars.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*uint64  `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyQuotes downloads the quote series for symbol.
//
// Bars with a null open/high/low/close are skipped. A missing adjusted close
// falls back to the close, a missing volume to zero.
func (p *YahooProvider) FetchDailyQuotes(ctx context.Context, symbol, interval, rng string) ([]models.RawQuote, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		p.BaseURL, url.PathEscape(symbol), url.QueryEscape(interval), url.QueryEscape(rng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrProvider, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	start := time.Now()
	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo fetch %s: %w", ErrProvider, symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo read body: %v", ErrProvider, err)
	}

	logger.L().Debug().
		Str("provider", p.Name()).
		Str("symbol", symbol).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("provider response")

	var chart yahooChart
	decodeErr := json.Unmarshal(body, &chart)

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: yahoo status %d: %s", ErrProvider, resp.StatusCode, truncate(string(body), 200))
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: yahoo decode: %v", ErrProvider, decodeErr)
	}
	if e := chart.Chart.Error; e != nil {
		if strings.EqualFold(e.Code, "Not Found") {
			return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
		}
		return nil, fmt.Errorf("%w: yahoo api error: %s", ErrProvider, e.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 {
		return []models.RawQuote{}, nil
	}
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: yahoo: no quote indicators", ErrProvider)
	}
	quote := result.Indicators.Quote[0]
	var adj []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}

	quotes := make([]models.RawQuote, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, h, l, c := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		if o == nil || h == nil || l == nil || c == nil {
			continue
		}
		q := models.RawQuote{
			Timestamp: ts,
			Open:      *o,
			High:      *h,
			Low:       *l,
			Close:     *c,
			AdjClose:  *c,
		}
		if a := at(adj, i); a != nil {
			q.AdjClose = *a
		}
		if v := at(quote.Volume, i); v != nil {
			q.Volume = *v
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func at[T any](s []*T, i int) *T {
	if i < len(s) {
		return s[i]
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
