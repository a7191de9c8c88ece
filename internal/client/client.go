// Package client fetches analysis reports from a running stockr server.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/guttosm/stockr/internal/domain/dto"
	"github.com/guttosm/stockr/internal/domain/models"
)

// ErrRemote is returned when the server answers with an error payload.
var ErrRemote = errors.New("remote analysis failed")

// Client talks to the /api/v1/stock endpoints.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// New returns a client for the server at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// FetchReport requests the analysis of symbol and decodes it.
//
// Non-2xx answers fail with ErrRemote carrying the server's code and
// message; a 2xx body that does not match the wire schema fails with
// dto.ErrSchema.
func (c *Client) FetchReport(ctx context.Context, symbol string) (*models.AnalysisReport, error) {
	u := c.BaseURL + "/api/v1/stock/" + url.PathEscape(symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRemote, symbol, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrRemote, err)
	}

	if resp.StatusCode/100 != 2 {
		var e dto.ErrorResponse
		if jsonErr := json.Unmarshal(body, &e); jsonErr != nil || e.Message == "" {
			return nil, fmt.Errorf("%w: %s: status %d", ErrRemote, symbol, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s: status %d: %s", ErrRemote, symbol, resp.StatusCode, e.Error())
	}

	return dto.DecodeReport(body)
}
