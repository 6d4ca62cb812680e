package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"jobgate/internal/config"
	"jobgate/internal/logging"
	"jobgate/internal/logging/types"
	"jobgate/pkg/utils"
)

// Client is the shared HTTP client for all direct-API adapters. Every call
// carries a bounded timeout and passes through a per-host rate limiter so
// that one busy request cannot hammer a single upstream.
type Client struct {
	httpClient *http.Client
	userAgent  string
	rps        rate.Limit
	burst      int
	limiters   map[string]*rate.Limiter
	mu         sync.Mutex
	logger     types.Logger
}

// NewClient creates an upstream client from configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Upstream.RequestTimeout},
		userAgent:  cfg.Upstream.UserAgent,
		// Rate limit is configured as requests per minute per host
		rps:      rate.Limit(float64(cfg.Upstream.RateLimit) / 60.0),
		burst:    cfg.Upstream.Burst,
		limiters: make(map[string]*rate.Limiter),
		logger:   logging.GetGlobalLogger(),
	}
}

// GetJSON issues a GET request against rawURL with the given query string
// and decodes the JSON response body into out. Non-2xx statuses and
// unparseable bodies are errors; redirects are followed.
func (c *Client) GetJSON(ctx context.Context, rawURL string, query url.Values, out any) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid upstream url %q: %w", rawURL, err)
	}
	if len(query) > 0 {
		merged := u.Query()
		for key, values := range query {
			for _, v := range values {
				merged.Add(key, v)
			}
		}
		u.RawQuery = merged.Encode()
	}

	if err := c.limiterFor(u.Hostname()).Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", u.Hostname(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return utils.NewUpstreamError(u.Hostname(), err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little of the body for diagnostics without logging megabytes
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Debug("upstream returned non-success status", map[string]interface{}{
			"host":   u.Hostname(),
			"status": resp.StatusCode,
			"body":   strings.TrimSpace(string(body)),
		})
		return utils.NewUpstreamError(u.Hostname(), fmt.Sprintf("returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return utils.NewUpstreamError(u.Hostname(), "failed to decode response: "+err.Error())
	}

	return nil
}

// limiterFor gets or creates the rate limiter for a host.
func (c *Client) limiterFor(host string) *rate.Limiter {
	host = strings.ToLower(host)

	c.mu.Lock()
	defer c.mu.Unlock()

	if limiter, exists := c.limiters[host]; exists {
		return limiter
	}

	limiter := rate.NewLimiter(c.rps, c.burst)
	c.limiters[host] = limiter
	return limiter
}
