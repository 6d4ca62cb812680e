// Package jobspy talks to the external batch scraping service that fronts
// the library-backed job boards.
package jobspy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jobgate/internal/config"
	"jobgate/internal/logging"
	"jobgate/internal/logging/types"
	"jobgate/internal/scraper"
)

// Engine implements scraper.Engine against the batch service's HTTP API.
type Engine struct {
	baseURL    string
	apiKey     string
	maxRetries int
	httpClient *http.Client
	logger     types.Logger
}

// New creates a batch engine client from configuration.
func New(cfg *config.Config) *Engine {
	return &Engine{
		baseURL:    strings.TrimRight(cfg.Jobspy.BaseURL, "/"),
		apiKey:     cfg.Jobspy.APIKey,
		maxRetries: cfg.Jobspy.MaxRetries,
		httpClient: &http.Client{Timeout: cfg.Jobspy.Timeout},
		logger:     logging.GetGlobalLogger(),
	}
}

type batchResponse struct {
	Jobs []map[string]any `json:"jobs"`
}

// ScrapeBatch posts the search parameters to the batch service and returns
// the raw posting rows. Transient failures are retried with a linear
// backoff; the last error wins.
func (e *Engine) ScrapeBatch(ctx context.Context, params scraper.BatchParams) ([]map[string]any, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode batch request: %w", err)
	}

	retries := e.maxRetries
	if retries < 1 {
		retries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		rows, err := e.scrapeOnce(ctx, body)
		if err == nil {
			return rows, nil
		}
		lastErr = err

		e.logger.Warn("Batch scrape attempt failed", map[string]interface{}{
			"attempt": attempt,
			"error":   err.Error(),
		})

		if attempt < retries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
	}

	return nil, fmt.Errorf("batch scrape failed after %d attempts: %w", retries, lastErr)
}

func (e *Engine) scrapeOnce(ctx context.Context, body []byte) ([]map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/jobs/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create batch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("batch service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("batch service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var decoded batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode batch response: %w", err)
	}

	return decoded.Jobs, nil
}

// IsHealthy probes the batch service's health endpoint.
func (e *Engine) IsHealthy() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
