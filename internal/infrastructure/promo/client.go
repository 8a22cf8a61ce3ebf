package promo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/filtersfast/backend/internal/domain"
)

const maxAttempts = 3

// Client looks up promo codes in the remote promo-code registry
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	backoff     func(attempt int) time.Duration
	debug       bool
}

// NewClient creates a new registry client allowing requestsPerHour lookups.
// A non-positive requestsPerHour defaults to 1000.
func NewClient(apiKey, baseURL string, requestsPerHour int) *Client {
	if requestsPerHour <= 0 {
		requestsPerHour = 1000
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerHour)/3600), 10) // burst of 10 requests

	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
		backoff:     exponentialBackoff,
	}
}

// SetDebug toggles request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// Lookup implements domain.PromoCodeRegistry
func (c *Client) Lookup(ctx context.Context, code string) (*domain.PromoCode, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, domain.ErrPromoCodeNotFound
	}

	reqURL := fmt.Sprintf("%s/v1/promo-codes/%s", c.baseURL, url.PathEscape(code))

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		payload, retry, err := c.fetch(ctx, reqURL)
		if err == nil {
			if c.debug {
				log.Printf("[PROMO] Lookup %q -> status %q", code, payload.Status)
			}
			return mapToPromoCode(payload), nil
		}
		if !retry {
			return nil, err
		}

		if c.debug {
			log.Printf("[PROMO] Lookup %q failed (attempt %d): %v", code, attempt, err)
		}
		lastErr = err

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff(attempt)):
			}
		}
	}

	log.Printf("[PROMO] All retries failed for code %q", code)
	return nil, lastErr
}

// fetch performs one request. retry reports whether the failure is transient.
func (c *Client) fetch(ctx context.Context, reqURL string) (*codePayload, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "FiltersFast-FilterFinder/1.0")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, fmt.Errorf("%w: %v", domain.ErrRegistryFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("%w: reading body: %v", domain.ErrRegistryFailure, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, domain.ErrPromoCodeNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, fmt.Errorf("%w: %w", domain.ErrRegistryFailure, domain.ErrRateLimited)
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("%w: status %d", domain.ErrRegistryFailure, resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("%w: status %d, body: %s", domain.ErrRegistryFailure, resp.StatusCode, string(body))
	}

	var payload codePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, false, fmt.Errorf("failed to decode response: %w", err)
	}

	return &payload, false, nil
}
