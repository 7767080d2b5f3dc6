package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"campaign-insights-go/internal/logger"
	"campaign-insights-go/internal/types"
)

// Upstream endpoint paths.
const (
	RetailersPath         = "/api/retailers"
	PlatformsPath         = "/api/platforms"
	BrandCampaignsPath    = "/api/brand-campaigns"
	RetailerCampaignsPath = "/api/retailer-campaigns"
	PlatformMetricsPath   = "/api/campaign-performance-new/platform-metrics"
)

// Client talks to the upstream campaign API. Every call is retried with
// exponential backoff until maxRetry elapses or ctx is done.
type Client struct {
	baseURL  string
	http     *http.Client
	maxRetry time.Duration
	log      *logger.Logger
}

func New(baseURL string, timeout, maxRetry time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		maxRetry: maxRetry,
		log:      log.Component("api-client"),
	}
}

func (c *Client) Retailers(ctx context.Context) ([]types.RetailerRecord, error) {
	env, err := getJSON[[]types.RetailerRecord](ctx, c, RetailersPath, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) Platforms(ctx context.Context) ([]types.PlatformPerformance, error) {
	env, err := getJSON[[]types.PlatformPerformance](ctx, c, PlatformsPath, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) Campaigns(ctx context.Context, kind types.CampaignKind) ([]types.Campaign, error) {
	path := BrandCampaignsPath
	if kind == types.RetailerCampaigns {
		path = RetailerCampaignsPath
	}
	env, err := getJSON[json.RawMessage](ctx, c, path, nil)
	if err != nil {
		return nil, err
	}
	return env.Campaigns, nil
}

func (c *Client) PlatformMetrics(ctx context.Context, platform string) (types.PlatformMetrics, error) {
	q := url.Values{}
	q.Set("platform", platform)
	env, err := getJSON[types.PlatformMetrics](ctx, c, PlatformMetricsPath, q)
	if err != nil {
		return types.PlatformMetrics{}, err
	}
	return env.Data, nil
}

// getJSON issues a GET and decodes the envelope. 5xx responses, transport
// errors and unreadable bodies are retried; 4xx and success=false are not.
func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (types.Envelope[T], error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	log := c.log.WithField("url", u)

	var out types.Envelope[T]
	var lastErr error

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			log.WithField("error", err.Error()).Warn("upstream request failed")
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			lastErr = fmt.Errorf("reading body: %w", err)
			return lastErr
		}
		log.WithField("http_status", resp.StatusCode).Debug("upstream responded")

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("upstream server error %d: %s", resp.StatusCode, truncate(body))
			return lastErr
		}
		if resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, truncate(body))
			return backoff.Permanent(lastErr)
		}

		var env types.Envelope[T]
		if err := json.Unmarshal(body, &env); err != nil {
			lastErr = fmt.Errorf("json decode error: %v body=%s", err, truncate(body))
			return lastErr
		}
		if !env.Success {
			msg := env.Error
			if msg == "" {
				msg = "success=false"
			}
			lastErr = fmt.Errorf("upstream rejected request: %s", msg)
			return backoff.Permanent(lastErr)
		}
		out = env
		lastErr = nil
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.maxRetry
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return out, fmt.Errorf("GET %s: %w", path, lastErr)
	}
	return out, nil
}

func truncate(b []byte) string {
	const max = 200
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "..."
}
