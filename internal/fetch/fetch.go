// Package fetch provides the rate-limited HTTP client used against the
// statistics site. The site sits behind Cloudflare, so the client carries a
// browser user-agent and the cloudflare-bp transport; requests are spaced by
// a single shared limiter because everything targets one host.
package fetch

import (
	"context"
	"math"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pitchside/transfer-cli/internal/config"
)

// ErrNotFound is returned for 404 responses. Index pages for unused letter
// prefixes legitimately 404, so callers can treat this as "no data".
var ErrNotFound = eris.New("fetch: page not found")

// Client fetches pages with rate limiting, retries, and Cloudflare bypass.
type Client struct {
	http       *resty.Client
	limiter    *rate.Limiter
	maxRetries int
}

// New builds a Client from scrape configuration. A delay of N seconds
// becomes a 1/N requests-per-second limiter with burst 1, matching the
// fixed inter-request delay the site tolerates.
func New(cfg config.ScrapeConfig) *Client {
	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetTimeout(cfg.Timeout())
	client.SetHeader("User-Agent", cfg.UserAgent)
	if jar, err := cookiejar.New(nil); err == nil {
		client.SetCookieJar(jar)
	}
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	delay := cfg.Delay()
	if delay <= 0 {
		delay = time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 3
	}

	return &Client{
		http:       client,
		limiter:    rate.NewLimiter(rate.Every(delay), 1),
		maxRetries: maxRetries,
	}
}

// Get fetches a URL (absolute, or relative to the configured base) and
// returns the body. Retries transient failures (network errors, 429, 5xx)
// with exponential backoff and jitter; 404 maps to ErrNotFound without
// retrying.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "fetch: rate limiter wait")
		}

		resp, err := c.http.R().SetContext(ctx).Get(url)
		if err != nil {
			lastErr = err
			zap.L().Warn("fetch: request failed, retrying",
				zap.String("url", url),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			c.backoff(ctx, attempt)
			continue
		}

		switch {
		case resp.StatusCode() == http.StatusOK:
			return resp.Body(), nil

		case resp.StatusCode() == http.StatusNotFound:
			return nil, eris.Wrapf(ErrNotFound, "%s", url)

		case resp.StatusCode() == http.StatusTooManyRequests:
			lastErr = eris.Errorf("fetch: http 429 from %s", url)
			zap.L().Warn("fetch: rate limited (429), backing off",
				zap.String("url", url),
				zap.Int("attempt", attempt+1),
			)
			c.backoff(ctx, attempt)

		case resp.StatusCode() >= 500:
			lastErr = eris.Errorf("fetch: http %d from %s", resp.StatusCode(), url)
			zap.L().Warn("fetch: server error, retrying",
				zap.String("url", url),
				zap.Int("status", resp.StatusCode()),
				zap.Int("attempt", attempt+1),
			)
			c.backoff(ctx, attempt)

		default:
			return nil, eris.Errorf("fetch: unexpected status %d from %s", resp.StatusCode(), url)
		}
	}

	return nil, eris.Wrap(lastErr, "fetch: all retries exhausted")
}

func (c *Client) backoff(ctx context.Context, attempt int) {
	base := time.Second
	maxBackoff := 30 * time.Second
	d := time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	if d > maxBackoff {
		d = maxBackoff
	}
	d += time.Duration(rand.Int63n(int64(d) / 2))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
