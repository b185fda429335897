package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hltv-tracker/internal/constants"
	"hltv-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// Browser-like request profile. Best-effort mitigation against automated
// traffic fingerprinting, not a bypass guarantee.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

var browserHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Sec-Fetch-Dest":  "document",
	"Sec-Fetch-Mode":  "navigate",
	"Sec-Fetch-Site":  "none",
}

type Client struct {
	client      *fasthttp.Client
	maxAttempts int
	backoff     Backoff
	logger      zerolog.Logger
}

func New(logger zerolog.Logger) *Client {
	return &Client{
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.FetchTimeout,
			WriteTimeout:        constants.FetchTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		maxAttempts: constants.FetchMaxAttempts,
		backoff:     LinearBackoff,
		logger:      logger,
	}
}

// Fetch retrieves url with the browser profile, retrying blocked responses,
// other non-200s and transport errors within the attempt budget. After
// exhaustion it returns an error wrapping ErrBlocked or ErrUnavailable;
// callers propagate either as "no data available", never as a hard error to
// the end user.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	var body string

	err := Attempt(ctx, c.maxAttempts, c.backoff, func() error {
		b, err := c.doRequest(ctx, url)
		if err != nil {
			c.logger.Warn().Err(err).Str("url", url).Msg("request failed")
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrBlocked) {
			return "", fmt.Errorf("fetch %s: %w", url, domain.ErrBlocked)
		}
		return "", fmt.Errorf("fetch %s: %w", url, domain.ErrUnavailable)
	}
	return body, nil
}

func (c *Client) doRequest(ctx context.Context, url string) (string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(userAgent)
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	deadline := time.Now().Add(constants.FetchTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return "", err
	}

	switch code := resp.StatusCode(); code {
	case fasthttp.StatusOK:
		return string(resp.Body()), nil
	case fasthttp.StatusForbidden:
		return "", fmt.Errorf("status 403: %w", domain.ErrBlocked)
	default:
		return "", fmt.Errorf("unexpected status %d", code)
	}
}
