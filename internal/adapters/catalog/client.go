// Package catalog provides a resilient client for the API catalog upstream
package catalog

import (
	"context"
	json "encoding/json/v2"
	"io"
	"net/http"
	"net/url"
	"time"

	perr "devportal/internal/platform/errors"
	"devportal/internal/platform/logger"
	"devportal/internal/platform/metrics"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUA        = "devportal-api"
	defaultMaxRetry  = 3
	defaultRetryBase = 250 * time.Millisecond
	maxBodyBytes     = 1 << 20
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transport and transient upstream failures
	MaxRetries int
	RetryBase  time.Duration

	// Metrics is optional, nil disables instrumentation
	Metrics metrics.Metrics
}

// Client is a minimal catalog REST client with retries
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	met   metrics.Metrics
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	met := o.Metrics
	if met == nil {
		met = metrics.Noop{}
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("catalog"),
		met:   met,
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Definitions lists the API definitions visible to email
// an empty email omits the parameter so the catalog applies anonymous visibility
func (c *Client) Definitions(ctx context.Context, email string) ([]Extended, error) {
	u := c.opts.BaseURL + "/definitions"
	if email != "" {
		u += "?email=" + url.QueryEscape(email)
	}
	resp, err := c.do(ctx, u)
	if err != nil {
		return nil, err
	}
	defer c.closeBody(resp, u)

	if resp.StatusCode == http.StatusNotFound {
		// the list endpoint answers an empty array for an empty catalog
		// a 404 here means the base url is wrong
		return nil, perr.Unavailablef("catalog definitions endpoint missing")
	}

	var out []Extended
	if err := decode(resp.Body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Definition fetches the extended definition for one service
// a 404 maps to not-found so unknown service and unknown version look alike downstream
func (c *Client) Definition(ctx context.Context, serviceName, email string) (*Extended, error) {
	u := c.opts.BaseURL + "/definitions/" + url.PathEscape(serviceName)
	if email != "" {
		u += "?email=" + url.QueryEscape(email)
	}
	resp, err := c.do(ctx, u)
	if err != nil {
		return nil, err
	}
	defer c.closeBody(resp, u)

	if resp.StatusCode == http.StatusNotFound {
		return nil, perr.NotFoundf("api definition %q not found", serviceName)
	}

	var out Extended
	if err := decode(resp.Body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do issues a GET with retries for transport and transient server failures
// 200 and 404 come back to the caller, everything else becomes an error
func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "catalog new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			c.met.ObserveUpstream("catalog", "transport", lat.Seconds())
			if !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "catalog do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("catalog transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.met.ObserveUpstream("catalog", statusResult(resp.StatusCode), lat.Seconds())
		c.log.Debug().
			Str("url", url).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("catalog http response")

		switch resp.StatusCode {
		case http.StatusOK, http.StatusNotFound:
			return resp, nil
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			if !c.shouldRetry(attempts) {
				_ = drainAndClose(resp.Body)
				return nil, perr.Unavailablef("catalog transient server error")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("catalog transient error retrying")
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++
			continue
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return nil, perr.Newf(perr.ErrorCodeUnavailable, "catalog unexpected status %d body %s", resp.StatusCode, string(body))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	// simple exponential with cap
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	max := int64(10 * time.Second / time.Millisecond)
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

func (c *Client) closeBody(resp *http.Response, url string) {
	if err := resp.Body.Close(); err != nil {
		c.log.Error().Err(err).Str("url", url).Msg("catalog close body failed")
	}
}

func statusResult(status int) string {
	switch {
	case status == http.StatusNotFound:
		return "not_found"
	case status >= 200 && status < 300:
		return "ok"
	case status >= 500:
		return "server_error"
	default:
		return "unexpected"
	}
}

func decode(r io.Reader, v any) error {
	b, err := io.ReadAll(io.LimitReader(r, maxBodyBytes))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "catalog read body failed")
	}
	if err := json.Unmarshal(b, v); err != nil {
		return perr.JSONErrf("catalog payload: %v", err)
	}
	return nil
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
