// Package identity provides the client for the session identity upstream
package identity

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
	defaultTimeout   = 5 * time.Second
	defaultUA        = "devportal-api"
	defaultMaxRetry  = 2
	defaultRetryBase = 200 * time.Millisecond
	maxBodyBytes     = 64 << 10
)

// Session is the identity upstream's record for a live session
type Session struct {
	SessionID string `json:"sessionId"`
	Email     string `json:"email"`
}

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	MaxRetries int
	RetryBase  time.Duration

	// Metrics is optional, nil disables instrumentation
	Metrics metrics.Metrics
}

// Client talks to the identity service over REST
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
		log:   *logger.Named("identity"),
		met:   met,
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// FetchSession resolves a session id to its live session record
// a 404 maps to session-invalid, transport trouble maps to unavailable
func (c *Client) FetchSession(ctx context.Context, sessionID string) (*Session, error) {
	u := c.opts.BaseURL + "/sessions/" + url.PathEscape(sessionID)

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "identity new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			c.met.ObserveUpstream("identity", "transport", lat.Seconds())
			if !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "identity do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("identity transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		switch resp.StatusCode {
		case http.StatusOK:
			c.met.ObserveUpstream("identity", "ok", lat.Seconds())
			var out Session
			b, rerr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			if cerr := resp.Body.Close(); cerr != nil {
				c.log.Error().Err(cerr).Msg("identity close body failed")
			}
			if rerr != nil {
				return nil, perr.Wrapf(rerr, perr.ErrorCodeUnavailable, "identity read body failed")
			}
			if err := json.Unmarshal(b, &out); err != nil {
				return nil, perr.JSONErrf("identity payload: %v", err)
			}
			return &out, nil
		case http.StatusNotFound:
			c.met.ObserveUpstream("identity", "not_found", lat.Seconds())
			_ = drainAndClose(resp.Body)
			return nil, perr.SessionInvalidf("session not recognised")
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			c.met.ObserveUpstream("identity", "server_error", lat.Seconds())
			if !c.shouldRetry(attempts) {
				_ = drainAndClose(resp.Body)
				return nil, perr.Unavailablef("identity transient server error")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("identity transient error retrying")
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++
			continue
		default:
			c.met.ObserveUpstream("identity", "unexpected", lat.Seconds())
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return nil, perr.Newf(perr.ErrorCodeUnavailable, "identity unexpected status %d body %s", resp.StatusCode, string(body))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	ms := int64(c.opts.RetryBase / time.Millisecond)
	ms = ms << uint(attempt)
	max := int64(5 * time.Second / time.Millisecond)
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
