// Package extractor talks to the remote email extraction service.
//
// The service is an opaque HTTP endpoint: it takes a page URL in the "url"
// query parameter and answers with {"emails": [...]}. Each call to Extract is
// a single attempt; nothing is retried or cached.
package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is the public extraction service.
const DefaultEndpoint = "https://email-extractor-0oyz.onrender.com/extract-emails"

// DefaultTimeout bounds one extraction request.
const DefaultTimeout = 10 * time.Second

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Client issues extraction requests.
type Client struct {
	endpoint  string
	timeout   time.Duration
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	logger    *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for a single request. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent to the service.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient replaces the underlying http.Client. Its Timeout is left as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimit spaces requests out to at most r per second.
// A limit of zero or less disables limiting.
func WithRateLimit(r float64) Option {
	return func(c *Client) {
		if r <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(r), 1)
	}
}

// WithLogger sets the logger. Defaults to the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = &l
	}
}

// New creates a Client for the given endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", endpoint)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: missing host", endpoint)
	}

	c := &Client{
		endpoint: endpoint,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	return c, nil
}

// Endpoint returns the configured service URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type response struct {
	Emails []*string `json:"emails"`
}

// Extract asks the service for the email addresses found on target.
// A successful response with no emails returns an empty, non-nil slice.
func (c *Client) Extract(ctx context.Context, target string) ([]string, error) {
	requestID := uuid.NewString()
	logger := c.log().With().Str("request_id", requestID).Str("url", target).Logger()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &Error{Kind: KindNetwork, RequestID: requestID, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(target), nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, RequestID: requestID, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, RequestID: requestID, Err: err}
	}
	defer resp.Body.Close()

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("extraction response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &Error{
			Kind:       KindHTTP,
			StatusCode: resp.StatusCode,
			RequestID:  requestID,
			Err:        fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	emails, err := decode(resp.Body)
	if err != nil {
		kind := KindDecode
		// A body cut short by a timeout or cancellation is a transport failure.
		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
			kind = KindNetwork
		}
		return nil, &Error{Kind: kind, RequestID: requestID, Err: err}
	}
	return emails, nil
}

func (c *Client) requestURL(target string) string {
	u, _ := url.Parse(c.endpoint)
	q := u.Query()
	q.Set("url", target)
	u.RawQuery = q.Encode()
	return u.String()
}

func decode(body io.Reader) ([]string, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxBodySize {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxBodySize)
	}

	var r *response
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errors.New("response is not a JSON object")
	}

	emails := make([]string, 0, len(r.Emails))
	for i, e := range r.Emails {
		if e == nil {
			return nil, fmt.Errorf("emails[%d] is null", i)
		}
		emails = append(emails, *e)
	}
	return emails, nil
}

func (c *Client) log() *zerolog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return &log.Logger
}
