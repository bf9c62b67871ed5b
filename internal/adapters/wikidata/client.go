package wikidata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go"
	"github.com/knakk/sparql"

	"github.com/parisfoot/idfplayers/internal/domain/normalize"
	"github.com/parisfoot/idfplayers/pkg/logger"
	"github.com/parisfoot/idfplayers/pkg/metrics"
)

// Default client configuration constants.
const (
	// DefaultEndpoint is the public Wikidata query service.
	DefaultEndpoint = "https://query.wikidata.org/sparql"

	// defaultUserAgent identifies the project as the endpoint usage policy
	// requires. Override it with contact details for production runs.
	defaultUserAgent = "idfplayers-dataset/1.0 (research project; see repository)"

	defaultTimeout    = 120 * time.Second
	defaultAttempts   = 3
	defaultRetryDelay = 5 * time.Second

	acceptResultsJSON = "application/sparql-results+json"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithEndpoint sets the SPARQL endpoint URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithUserAgent sets the client identification header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithRetry sets the bounded in-process retry policy for transient failures.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
		if delay > 0 {
			c.retryDelay = delay
		}
	}
}

// WithBuilder sets the query builder.
func WithBuilder(b *Builder) Option {
	return func(c *Client) {
		if b != nil {
			c.builder = b
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// Client executes queries against the endpoint. It keeps no state between
// calls; pacing between département batches belongs to the caller.
type Client struct {
	endpoint   string
	userAgent  string
	http       *http.Client
	builder    *Builder
	attempts   uint
	retryDelay time.Duration
	log        logger.Logger
}

// New creates a Client with default configuration unless overridden.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		userAgent:  defaultUserAgent,
		http:       &http.Client{Timeout: defaultTimeout},
		builder:    NewBuilder(),
		attempts:   defaultAttempts,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryDepartment runs the players query for one département code and returns
// the raw solution rows. Failures come back as a *CollectionError carrying the
// code, so the batch loop can record it and move on.
func (c *Client) QueryDepartment(ctx context.Context, code string) ([]normalize.Row, error) {
	query, err := c.builder.PlayersByDepartment(code)
	if err != nil {
		return nil, &CollectionError{Department: code, Err: err}
	}

	metrics.IncQuery(code)
	start := time.Now()
	rows, err := c.selectRows(ctx, query)
	metrics.ObserveQueryDuration(time.Since(start).Seconds())
	if err != nil {
		metrics.IncQueryFailure(code)
		return nil, &CollectionError{Department: code, Err: err}
	}
	return rows, nil
}

// Probe reports whether the endpoint currently answers the cheapest possible
// query. Used by the manual retry pass to check that throttling has lifted.
func (c *Client) Probe(ctx context.Context) bool {
	query, err := c.builder.Probe()
	if err != nil {
		return false
	}
	_, err = c.execute(ctx, query)
	return err == nil
}

// selectRows executes a query with the bounded retry policy.
func (c *Client) selectRows(ctx context.Context, query string) ([]normalize.Row, error) {
	var res *sparql.Results
	err := retry.Do(
		func() error {
			r, err := c.execute(ctx, query)
			if err != nil {
				return err
			}
			res = r
			return nil
		},
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			metrics.IncQueryRetry()
			if c.log != nil {
				c.log.Warn(ctx, "retrying query", logger.Int("attempt", int(n)+1), logger.Error(err))
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	solutions := res.Solutions()
	rows := make([]normalize.Row, 0, len(solutions))
	for _, solution := range solutions {
		row := make(normalize.Row, len(solution))
		for name, term := range solution {
			row[name] = term.String()
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// execute performs one HTTP round-trip and parses the bindings payload.
func (c *Client) execute(ctx context.Context, query string) (*sparql.Results, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptResultsJSON)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// network errors and client timeouts are worth one more try
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// parsed below
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: HTTP %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: HTTP %d", ErrTransient, resp.StatusCode)
	default:
		return nil, fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
	}

	res, err := sparql.ParseJSON(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse bindings payload: %w", err)
	}
	return res, nil
}

// isRetryable keeps the retry loop to transient kinds; malformed payloads and
// cancelled contexts fail immediately.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return errors.Is(err, ErrTransient) || errors.Is(err, ErrRateLimited)
}
