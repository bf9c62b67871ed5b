// Package hub uploads the exported dataset to a hosted dataset registry.
//
// The registry speaks the Hugging Face Hub HTTP API: one call to create the
// dataset repository (idempotent) and one NDJSON commit call carrying every
// file as a base64 payload. Only those two endpoints are used, so the client
// is a thin net/http wrapper rather than a full SDK binding.
package hub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/avast/retry-go"

	"github.com/parisfoot/idfplayers/pkg/logger"
)

const (
	// DefaultEndpoint is the public Hugging Face Hub.
	DefaultEndpoint = "https://huggingface.co"

	defaultTimeout  = 60 * time.Second
	defaultAttempts = 3
	defaultDelay    = 5 * time.Second
)

// Option is the option pattern function prototype for Client.
type Option func(*Client)

// WithEndpoint overrides the registry base URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithToken sets the write token used as a bearer credential.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout bounds one HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRetry sets the bounded retry applied to transient failures.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
		if delay > 0 {
			c.delay = delay
		}
	}
}

// WithLogger sets the logger for the client.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// Client talks to the dataset registry.
type Client struct {
	endpoint string
	token    string
	attempts uint
	delay    time.Duration
	http     *http.Client
	log      logger.Logger
}

// New creates a registry client. A token is required for every operation;
// constructing without one is allowed so status-style callers can still
// build the client, but calls will fail with ErrNoToken.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		attempts: defaultAttempts,
		delay:    defaultDelay,
		http:     &http.Client{Timeout: defaultTimeout},
		log:      logger.Get().Named("hub"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EnsureRepo creates the dataset repository if it does not exist yet.
// An already-existing repository is not an error.
func (c *Client) EnsureRepo(ctx context.Context, repo string) error {
	if c.token == "" {
		return ErrNoToken
	}

	owner, name := splitRepo(repo)
	body, err := json.Marshal(map[string]string{
		"type":         "dataset",
		"organization": owner,
		"name":         name,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpload, err)
	}

	return c.withRetry(ctx, "create repo", func() error {
		status, payload, err := c.post(ctx, "/api/repos/create", "application/json", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUpload, err)
		}
		switch {
		case status == http.StatusOK || status == http.StatusCreated:
			return nil
		case status == http.StatusConflict:
			// repository already exists
			return nil
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			return fmt.Errorf("%w: status %d", ErrUnauthorized, status)
		default:
			return fmt.Errorf("%w: create repo status %d: %s", ErrUpload, status, trim(payload))
		}
	})
}

// UploadFolder commits every regular file directly under dir to the dataset
// repository in a single commit. File names become repository paths as-is.
func (c *Client) UploadFolder(ctx context.Context, repo, dir, message string) error {
	if c.token == "" {
		return ErrNoToken
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpload, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return fmt.Errorf("%w: nothing to upload in %s", ErrUpload, dir)
	}

	payload, err := commitPayload(dir, names, message)
	if err != nil {
		return err
	}

	c.log.Info(ctx, "uploading dataset",
		logger.String("repo", repo),
		logger.Int("files", len(names)))

	path := fmt.Sprintf("/api/datasets/%s/commit/main", repo)
	return c.withRetry(ctx, "commit", func() error {
		status, resp, err := c.post(ctx, path, "application/x-ndjson", bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUpload, err)
		}
		switch {
		case status == http.StatusOK || status == http.StatusCreated:
			return nil
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			return fmt.Errorf("%w: status %d", ErrUnauthorized, status)
		default:
			return fmt.Errorf("%w: commit status %d: %s", ErrUpload, status, trim(resp))
		}
	})
}

// commitPayload builds the NDJSON commit body: a header line followed by one
// base64 file line per upload.
func commitPayload(dir string, names []string, message string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	header := map[string]interface{}{
		"key": "header",
		"value": map[string]string{
			"summary":     message,
			"description": "",
		},
	}
	if err := enc.Encode(header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpload, err)
		}
		line := map[string]interface{}{
			"key": "file",
			"value": map[string]string{
				"path":     name,
				"encoding": "base64",
				"content":  base64.StdEncoding.EncodeToString(content),
			},
		}
		if err := enc.Encode(line); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpload, err)
		}
	}
	return buf.Bytes(), nil
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, payload, nil
}

func (c *Client) withRetry(ctx context.Context, op string, fn func() error) error {
	return retry.Do(fn,
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			// credential problems never heal on retry
			return !isPermanent(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn(ctx, "retrying hub call",
				logger.String("op", op),
				logger.Int("attempt", int(n)+1),
				logger.Error(err))
		}),
	)
}

func isPermanent(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return true
	default:
		return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNoToken)
	}
}

// splitRepo separates "owner/name" into its parts. A bare name keeps an
// empty owner, which the registry resolves to the token's namespace.
func splitRepo(repo string) (owner, name string) {
	for i := 0; i < len(repo); i++ {
		if repo[i] == '/' {
			return repo[:i], repo[i+1:]
		}
	}
	return "", repo
}

func trim(payload []byte) string {
	const max = 200
	if len(payload) > max {
		payload = payload[:max]
	}
	return string(payload)
}
