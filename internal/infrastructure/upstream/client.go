package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bytedance/sonic"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

const (
	workspaceHeader = "Comet-Workspace"
	maxBodyBytes    = 32 << 20
	defaultTimeout  = 10 * time.Second
	defaultBackoff  = 100 * time.Millisecond
	maxMessageBytes = 200
)

// errDecode marks a 2xx body that is not the expected JSON. Asking again
// returns the same body, so it is not retried.
var errDecode = errors.New("decode upstream body")

type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries uint64
	// Backoff is the first retry delay; later delays grow exponentially.
	Backoff    time.Duration
	HTTPClient *http.Client
}

// Client talks to the platform REST API.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	http       *http.Client
	maxRetries uint64
	backoff    time.Duration
	log        *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("upstream base url is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse upstream base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("upstream base url %q must be absolute", cfg.BaseURL)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		http:       hc,
		maxRetries: cfg.MaxRetries,
		backoff:    backoff,
		log:        log,
	}, nil
}

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// getJSON performs a GET and decodes the body into out. Transport errors,
// 5xx and 429 are retried with exponential backoff.
func (c *Client) getJSON(ctx context.Context, path, workspace string, query url.Values, out any) error {
	u := *c.baseURL
	u.Path = u.Path + path
	u.RawQuery = query.Encode()
	target := u.String()

	b := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.backoff))

	attempt := 0
	return retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		err := c.do(ctx, target, workspace, out)
		if err == nil {
			return nil
		}

		var se *StatusError
		if errors.As(err, &se) && !se.Temporary() {
			return err
		}
		if errors.Is(err, errDecode) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}

		c.log.Debug("upstream request failed",
			zap.String("url", target),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return retry.RetryableError(err)
	})
}

func (c *Client) do(ctx context.Context, target, workspace string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if workspace != "" {
		req.Header.Set(workspaceHeader, workspace)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read upstream body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", errDecode, err)
	}
	return nil
}

// errorMessage extracts the backend's error text, which comes either as
// {"errors":[...]} or {"message":"..."}.
func errorMessage(body []byte) string {
	var payload struct {
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	if err := sonic.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if len(payload.Errors) > 0 {
			return strings.Join(payload.Errors, "; ")
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxMessageBytes {
		cut := maxMessageBytes
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut]
	}
	return msg
}
