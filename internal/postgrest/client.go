package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

const objectMediaType = "application/vnd.pgrst.object+json"

// Config holds the connection settings of a PostgREST endpoint.
type Config struct {
	URL            string
	APIKey         string
	Timeout        time.Duration
	BreakerTimeout time.Duration
	// MaxFailures is the number of consecutive failures tolerated before the
	// breaker opens.
	MaxFailures uint32
}

// DefaultConfig returns a config with the client defaults and no endpoint.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		BreakerTimeout: 5 * time.Second,
		MaxFailures:    3,
	}
}

// Client talks to the REST interface of a Supabase or PostgREST server.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient creates a client. A nil logger discards breaker state changes.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = def.BreakerTimeout
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = def.MaxFailures
	}

	base := strings.TrimRight(cfg.URL, "/")
	if base != "" && !strings.HasPrefix(base, "http") {
		base = "https://" + base
	}

	maxFailures := cfg.MaxFailures
	return &Client{
		baseURL: base + "/rest/v1",
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
		http:    &http.Client{},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "postgrest",
			MaxRequests: 1,
			Timeout:     cfg.BreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > maxFailures
			},
			IsSuccessful: func(err error) bool {
				return err == nil || clientError(err) || errors.Is(err, ErrNotFound)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state change",
					"breaker", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

// Select runs q and decodes the result into out: a slice for list queries,
// a struct pointer for Single queries.
func (c *Client) Select(ctx context.Context, q *Query, out any) error {
	body, err := c.do(ctx, http.MethodGet, q, nil)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Insert posts rows (a struct or a slice of structs) to table and decodes the
// created representation into out when out is non-nil.
func (c *Client) Insert(ctx context.Context, table string, rows, out any) error {
	body, err := c.do(ctx, http.MethodPost, From(table), rows)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Update patches every row q matches and decodes the updated rows into out
// when out is non-nil.
func (c *Client) Update(ctx context.Context, q *Query, patch, out any) error {
	body, err := c.do(ctx, http.MethodPatch, q, patch)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Delete removes every row q matches and decodes the deleted rows into out
// when out is non-nil.
func (c *Client) Delete(ctx context.Context, q *Query, out any) error {
	body, err := c.do(ctx, http.MethodDelete, q, nil)
	if err != nil {
		return err
	}
	return decode(body, out)
}

func (c *Client) do(ctx context.Context, method string, q *Query, payload any) ([]byte, error) {
	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.send(ctx, method, q, payload)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrUnavailable
		}
		return nil, err
	}
	return res.([]byte), nil
}

func (c *Client) send(ctx context.Context, method string, q *Query, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+q.Path(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")
	if q.single {
		req.Header.Set("Accept", objectMediaType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, q.table, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if q.single && resp.StatusCode == http.StatusNotAcceptable {
			return nil, fmt.Errorf("%s: %w", q.table, ErrNotFound)
		}
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(body, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return nil, apiErr
	}
	return body, nil
}

func decode(body []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
