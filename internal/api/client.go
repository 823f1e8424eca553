// Package api is a typed client for the catalog REST backend. Every entity
// the admin panel manages has its own file with the calls it needs.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"vodadmin/internal/metrics"
)

const maxBodyBytes = 8 << 20

// TokenSource yields the bearer token for outgoing calls. The admin
// session implements it; the CLI uses StaticToken.
type TokenSource interface {
	Token() string
}

type StaticToken string

func (t StaticToken) Token() string { return string(t) }

type Options struct {
	BaseURL         string
	Timeout         time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration
	HTTPClient      *http.Client
	Logger          zerolog.Logger
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	breaker *gobreaker.CircuitBreaker[[]byte]
	log     zerolog.Logger
}

func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	failures := opts.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	log := opts.Logger
	name := "catalog-api"
	metrics.BreakerState.WithLabelValues(name).Set(0)

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("backend breaker state change")
			metrics.BreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    httpClient,
		breaker: breaker,
		log:     log,
	}
}

// WithToken returns a client that authenticates as ts. The copy shares the
// transport and circuit breaker with c.
func (c *Client) WithToken(ts TokenSource) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

func (c *Client) BaseURL() string { return c.baseURL }

// BreakerState reports the backend breaker as "closed", "half-open" or "open".
func (c *Client) BreakerState() string { return c.breaker.State().String() }

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	raw, err := c.call(ctx, op, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := decodeData(raw, out); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}
	return nil
}

// getRaw is for endpoints whose payload sits next to "data" (paging, flags).
func (c *Client) getRaw(ctx context.Context, op, path string, query url.Values, out any) error {
	raw, err := c.call(ctx, op, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, op, method, path string, body, out any) error {
	raw, err := c.call(ctx, op, method, path, nil, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := decodeData(raw, out); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, op, method, path string, query url.Values, body any) ([]byte, error) {
	start := time.Now()
	raw, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, method, path, query, body)
	})
	metrics.BackendRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	metrics.BackendRequests.WithLabelValues(op, outcome(err)).Inc()

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	if err != nil {
		c.log.Debug().Err(err).Str("op", op).Str("method", method).Str("path", path).Msg("backend call failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return raw, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var rdr io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		rdr = bytes.NewReader(payload)
	}
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode, Message: backendMessage(data)}
	}
	return data, nil
}

// countsAsSuccess keeps client-side mistakes and auth failures from
// tripping the breaker; only transport errors and 5xx do.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status < 500
	}
	return false
}

func outcome(err error) string {
	var se *StatusError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.As(err, &se):
		return "status_" + fmt.Sprint(se.Status/100) + "xx"
	default:
		return "error"
	}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	}
	return -1
}
