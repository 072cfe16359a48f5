// internal/adapters/hotelos/client.go
package hotelos

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"hotelos_gateway/internal/adapters/observability"
	"hotelos_gateway/internal/domain"
)

// Tracker is told when a backend call starts and ends.
type Tracker interface {
	Show()
	Hide()
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	RPS     int
	Logging bool
	Tracker Tracker
}

// Client is the single configured client for every HotelOS controller group.
// The bearer token travels in the request context, see WithToken.
type Client struct {
	base    string
	hc      *http.Client
	rl      *rate.Limiter
	cb      *gobreaker.CircuitBreaker
	logging bool
	tracker Tracker
}

func New(o Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(o.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if o.RPS <= 0 {
		o.RPS = 20
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	c := &Client{
		base:    base,
		hc:      &http.Client{Timeout: o.Timeout},
		rl:      rate.NewLimiter(rate.Limit(o.RPS), o.RPS),
		logging: o.Logging,
		tracker: o.Tracker,
	}
	c.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "hotelos",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// caller mistakes must not open the circuit
		IsSuccessful: func(err error) bool {
			return err == nil || !isTransient(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})
	if c.logging {
		log.Info().Str("base", base).Dur("timeout", o.Timeout).Int("rps", o.RPS).Msg("hotelos client initialized")
	}
	return c, nil
}

type tokenKey struct{}

// WithToken attaches the caller's bearer token to ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFrom(ctx context.Context) string {
	s, _ := ctx.Value(tokenKey{}).(string)
	return s
}

// ---- Internals ----

// ErrCircuitOpen is returned without calling the backend while the breaker is open.
var ErrCircuitOpen = domain.ErrUnavailable

type remoteError struct{ status int }

func (e *remoteError) Error() string { return fmt.Sprintf("remote %d", e.status) }

// isTransient is true for failures that say nothing about the request itself.
func isTransient(err error) bool {
	var re *remoteError
	if errors.As(err, &re) {
		return true
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return false
	}
	return !errors.Is(err, domain.ErrNotFound) && !domain.IsAuthError(err) &&
		!errors.Is(err, context.Canceled)
}

type request struct {
	op     string // metrics label, e.g. "GET /api/hotels/{id}"
	method string
	path   string
	query  url.Values
	body   any
	// raw overrides body; used for multipart uploads
	raw         []byte
	contentType string
}

func (c *Client) call(ctx context.Context, r request, out any) error {
	if c.tracker != nil {
		c.tracker.Show()
		defer c.tracker.Hide()
	}
	_, err := c.cb.Execute(func() (any, error) {
		return nil, c.do(ctx, r, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s: %w", r.op, ErrCircuitOpen)
	}
	return err
}

// idempotent reports whether a call may be repeated after the backend may
// already have acted on it.
func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

func retryable(method string, status int) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	if !idempotent(method) {
		return false
	}
	switch status {
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// do performs one logical call with client-side rate limiting, retries, and
// JSON decode into out. Retries on 429 and transient 5xx, honoring Retry-After.
func (c *Client) do(ctx context.Context, r request, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var payload []byte
	contentType := r.contentType
	switch {
	case r.raw != nil:
		payload = r.raw
	case r.body != nil:
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", r.op, err)
		}
		payload = b
		contentType = "application/json"
	}

	u := c.base + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	token := TokenFrom(ctx)

	var lastErr error
	for i := 0; i < 4; i++ {
		// build a fresh request each attempt
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, r.method, u, body)
		if err != nil {
			return err
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "hotelos-gateway/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("hotelos", r.op, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			// a timed out POST may still have been applied
			if i < 3 && r.raw == nil && idempotent(r.method) && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("hotelos", r.op, resp.StatusCode, time.Since(start))
		if c.logging {
			log.Debug().Str("op", r.op).Str("url", u).Int("status", resp.StatusCode).
				Dur("duration", time.Since(start)).Bool("auth", token != "").Msg("hotelos call")
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			defer resp.Body.Close()
			if out == nil || resp.StatusCode == http.StatusNoContent {
				io.Copy(io.Discard, resp.Body)
				return nil
			}
			b, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			if len(bytes.TrimSpace(b)) == 0 {
				return nil
			}
			if err := json.Unmarshal(b, out); err != nil {
				return fmt.Errorf("%s: decode response: %w", r.op, err)
			}
			return nil

		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close()
			return fmt.Errorf("%s: %w", r.op, domain.ErrNotFound)

		case resp.StatusCode == http.StatusUnauthorized:
			resp.Body.Close()
			return fmt.Errorf("%s: %w", r.op, domain.ErrUnauthorized)

		case resp.StatusCode == http.StatusForbidden:
			resp.Body.Close()
			return fmt.Errorf("%s: %w", r.op, domain.ErrForbidden)

		case retryable(r.method, resp.StatusCode) && r.raw == nil:
			// Prefer server-provided Retry-After; otherwise exponential backoff.
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = &remoteError{status: resp.StatusCode}
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
			resp.Body.Close()
			return parseValidation(resp.StatusCode, b)

		default:
			// read a small error body for diagnostics
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			log.Warn().Str("op", r.op).Int("status", resp.StatusCode).Str("body", strings.TrimSpace(string(b))).Msg("hotelos call failed")
			return &remoteError{status: resp.StatusCode}
		}
	}

	return lastErr
}

// parseValidation turns a 4xx body into a ValidationError. The backend sends
// either {"message": "..."} or a flat {"field": "message"} object.
func parseValidation(status int, body []byte) error {
	ve := &domain.ValidationError{Status: status}
	res := gjson.ParseBytes(body)
	switch {
	case res.IsObject() && res.Get("message").Type == gjson.String && res.Get("message").String() != "":
		ve.Message = res.Get("message").String()
	case res.IsObject():
		fields := map[string]string{}
		res.ForEach(func(k, v gjson.Result) bool {
			if v.Type == gjson.String {
				fields[k.String()] = v.String()
			}
			return true
		})
		if len(fields) > 0 {
			ve.Fields = fields
		}
	default:
		ve.Message = strings.TrimSpace(string(body))
	}
	if ve.Message == "" && len(ve.Fields) == 0 {
		ve.Message = http.StatusText(status)
	}
	return ve
}

// sleepCtx waits for d or returns early if ctx is done. It does not start a
// wait that would outlast the context deadline.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	if dl, ok := ctx.Deadline(); ok && time.Until(dl) < d {
		return false
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential delay (200ms, 400ms, 800ms...) with up to
// +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}

func pageValues(pg domain.PageQuery) url.Values {
	v := url.Values{}
	size := pg.Size
	if size <= 0 {
		size = 10
	}
	page := pg.Page
	if page < 0 {
		page = 0
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("size", strconv.Itoa(size))
	return v
}

func idPath(format string, ids ...int64) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return fmt.Sprintf(format, args...)
}
