package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"market-client/internal/pkg/clock"
	"market-client/internal/pkg/config"
	"market-client/internal/pkg/cookie"
	"market-client/internal/pkg/errs"
	"market-client/internal/pkg/jwt"
)

const (
	maxBodyBytes    = 8 << 20
	requestIDHeader = "X-Request-ID"
)

// Client performs one backend call per operation and classifies every failure into
// exactly one errs.Kind. It knows nothing about caching.
type Client struct {
	http      *http.Client
	base      *url.URL
	limiter   *rate.Limiter
	token     string
	userAgent string
	inspector *jwt.Inspector
	validate  *validator.Validate
	clock     clock.Clock
	logger    *slog.Logger
}

func NewClient(cfg config.Config, clk clock.Clock, logger *slog.Logger) (*Client, error) {
	base, err := cfg.Remote.ParseBaseURL()
	if err != nil {
		return nil, errs.Wrap(err, "remote client")
	}
	jar, err := cookie.NewSessionJar(base, cfg.Auth)
	if err != nil {
		return nil, errs.Wrap(err, "session cookie jar")
	}

	var limiter *rate.Limiter
	if cfg.Remote.RateLimit > 0 {
		burst := cfg.Remote.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.Remote.RateLimit), burst)
	}

	return &Client{
		http: &http.Client{
			Timeout: cfg.Remote.Timeout,
			Jar:     jar,
		},
		base:      base,
		limiter:   limiter,
		token:     cfg.Auth.Token,
		userAgent: cfg.Remote.UserAgent,
		inspector: jwt.NewInspector(5 * time.Second),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		clock:     clk,
		logger:    logger,
	}, nil
}

type call struct {
	method string
	path   string
	query  url.Values
	body   any
}

func get(path string, query url.Values) call {
	return call{method: http.MethodGet, path: path, query: query}
}

func post(path string, query url.Values, body any) call {
	return call{method: http.MethodPost, path: path, query: query, body: body}
}

func del(path string, body any) call {
	return call{method: http.MethodDelete, path: path, body: body}
}

// fetch runs c and decodes the payload into T, failing closed on anything that does not
// validate.
func fetch[T any](ctx context.Context, cl *Client, c call) (T, error) {
	var out T
	body, err := cl.do(ctx, c)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, errs.WithKind(err, errs.KindUnknown, NameMalformedResponse, "undecodable response from "+c.path)
	}
	if err := cl.check(out); err != nil {
		return out, errs.WithKind(err, errs.KindUnknown, NameMalformedResponse, "invalid response from "+c.path)
	}
	return out, nil
}

// exec runs c when only the success matters.
func exec(ctx context.Context, cl *Client, c call) error {
	_, err := cl.do(ctx, c)
	return err
}

func (cl *Client) check(v any) error {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Struct:
		return cl.validate.Struct(v)
	case reflect.Slice:
		return cl.validate.Var(v, "dive")
	default:
		return nil
	}
}

func (cl *Client) do(ctx context.Context, c call) ([]byte, error) {
	if err := cl.checkToken(); err != nil {
		return nil, err
	}
	if cl.limiter != nil {
		if err := cl.limiter.Wait(ctx); err != nil {
			return nil, errs.WithKind(err, errs.KindNetwork, NameNetworkError, "request not sent")
		}
	}

	req, err := cl.newRequest(ctx, c)
	if err != nil {
		return nil, errs.WithKind(err, errs.KindUnknown, NameRequestError, "build request")
	}
	requestID := req.Header.Get(requestIDHeader)
	start := cl.clock.Now()

	resp, err := cl.http.Do(req)
	if err != nil {
		cl.logger.Warn("backend unreachable",
			slog.String("request_id", requestID),
			slog.String("method", c.method),
			slog.String("path", c.path),
			slog.String("error", err.Error()))
		return nil, errs.WithKind(err, errs.KindNetwork, NameNetworkError, "backend unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errs.WithKind(err, errs.KindNetwork, NameNetworkError, "read response")
	}

	attrs := []any{
		slog.String("request_id", requestID),
		slog.String("method", c.method),
		slog.String("path", c.path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", cl.clock.Now().Sub(start)),
	}
	if err := classify(resp.StatusCode, body); err != nil {
		cl.logger.Debug("backend call failed", append(attrs,
			slog.String("kind", errs.KindOf(err).String()),
			slog.String("name", errs.NameOf(err)))...)
		return nil, err
	}
	cl.logger.Debug("backend call", attrs...)
	return body, nil
}

// checkToken rejects a bearer token that is already expired so the call never leaves
// the process. Opaque tokens are passed through.
func (cl *Client) checkToken() error {
	if cl.token == "" {
		return nil
	}
	if err := cl.inspector.CheckExpiry(cl.token, cl.clock.Now()); errs.Is(err, jwt.ErrExpiredToken) {
		return errs.WithKind(err, errs.KindAuthRequired, NameTokenExpired, "session token expired")
	}
	return nil
}

func (cl *Client) newRequest(ctx context.Context, c call) (*http.Request, error) {
	u := cl.base.JoinPath(strings.TrimPrefix(c.path, "/"))
	if len(c.query) > 0 {
		u.RawQuery = c.query.Encode()
	}

	var body io.Reader
	if c.body != nil {
		b, err := json.Marshal(c.body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.userAgent != "" {
		req.Header.Set("User-Agent", cl.userAgent)
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	return req, nil
}
