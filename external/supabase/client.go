package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/playerstats/internal/domain/playerstats"
	"github.com/riskibarqy/playerstats/internal/platform/id"
	"github.com/riskibarqy/playerstats/internal/platform/logging"
	"github.com/riskibarqy/playerstats/internal/platform/postgrest"
	"github.com/riskibarqy/playerstats/internal/platform/resilience"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTimeout   = 15 * time.Second
	maxResponseBytes = 8 << 20
)

// wireAPI keeps integer columns as int64 instead of float64.
var wireAPI = sonic.Config{UseInt64: true}.Froze()

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	RequestIDs     id.Generator
}

// Client talks to the PostgREST endpoint of a Supabase project. It makes exactly one attempt per call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logging.Logger
	requestIDs id.Generator
	breaker    *resilience.CircuitBreaker
}

var _ playerstats.Backend = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	requestIDs := cfg.RequestIDs
	if requestIDs == nil {
		requestIDs = id.NewUUIDGenerator()
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("supabase circuit breaker state changed", "from", from, "to", to)
	})

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logger,
		requestIDs: requestIDs,
		breaker:    breaker,
	}
}

// Get returns every row of table matching all filters (column=eq.value).
func (c *Client) Get(ctx context.Context, table string, filters map[string]any) ([]playerstats.Row, error) {
	path, err := postgrest.Select("*").From(table).Where(postgrest.EqAll(filters)...).ToPath()
	if err != nil {
		return nil, crerr.Wrap(err, "build select path")
	}

	raw, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var rows []playerstats.Row
	if len(bytes.TrimSpace(raw)) == 0 {
		return rows, nil
	}
	if err := wireAPI.Unmarshal(raw, &rows); err != nil {
		return nil, crerr.Wrapf(err, "decode %s rows", table)
	}
	return rows, nil
}

// Post inserts record and returns the row the server stored.
func (c *Client) Post(ctx context.Context, table string, record playerstats.Row) (playerstats.Row, error) {
	path, err := postgrest.Table(table)
	if err != nil {
		return nil, crerr.Wrap(err, "build insert path")
	}

	raw, err := c.do(ctx, http.MethodPost, path, record)
	if err != nil {
		return nil, err
	}
	return decodeRepresentation(raw)
}

// Patch updates the row with the given id and returns it as stored.
func (c *Client) Patch(ctx context.Context, table, rowID string, record playerstats.Row) (playerstats.Row, error) {
	path, err := postgrest.Rows(table).Where(postgrest.Eq(playerstats.ColumnID, rowID)).ToPath()
	if err != nil {
		return nil, crerr.Wrap(err, "build update path")
	}

	raw, err := c.do(ctx, http.MethodPatch, path, record)
	if err != nil {
		return nil, err
	}
	return decodeRepresentation(raw)
}

// Delete removes the row with the given id.
func (c *Client) Delete(ctx context.Context, table, rowID string) error {
	path, err := postgrest.Rows(table).Where(postgrest.Eq(playerstats.ColumnID, rowID)).ToPath()
	if err != nil {
		return crerr.Wrap(err, "build delete path")
	}

	_, err = c.do(ctx, http.MethodDelete, path, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body playerstats.Row) ([]byte, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "supabase circuit breaker rejected request", "state", c.breaker.State(), "method", method)
		return nil, crerr.Wrap(ErrUnavailable, err.Error())
	}

	raw, err := c.executeRequest(ctx, method, path, body)
	c.recordCircuitResult(err)
	return raw, err
}

func (c *Client) executeRequest(ctx context.Context, method, path string, body playerstats.Row) ([]byte, error) {
	fullURL := c.baseURL + path

	var payload io.Reader
	if body != nil {
		encoded, err := sonic.Marshal(body)
		if err != nil {
			return nil, crerr.Wrap(err, "marshal request body")
		}
		payload = bytes.NewReader(encoded)
		c.logger.DebugContext(ctx, "supabase request payload", "method", method, "path", path, "body", abbreviateBody(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, payload)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	c.setHeaders(ctx, req)

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("supabase.method", method),
			attribute.String("supabase.path", path),
		)
	}

	startedAt := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		netErr := &NetworkError{Method: method, URL: fullURL, Err: err}
		c.logger.WarnContext(ctx, "supabase request failed", "method", method, "path", path, "error", netErr)
		return nil, netErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errSupabaseTransient, err)
	}

	c.logger.DebugContext(ctx, "supabase response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(startedAt),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	httpErr := responseError(method, resp.StatusCode, raw)
	c.logger.WarnContext(ctx, "supabase returned error status",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"body", abbreviateBody(raw),
	)
	return nil, httpErr
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Prefer", "return=representation")

	requestID, err := c.requestIDs.NewID()
	if err != nil {
		c.logger.DebugContext(ctx, "skip request id header", "error", err)
		return
	}
	req.Header.Set("X-Request-Id", requestID)
}

func (c *Client) recordCircuitResult(err error) {
	if isCircuitFailure(err) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// responseError builds the HTTPError for a non-2xx status. Reads only report the status;
// writes surface the server's message when the body carries one.
func responseError(method string, status int, raw []byte) *HTTPError {
	out := newStatusError(method, status)
	if method == http.MethodGet {
		return out
	}

	var body errorBody
	if err := sonic.Unmarshal(raw, &body); err != nil {
		return out
	}
	out.Code = body.Code
	if msg := strings.TrimSpace(body.Message); msg != "" {
		out.Message = msg
	}
	return out
}

// decodeRepresentation unwraps a return=representation body: the first element of an array,
// or the object itself.
func decodeRepresentation(raw []byte) (playerstats.Row, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var decoded any
	if err := wireAPI.Unmarshal(raw, &decoded); err != nil {
		return nil, crerr.Wrap(err, "decode representation")
	}

	switch typed := decoded.(type) {
	case []any:
		if len(typed) == 0 {
			return nil, nil
		}
		row, ok := typed[0].(map[string]any)
		if !ok {
			return nil, crerr.Newf("unexpected representation element %T", typed[0])
		}
		return row, nil
	case map[string]any:
		return typed, nil
	default:
		return nil, crerr.Newf("unexpected representation %T", decoded)
	}
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
