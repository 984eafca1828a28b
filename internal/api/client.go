// Package api is the typed client for the interview-prep backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"

	"github.com/abhisek/prepdeck/internal/monitor"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// Client translates typed calls into backend HTTP requests.
type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
	metrics  *monitor.Metrics
	tracer   *monitor.Tracer
	log      zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithMetrics records request counts and latencies.
func WithMetrics(m *monitor.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for baseURL. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		tracer:   monitor.NewTracer(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListItems returns the knowledge items matching q.
func (c *Client) ListItems(ctx context.Context, q ItemQuery) ([]KnowledgeItem, error) {
	params := url.Values{}
	setParam(params, "q", q.Q)
	setParam(params, "tag", q.Tag)
	setParam(params, "difficulty", q.Difficulty)
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(q.PageSize))
	}

	var page ItemPage
	if err := c.do(ctx, http.MethodGet, withQuery("/api/v1/items", params), "/api/v1/items", nil, &page); err != nil {
		return nil, err
	}
	for i := range page.Items {
		if err := c.check(&page.Items[i]); err != nil {
			return nil, err
		}
	}
	return page.Items, nil
}

// CreateQuestions stores new questions and returns the created records.
func (c *Client) CreateQuestions(ctx context.Context, items []QuestionInput) ([]Question, error) {
	for i := range items {
		if err := c.validate.Struct(&items[i]); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}
	body := struct {
		Items []QuestionInput `json:"items"`
	}{Items: items}

	var created []Question
	if err := c.do(ctx, http.MethodPost, "/api/v1/questions", "/api/v1/questions", body, &created); err != nil {
		return nil, err
	}
	for i := range created {
		if err := c.check(&created[i]); err != nil {
			return nil, err
		}
	}
	return created, nil
}

// Generate asks the backend to build a knowledge item for a question.
func (c *Client) Generate(ctx context.Context, questionID string) (*KnowledgeItem, error) {
	body := struct {
		QuestionID string `json:"question_id"`
	}{QuestionID: questionID}

	var item KnowledgeItem
	if err := c.do(ctx, http.MethodPost, "/api/v1/generate", "/api/v1/generate", body, &item); err != nil {
		return nil, err
	}
	if err := c.check(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateAndGenerate creates a single question and generates its knowledge item.
func (c *Client) CreateAndGenerate(ctx context.Context, in QuestionInput) (*KnowledgeItem, error) {
	created, err := c.CreateQuestions(ctx, []QuestionInput{in})
	if err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, errors.New("Question creation failed")
	}
	return c.Generate(ctx, created[0].ID)
}

// DeleteItem removes a knowledge item. The backend answers 204.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/items/"+url.PathEscape(id), "/api/v1/items/{id}", nil, nil)
}

// GetProblem loads a problem with its test cases and languages.
func (c *Client) GetProblem(ctx context.Context, id string) (*Problem, error) {
	var p Problem
	if err := c.do(ctx, http.MethodGet, "/api/v1/problems/"+url.PathEscape(id), "/api/v1/problems/{id}", nil, &p); err != nil {
		return nil, err
	}
	if err := c.check(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProblems returns problem summaries narrowed by f.
func (c *Client) ListProblems(ctx context.Context, f ProblemFilter) ([]ProblemSummary, error) {
	params := url.Values{}
	setParam(params, "difficulty", f.Difficulty)
	setParam(params, "tag", f.Tag)

	var list []ProblemSummary
	if err := c.do(ctx, http.MethodGet, withQuery("/api/v1/problems", params), "/api/v1/problems", nil, &list); err != nil {
		return nil, err
	}
	for i := range list {
		if err := c.check(&list[i]); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Execute runs code on the backend, optionally judging it against a problem.
func (c *Client) Execute(ctx context.Context, req ExecutionRequest) (*ExecutionResult, error) {
	var res ExecutionResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/execute", "/api/v1/execute", req, &res); err != nil {
		return nil, err
	}
	if err := c.check(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetSolution fetches the reference solution. An empty language lets the
// backend pick.
func (c *Client) GetSolution(ctx context.Context, id, language string) (*Solution, error) {
	params := url.Values{}
	setParam(params, "language", language)
	path := withQuery("/api/v1/problems/"+url.PathEscape(id)+"/solution", params)

	var s Solution
	if err := c.do(ctx, http.MethodGet, path, "/api/v1/problems/{id}/solution", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetEditorial fetches the editorial text of a problem.
func (c *Client) GetEditorial(ctx context.Context, id string) (string, error) {
	var out struct {
		Editorial string `json:"editorial"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/problems/"+url.PathEscape(id)+"/editorial", "/api/v1/problems/{id}/editorial", nil, &out); err != nil {
		return "", err
	}
	return out.Editorial, nil
}

// ImportProblem creates a new problem from p.
func (c *Client) ImportProblem(ctx context.Context, p ProblemImport) (*Problem, error) {
	if err := c.validate.Struct(&p); err != nil {
		return nil, fmt.Errorf("invalid problem: %w", err)
	}
	var created Problem
	if err := c.do(ctx, http.MethodPost, "/api/v1/problems/import", "/api/v1/problems/import", p, &created); err != nil {
		return nil, err
	}
	if err := c.check(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

// do performs one request. out may be nil when no body is expected.
func (c *Client) do(ctx context.Context, method, path, route string, in, out any) (err error) {
	ctx, span := c.tracer.StartSpan(ctx, "api",
		attribute.String("http.method", method),
		attribute.String("http.route", route),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.ObserveAPI(method, route, 0, elapsed)
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("api request failed")
		return fmt.Errorf("%s %s: %w", method, route, err)
	}
	defer resp.Body.Close()

	c.metrics.ObserveAPI(method, route, resp.StatusCode, elapsed)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("api request")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromBody(resp.StatusCode, data)
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return invalidResponse(resp.StatusCode, err)
	}
	return nil
}

// check validates a decoded response value.
func (c *Client) check(v any) error {
	if err := c.validate.Struct(v); err != nil {
		return invalidResponse(http.StatusOK, err)
	}
	return nil
}

func setParam(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func withQuery(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}
