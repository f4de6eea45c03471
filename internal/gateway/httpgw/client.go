// Package httpgw implements the students gateway over the REST API.
package httpgw

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

	"github.com/cristianoliveira/student-roster/internal/colors"
	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/cristianoliveira/student-roster/internal/gateway"
	"github.com/cristianoliveira/student-roster/internal/logging"
	"github.com/cristianoliveira/student-roster/internal/version"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	// DefaultTimeout bounds a single HTTP attempt.
	DefaultTimeout = 10 * time.Second
	// DefaultRetryMax is how many times a failed GET is retried.
	DefaultRetryMax = 2

	// RequestIDHeader carries the per-request correlation id.
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 512
)

// Options configures a Client.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Logger       logging.Logger
	// HTTPClient replaces the underlying transport client. Tests use it.
	HTTPClient *http.Client
}

// Client talks to the students API. Only idempotent reads are retried.
type Client struct {
	baseURL *url.URL
	reads   *retryablehttp.Client
	writes  *retryablehttp.Client
	logger  logging.Logger
}

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// retryLogger adapts the file logger to retryablehttp.LeveledLogger.
// Per-attempt chatter goes to debug.
type retryLogger struct {
	logger logging.Logger
}

func (l retryLogger) Error(msg string, kv ...interface{}) { l.logger.Error("http retry: "+msg, kv...) }
func (l retryLogger) Warn(msg string, kv ...interface{})  { l.logger.Warn("http retry: "+msg, kv...) }
func (l retryLogger) Info(msg string, kv ...interface{})  { l.logger.Debug("http retry: "+msg, kv...) }
func (l retryLogger) Debug(msg string, kv ...interface{}) { l.logger.Debug("http retry: "+msg, kv...) }

// New builds a Client for opts.BaseURL.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", opts.BaseURL)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RetryMax < 0 {
		opts.RetryMax = 0
	}
	if opts.RetryWaitMin <= 0 {
		opts.RetryWaitMin = 200 * time.Millisecond
	}
	if opts.RetryWaitMax <= 0 {
		opts.RetryWaitMax = 2 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	newClient := func(retryMax int) *retryablehttp.Client {
		rc := retryablehttp.NewClient()
		rc.HTTPClient = httpClient
		rc.RetryMax = retryMax
		rc.RetryWaitMin = opts.RetryWaitMin
		rc.RetryWaitMax = opts.RetryWaitMax
		rc.Logger = retryLogger{logger: opts.Logger}
		// Hand the last response back so status codes map to StatusError.
		rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
		return rc
	}

	return &Client{
		baseURL: base,
		reads:   newClient(opts.RetryMax),
		writes:  newClient(0),
		logger:  opts.Logger,
	}, nil
}

// FetchPage requests one page of students.
func (c *Client) FetchPage(ctx context.Context, q domain.Query) (domain.Page[domain.Student], error) {
	params := url.Values{}
	addSort(params, q.Sort)
	addWindow(params, q.Window)
	if q.Filters.Len() > 0 {
		encoded, err := json.Marshal(q.Filters.Sorted())
		if err != nil {
			return domain.Page[domain.Student]{}, gateway.Transport(gateway.OpFetchPage, err)
		}
		params.Set("filters", string(encoded))
	}

	var body struct {
		Students      []domain.Student `json:"students"`
		TotalStudents int              `json:"totalStudents"`
	}
	if err := c.do(ctx, gateway.OpFetchPage, http.MethodGet, "/students", params, nil, &body); err != nil {
		return domain.Page[domain.Student]{}, err
	}
	if body.Students == nil {
		body.Students = []domain.Student{}
	}
	return domain.Page[domain.Student]{Rows: body.Students, Total: body.TotalStudents}, nil
}

// FetchDetails requests one page of a student's term records.
func (c *Client) FetchDetails(ctx context.Context, studentID int, sort domain.SortSpec, window domain.PageWindow) (domain.Page[domain.StudentDetail], error) {
	params := url.Values{}
	addSort(params, sort)
	addWindow(params, window)

	var body struct {
		Details      []domain.StudentDetail `json:"details"`
		TotalDetails int                    `json:"totalDetails"`
	}
	path := "/students/" + strconv.Itoa(studentID) + "/details"
	if err := c.do(ctx, gateway.OpFetchDetails, http.MethodGet, path, params, nil, &body); err != nil {
		return domain.Page[domain.StudentDetail]{}, err
	}
	if body.Details == nil {
		body.Details = []domain.StudentDetail{}
	}
	return domain.Page[domain.StudentDetail]{Rows: body.Details, Total: body.TotalDetails}, nil
}

// Create posts a new student.
func (c *Client) Create(ctx context.Context, s domain.Student) (gateway.Result, error) {
	return c.mutate(ctx, gateway.OpCreate, http.MethodPost, "/students", s)
}

// Update replaces an existing student.
func (c *Client) Update(ctx context.Context, s domain.Student) (gateway.Result, error) {
	return c.mutate(ctx, gateway.OpUpdate, http.MethodPut, "/students/"+strconv.Itoa(s.ID), s)
}

// Delete removes one student.
func (c *Client) Delete(ctx context.Context, id int) (gateway.Result, error) {
	return c.mutate(ctx, gateway.OpDelete, http.MethodDelete, "/students/"+strconv.Itoa(id), nil)
}

// DeleteMany removes several students in one request.
func (c *Client) DeleteMany(ctx context.Context, ids []int) (gateway.Result, error) {
	payload := struct {
		StudentIDs []int `json:"studentIds"`
	}{StudentIDs: ids}
	return c.mutate(ctx, gateway.OpDeleteMany, http.MethodPost, "/students/delete", payload)
}

// CheckUniqueSchoolID asks the API whether candidate is free.
func (c *Client) CheckUniqueSchoolID(ctx context.Context, excludingID int, candidate string) (gateway.Result, error) {
	params := url.Values{}
	params.Set("studentId", strconv.Itoa(excludingID))
	params.Set("studentSchoolId", candidate)

	var res gateway.Result
	if err := c.do(ctx, gateway.OpCheckSchoolID, http.MethodGet, "/students/validate-school-id", params, nil, &res); err != nil {
		return gateway.Result{}, err
	}
	c.logFailure(gateway.OpCheckSchoolID, res)
	return res, nil
}

func (c *Client) mutate(ctx context.Context, op, method, path string, payload any) (gateway.Result, error) {
	var res gateway.Result
	if err := c.do(ctx, op, method, path, nil, payload, &res); err != nil {
		return gateway.Result{}, err
	}
	c.logFailure(op, res)
	return res, nil
}

func (c *Client) logFailure(op string, res gateway.Result) {
	if !res.Success {
		c.logger.Info("business rule failure", "op", op, "message", res.Error)
	}
}

// do sends one request and decodes a 2xx JSON body into out.
// Every failure is returned as a *gateway.TransportError.
func (c *Client) do(ctx context.Context, op, method, path string, params url.Values, payload, out any) error {
	endpoint := c.baseURL.JoinPath(path)
	if len(params) > 0 {
		endpoint.RawQuery = params.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return gateway.Transport(op, fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(data)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return gateway.Transport(op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := c.writes
	if method == http.MethodGet {
		client = c.reads
	}

	started := time.Now()
	resp, err := client.Do(req)
	fields := map[string]interface{}{"method": method, "path": path, "elapsed_ms": time.Since(started).Milliseconds()}
	if err != nil {
		colors.StructuredError("gateway.http", op, "failed", err, requestID, fields)
		c.logger.Error("request failed", "op", op, "request_id", requestID, "error", err)
		return gateway.Transport(op, err)
	}
	defer resp.Body.Close()
	fields["status"] = resp.StatusCode
	colors.StructuredDebug("gateway.http", op, "completed", nil, requestID, fields)
	c.logger.Debug("request completed", "op", op, "request_id", requestID, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return gateway.Transport(op, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))})
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty response body")
		}
		return gateway.Transport(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func addSort(params url.Values, sort domain.SortSpec) {
	if !sort.IsActive() {
		return
	}
	params.Set("sortColumn", sort.Column)
	params.Set("sortDirection", string(sort.Direction))
}

func addWindow(params url.Values, w domain.PageWindow) {
	params.Set("page", strconv.Itoa(w.Index))
	params.Set("pageSize", strconv.Itoa(w.Size))
}
