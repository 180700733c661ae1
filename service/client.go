package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"airplane-seating-cli/model"
)

const (
	defaultUserAgent   = "airplane-seating-cli"
	defaultMaxAttempts = 3
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond
)

// Client drives a remote seating service over its JSON API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration
}

// APIError is returned when the seating service responds with a non-2xx
// status. It unwraps to the model sentinel named by Code, if any.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Code       string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "seating api error"
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("seating api error: %s: %s", e.Status, e.Body)
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return errorForCode(e.Code)
}

// IsNotFound reports whether the error represents a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// NewClient creates a client for the service at baseURL. If httpClient is nil,
// a default client is used.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   defaultUserAgent,
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Seats fetches the seat view in the given order.
func (c *Client) Seats(ctx context.Context, key model.SortKey) ([]model.SeatSummary, error) {
	if key != model.BySeatNumber && key != model.ByPassengerName {
		return nil, model.ErrUnknownSortKey
	}
	endpoint := fmt.Sprintf("%s/v1/seats?sort=%s", c.baseURL, url.QueryEscape(key.String()))

	var out struct {
		Seats []model.SeatSummary `json:"seats"`
	}
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out.Seats, nil
}

func (c *Client) Availability(ctx context.Context) (model.Availability, error) {
	var out model.Availability
	if err := c.getJSON(ctx, c.baseURL+"/v1/availability", &out); err != nil {
		return model.Availability{}, err
	}
	return out, nil
}

// Assign books seats on the server. It is sent exactly once: a retried
// booking would reserve a second set of seats.
func (c *Client) Assign(ctx context.Context, req model.AssignmentRequest) (model.Booking, error) {
	if !req.Class.Valid() {
		return model.Booking{}, model.ErrUnknownFareClass
	}
	var booking model.Booking
	if err := c.postJSON(ctx, c.baseURL+"/v1/bookings", req, &booking); err != nil {
		return model.Booking{}, err
	}
	return booking, nil
}

func (c *Client) Save(ctx context.Context) error {
	return c.postJSON(ctx, c.baseURL+"/v1/state/save", nil, nil)
}

// Load asks the server to reload its saved state. found is false when the
// server has nothing saved.
func (c *Client) Load(ctx context.Context) (bool, error) {
	if err := c.postJSON(ctx, c.baseURL+"/v1/state/load", nil, nil); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Code == CodeStateNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *Client) Reset(ctx context.Context) error {
	return c.postJSON(ctx, c.baseURL+"/v1/state/reset", nil, nil)
}

// Healthy reports whether the service answers its health check.
func (c *Client) Healthy(ctx context.Context) error {
	var out map[string]any
	return c.getJSON(ctx, c.baseURL+"/healthz", &out)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	maxAttempts := c.maxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		err = c.do(req, out)
		if err == nil {
			return nil
		}
		if c.shouldRetry(err) && attempt < maxAttempts {
			if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
				return waitErr
			}
			continue
		}
		return err
	}

	return errors.New("request failed after retries")
}

func (c *Client) postJSON(ctx context.Context, endpoint string, in any, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// networkError marks transport failures so getJSON can retry them.
type networkError struct {
	err error
}

func (e *networkError) Error() string { return "request failed: " + e.err.Error() }
func (e *networkError) Unwrap() error { return e.err }

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	endpoint := req.URL.String()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &networkError{err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
		apiErr := &APIError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Endpoint:   endpoint,
			Body:       strings.TrimSpace(string(snippet)),
		}
		var payload struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.Unmarshal(snippet, &payload) == nil {
			apiErr.Code = payload.Code
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) shouldRetry(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return c.shouldRetryStatus(apiErr.StatusCode)
	}
	var netErr *networkError
	if errors.As(err, &netErr) {
		return c.shouldRetryNetworkError(netErr.err)
	}
	return false
}

func (c *Client) shouldRetryStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (c *Client) shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) waitRetry(ctx context.Context, attempt int) error {
	delay := c.retryDelay(attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := c.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	limit := c.retryCap
	if limit <= 0 {
		limit = defaultRetryCap
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= limit/2 {
			return limit
		}
		delay *= 2
	}
	if delay > limit {
		return limit
	}
	return delay
}
