package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mining-cost-calculator/internal/estimator"
	"mining-cost-calculator/internal/jsonx"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxResponseBytes bounds how much of a /calculate response is read.
const maxResponseBytes = 1 << 20

var (
	// ErrTransport wraps failures to reach the remote calculator at all.
	ErrTransport = errors.New("calculator request failed")

	// ErrUpstreamStatus is matched by every *StatusError.
	ErrUpstreamStatus = errors.New("calculator returned non-success status")
)

// StatusError reports a non-2xx response from the remote calculator.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("calculator http status %s", e.Status)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUpstreamStatus
}

// Client calls the remote profitability calculator.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient returns a client for the service rooted at endpoint. A zero
// timeout waits for the remote service indefinitely.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// URL is the full address of the calculate endpoint.
func (c *Client) URL() string {
	return c.endpoint + "/calculate"
}

// Calculate posts req to {endpoint}/calculate and decodes the result.
func (c *Client) Calculate(ctx context.Context, req estimator.CalculateRequest) (estimator.ResultData, error) {
	body, err := jsonx.Marshal(req)
	if err != nil {
		return estimator.ResultData{}, fmt.Errorf("encode calculate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(body))
	if err != nil {
		return estimator.ResultData{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return estimator.ResultData{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return estimator.ResultData{}, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return estimator.ResultData{}, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}

	return DecodeResult(data)
}
