// Package playground talks to the Rust Playground execute endpoint.
package playground

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"playground-bot/internal/domain/user"
)

// DefaultURL is the public execute endpoint
const DefaultURL = "https://play.rust-lang.org/execute"

// ErrExecution matches every error returned by Client.Execute
var ErrExecution = errors.New("playground execution failed")

// ExecutionError reports which step of the round trip failed
type ExecutionError struct {
	Op  string
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("playground %s: %v", e.Op, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrExecution) hold for any ExecutionError
func (e *ExecutionError) Is(target error) bool { return target == ErrExecution }

// Request is the body of a POST to the execute endpoint
type Request struct {
	Backtrace bool   `json:"backtrace"`
	Channel   string `json:"channel"`
	Code      string `json:"code"`
	CrateType string `json:"crateType"`
	Edition   string `json:"edition"`
	Mode      string `json:"mode"`
	Tests     bool   `json:"tests"`
}

// NewRequest combines a user's preferences with the code to run
func NewRequest(p user.Preferences, code string) Request {
	return Request{
		Backtrace: p.Backtrace,
		Channel:   string(p.Channel),
		Code:      code,
		CrateType: string(p.CrateType),
		Edition:   string(p.Edition),
		Mode:      string(p.Mode),
		Tests:     p.Tests,
	}
}

// Response is the decoded answer of the execute endpoint
type Response struct {
	Success bool   `json:"success"`
	Stdout  string `json:"stdout"`
	Stderr  string `json:"stderr"`
}

// Client posts execute requests. It makes exactly one attempt per call.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a client for url. A nil httpClient means http.DefaultClient.
func NewClient(url string, httpClient *http.Client) *Client {
	if url == "" {
		url = DefaultURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{url: url, http: httpClient}
}

// Execute sends req and decodes the response body
func (c *Client) Execute(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &ExecutionError{Op: "encode request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, &ExecutionError{Op: "build request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &ExecutionError{Op: "send request", Err: err}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &ExecutionError{Op: "read response", Err: err}
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &ExecutionError{
			Op:  "decode response",
			Err: fmt.Errorf("status %d: %w", httpResp.StatusCode, err),
		}
	}

	return &resp, nil
}
