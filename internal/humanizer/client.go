package humanizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"humanizerapi/internal/config"
)

// httpClient is the HTTP implementation of Client. Authentication is a static
// apikey header on every request.
type httpClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates an HTTP Client for the transformation service. The
// underlying transport is traced via otelhttp.
func NewClient(cfg config.HumanizerConfig) (Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("humanizer base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("humanizer API key is required")
	}
	return &httpClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		},
	}, nil
}

var _ Client = (*httpClient)(nil)

// Submit posts the text and returns the remote job id.
func (c *httpClient) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	req.ApplyDefaults()

	var out struct {
		ID    string `json:"id"`
		Error string `json:"error"`
	}
	if err := c.post(ctx, "/submit", req, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		if out.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrUpstream, out.Error)
		}
		return "", fmt.Errorf("%w: submit response missing job id", ErrUpstream)
	}
	return out.ID, nil
}

// Document reads the current status of a job.
func (c *httpClient) Document(ctx context.Context, jobID string) (*JobStatus, error) {
	if jobID == "" {
		return nil, fmt.Errorf("%w: job id is required", ErrUpstream)
	}
	var st JobStatus
	body := struct {
		ID string `json:"id"`
	}{ID: jobID}
	if err := c.post(ctx, "/document", body, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// post issues one JSON request and decodes the JSON response. Any transport
// failure, non-2xx status or undecodable body is an upstream error; the
// remote "error" field is carried verbatim when present.
func (c *httpClient) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUpstream, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		// Prefer the remote error message over the bare status code.
		var remote struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &remote) == nil && remote.Error != "" {
			return fmt.Errorf("%w: %s", ErrUpstream, remote.Error)
		}
		return fmt.Errorf("%w: unexpected status %d", ErrUpstream, res.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrUpstream, err)
	}
	return nil
}
