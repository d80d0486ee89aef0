package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// NetHTTPAdapter is the standard HTTP adapter implementation using net/http package.
type NetHTTPAdapter struct {
	client *http.Client
}

// Ensure NetHTTPAdapter implements HTTPAdapter interface
var _ HTTPAdapter = (*NetHTTPAdapter)(nil)

// NewNetHTTPAdapter creates a new NetHTTPAdapter instance.
func NewNetHTTPAdapter() HTTPAdapter {
	return &NetHTTPAdapter{
		client: &http.Client{},
	}
}

// NewNetHTTPAdapterWithTimeout creates a NetHTTPAdapter whose requests time out after timeout.
func NewNetHTTPAdapterWithTimeout(timeout time.Duration) HTTPAdapter {
	return &NetHTTPAdapter{
		client: &http.Client{Timeout: timeout},
	}
}

// Send sends records to the specified endpoint with the given headers.
func (h *NetHTTPAdapter) Send(endpoint string, records []Record, headers map[string]string) (*HTTPResponse, error) {
	return h.SendWithContext(context.Background(), endpoint, records, headers)
}

// SendWithContext sends records to the specified endpoint, bounded by ctx.
func (h *NetHTTPAdapter) SendWithContext(ctx context.Context, endpoint string, records []Record, headers map[string]string) (*HTTPResponse, error) {
	payload := map[string]any{
		"records": records,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal records: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	return &HTTPResponse{
		Status: resp.StatusCode,
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
	}, nil
}
