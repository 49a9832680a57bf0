// Package matcher wraps the external bank-log text-extraction service used
// for AI-assisted batch approval. The service is treated as unreliable and
// possibly wrong; failures are surfaced to the operator, never retried.
package matcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Candidate pairs a customer-supplied payment reference with its order id.
type Candidate struct {
	Reference string `json:"reference"`
	OrderID   string `json:"orderId"`
}

type Result struct {
	MatchedOrderIDs []string `json:"matchedOrderIds"`
	Summary         string   `json:"summary"`
}

// LogMatcher extracts matched order ids from free-text bank log content.
type LogMatcher interface {
	Extract(ctx context.Context, freeText string, candidates []Candidate) (*Result, error)
}

// HTTPMatcher posts the log text and candidates to an external extraction
// endpoint and decodes its verdict.
type HTTPMatcher struct {
	URL    string
	Client *http.Client
}

func NewHTTPMatcher() *HTTPMatcher {
	return &HTTPMatcher{
		URL:    os.Getenv("EXTRACT_API_URL"),
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (m *HTTPMatcher) Extract(ctx context.Context, freeText string, candidates []Candidate) (*Result, error) {
	if m.URL == "" {
		return nil, fmt.Errorf("EXTRACT_API_URL not configured")
	}

	payload, err := json.Marshal(map[string]any{
		"text":       freeText,
		"candidates": candidates,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction service returned %s", resp.Status)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}
	return &result, nil
}
