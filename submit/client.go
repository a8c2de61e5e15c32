// Package submit provides the submission collaborator that publishes a
// finalized job-post record to the platform backend.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hireloop/jobagent/domain"
)

// Result is the outcome of one submission attempt.
type Result struct {
	Success     bool   `json:"success"`
	ReferenceID string `json:"reference_id,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Submitter publishes a finalized record on behalf of an owner.
type Submitter interface {
	Submit(ctx context.Context, record *domain.Record, ownerID string) (*Result, error)
}

// Client submits records over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Submitter = (*Client)(nil)

// NewClient creates a new submission client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type submitRequest struct {
	OwnerID string        `json:"owner_id"`
	Record  domain.Record `json:"record"`
}

// Submit POSTs the record and decodes the backend's result. Transport and
// decode failures are returned as errors; the caller decides how to fold
// them into the reply.
func (c *Client) Submit(ctx context.Context, record *domain.Record, ownerID string) (*Result, error) {
	body, err := json.Marshal(submitRequest{OwnerID: ownerID, Record: *record})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submission: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/job-posts", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send submission: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return &Result{
			Success: false,
			Error:   fmt.Sprintf("submission endpoint returned status %d", resp.StatusCode),
		}, nil
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &result, nil
}
