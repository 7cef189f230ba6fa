// Package services provides external service integrations such as the Covercube rating API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/amirphl/covercube-quote-adapter/app/dto"
	"github.com/amirphl/covercube-quote-adapter/config"
	"github.com/amirphl/covercube-quote-adapter/utils"
)

// CovercubeClient sends rate quote requests to the carrier.
// Calls are not retried: each one is a quote-generating transaction.
type CovercubeClient interface {
	RateQuote(ctx context.Context, req dto.CarrierRequest) (json.RawMessage, error)
}

// CarrierAPIError is a non-2xx answer from the carrier
type CarrierAPIError struct {
	StatusCode int
	Body       string
}

func (e *CarrierAPIError) Error() string {
	return fmt.Sprintf("Covercube API error (%d): %s", e.StatusCode, e.Body)
}

// CovercubeClientImpl implements CovercubeClient over HTTP
type CovercubeClientImpl struct {
	url    string
	client *http.Client
}

// NewCovercubeClient creates a carrier client. In mock mode no network calls are made.
func NewCovercubeClient(cfg *config.CovercubeConfig) CovercubeClient {
	if cfg.MockMode {
		return NewMockCovercubeClient()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = utils.DefaultCarrierTimeout
	}
	return &CovercubeClientImpl{
		url:    cfg.URL,
		client: &http.Client{Timeout: timeout},
	}
}

// RateQuote posts the request and returns the raw response body
func (c *CovercubeClientImpl) RateQuote(ctx context.Context, req dto.CarrierRequest) (json.RawMessage, error) {
	requestBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rate quote request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, utils.MaxCarrierResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &CarrierAPIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}

	return body, nil
}

// MockCovercubeClient implements CovercubeClient without credentials or network.
// It answers with a canned quote for the request's variant.
type MockCovercubeClient struct {
	mu           sync.Mutex
	SentRequests []MockCarrierCall
}

// MockCarrierCall records one request handled by the mock
type MockCarrierCall struct {
	Variant dto.Variant
	Request dto.CarrierRequest
	SentAt  time.Time
}

// NewMockCovercubeClient creates a new mock carrier client
func NewMockCovercubeClient() *MockCovercubeClient {
	return &MockCovercubeClient{
		SentRequests: make([]MockCarrierCall, 0),
	}
}

func (m *MockCovercubeClient) RateQuote(ctx context.Context, req dto.CarrierRequest) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	variant := req.Variant()
	log.Printf("[MOCK MODE] Generating mock response for %s quote", variant)

	m.mu.Lock()
	m.SentRequests = append(m.SentRequests, MockCarrierCall{
		Variant: variant,
		Request: req,
		SentAt:  utils.UTCNow(),
	})
	m.mu.Unlock()

	return json.Marshal(MockCarrierResponse(variant))
}

// GetSentRequests returns a copy of all requests the mock has seen
func (m *MockCovercubeClient) GetSentRequests() []MockCarrierCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCarrierCall(nil), m.SentRequests...)
}

// ClearSentRequests clears the recorded requests
func (m *MockCovercubeClient) ClearSentRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentRequests = make([]MockCarrierCall, 0)
}
