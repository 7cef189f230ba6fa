package businessflow

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/amirphl/covercube-quote-adapter/app/dto"
	"github.com/amirphl/covercube-quote-adapter/app/services"
	testingutil "github.com/amirphl/covercube-quote-adapter/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCovercubeClient answers every call with a fixed body or error
type stubCovercubeClient struct {
	body     json.RawMessage
	err      error
	requests []dto.CarrierRequest
}

func (s *stubCovercubeClient) RateQuote(ctx context.Context, req dto.CarrierRequest) (json.RawMessage, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.body, nil
}

func newTestQuoteFlow(client services.CovercubeClient) QuoteFlow {
	return NewQuoteFlow(client, testingutil.TestCovercubeConfig("https://carrier.example.com/rate"))
}

func testMetadata() *ClientMetadata {
	metadata := NewClientMetadata("127.0.0.1", "quote-flow-test")
	metadata.SetRequestID("req-123")
	return metadata
}

func TestQuoteFlow_RequestQuoteWithMockCarrier(t *testing.T) {
	tests := []struct {
		name         string
		input        map[string]any
		variant      dto.Variant
		quoteCode    string
		producerCode string
	}{
		{"arizona", testingutil.ArizonaQuoteInput(), dto.VariantArizonaOwned, "AZ-123456", testingutil.TestProducerCodeAZ},
		{"texas", testingutil.TexasQuoteInput(), dto.VariantTexasOwned, "TX-789012", testingutil.TestProducerCodeTX},
		{"texas non-owner", testingutil.TexasNonOwnerQuoteInput(), dto.VariantTexasNonOwner, "TXNO-345678", testingutil.TestProducerCodeTX},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := services.NewMockCovercubeClient()
			flow := newTestQuoteFlow(mock)

			result, err := flow.RequestQuote(context.Background(), tt.input, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, tt.variant, result.Variant)
			assert.Equal(t, tt.quoteCode, result.Response.QuoteCode)
			assert.True(t, json.Valid(result.Body))

			sent := mock.GetSentRequests()
			require.Len(t, sent, 1)
			assert.Equal(t, tt.variant, sent[0].Variant)
			assert.Equal(t, tt.producerCode, sent[0].Request.Credentials().ProducerCode)
			assert.Equal(t, testingutil.TestUsername, sent[0].Request.Credentials().Username)
		})
	}
}

func TestQuoteFlow_ReturnsCarrierBodyUnchanged(t *testing.T) {
	payload := carrierPayload(t, dto.VariantArizonaOwned)
	payload["carrierTrace"] = "trace-1"
	body := json.RawMessage(testingutil.MustEncodeJSON(payload))

	flow := newTestQuoteFlow(&stubCovercubeClient{body: body})

	result, err := flow.RequestQuote(context.Background(), testingutil.ArizonaQuoteInput(), nil)
	require.NoError(t, err)
	assert.Equal(t, string(body), string(result.Body))
	assert.Equal(t, "AZ-123456", result.Response.QuoteCode)
}

func TestQuoteFlow_Failures(t *testing.T) {
	validBody := json.RawMessage(testingutil.MustEncodeJSON(services.MockCarrierResponse(dto.VariantTexasOwned)))

	tests := []struct {
		name          string
		input         func() map[string]any
		client        *stubCovercubeClient
		expectCall    bool
		check         func(err error) bool
		errorContains string
	}{
		{
			name: "invalid request never reaches the carrier",
			input: func() map[string]any {
				in := testingutil.TexasQuoteInput()
				in["vehicles"] = []any{}
				return in
			},
			client:        &stubCovercubeClient{body: validBody},
			check:         IsInvalidQuoteRequest,
			errorContains: "at least one vehicle",
		},
		{
			name: "carrier error status",
			input: func() map[string]any {
				return testingutil.TexasQuoteInput()
			},
			client:        &stubCovercubeClient{err: &services.CarrierAPIError{StatusCode: 500, Body: "Internal Server Error"}},
			expectCall:    true,
			check:         IsCarrierRequestFailed,
			errorContains: "Failed to call Covercube API: Covercube API error (500): Internal Server Error",
		},
		{
			name: "network failure",
			input: func() map[string]any {
				return testingutil.TexasQuoteInput()
			},
			client:        &stubCovercubeClient{err: errors.New("dial tcp: connection refused")},
			expectCall:    true,
			check:         IsCarrierRequestFailed,
			errorContains: "connection refused",
		},
		{
			name: "carrier body is not json",
			input: func() map[string]any {
				return testingutil.TexasQuoteInput()
			},
			client:        &stubCovercubeClient{body: json.RawMessage(`<html>`)},
			expectCall:    true,
			check:         IsInvalidCarrierResponse,
			errorContains: "response:",
		},
		{
			name: "carrier response has wrong shape",
			input: func() map[string]any {
				return testingutil.TexasQuoteInput()
			},
			client:        &stubCovercubeClient{body: json.RawMessage(`{"quoteCode":"TX-1","quotePremium":"920.75"}`)},
			expectCall:    true,
			check:         IsInvalidCarrierResponse,
			errorContains: "quotePremium: expected number, got string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow := newTestQuoteFlow(tt.client)

			result, err := flow.RequestQuote(context.Background(), tt.input(), testMetadata())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
			assert.Contains(t, err.Error(), tt.errorContains)

			if tt.expectCall {
				assert.Len(t, tt.client.requests, 1)
			} else {
				assert.Empty(t, tt.client.requests)
			}
		})
	}
}

func TestQuoteFlow_ConfigurationErrorSkipsCarrier(t *testing.T) {
	cfg := testingutil.TestCovercubeConfig("https://carrier.example.com/rate")
	delete(cfg.ProducerCodes, "AZ")
	client := &stubCovercubeClient{}

	flow := NewQuoteFlow(client, cfg)
	_, err := flow.RequestQuote(context.Background(), testingutil.ArizonaQuoteInput(), testMetadata())
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
	assert.Empty(t, client.requests)
}

func TestUndocumentedCoverageLimits(t *testing.T) {
	tests := []struct {
		name     string
		input    func() map[string]any
		expected []string
	}{
		{
			name:  "arizona documented limits",
			input: testingutil.ArizonaQuoteInput,
		},
		{
			name:  "texas documented limits",
			input: testingutil.TexasQuoteInput,
		},
		{
			name: "arizona using texas limits",
			input: func() map[string]any {
				in := testingutil.ArizonaQuoteInput()
				in["BI"] = "30/60"
				in["UMBI"] = "30/60"
				return in
			},
			expected: []string{"BI=30/60", "UMBI=30/60"},
		},
		{
			name: "texas numeric pip",
			input: func() map[string]any {
				in := testingutil.TexasNonOwnerQuoteInput()
				in["PIP"] = json.Number("5000")
				return in
			},
			expected: []string{"PIP=5000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := ParseAndSanitizeQuote(tt.input())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, undocumentedCoverageLimits(quote))
		})
	}
}
