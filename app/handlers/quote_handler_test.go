package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amirphl/covercube-quote-adapter/app/dto"
	"github.com/amirphl/covercube-quote-adapter/app/services"
	businessflow "github.com/amirphl/covercube-quote-adapter/business_flow"
	testingutil "github.com/amirphl/covercube-quote-adapter/testing"
	"github.com/amirphl/covercube-quote-adapter/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubQuoteFlow records what the handler passed in and answers with a fixed result
type stubQuoteFlow struct {
	result   *dto.QuoteResult
	err      error
	input    any
	metadata *businessflow.ClientMetadata
	ctx      context.Context
}

func (s *stubQuoteFlow) RequestQuote(ctx context.Context, input any, metadata *businessflow.ClientMetadata) (*dto.QuoteResult, error) {
	s.ctx = ctx
	s.input = input
	s.metadata = metadata
	return s.result, s.err
}

func newQuoteTestApp(flow businessflow.QuoteFlow) *fiber.App {
	app := fiber.New()
	handler := NewQuoteHandler(flow, time.Second)
	app.Post("/api/quote", handler.RequestQuote)
	return app
}

func postQuote(t *testing.T, app *fiber.App, body string) (int, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "handler-test")
	req.Header.Set("X-Request-ID", "req-abc")

	resp, err := app.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decodeError(t *testing.T, raw []byte) string {
	t.Helper()
	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &errResp))
	return errResp.Error
}

func TestQuoteHandler_InvalidJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"truncated object", `{"state":"AZ"`, "Invalid JSON in request body: unexpected EOF"},
		{"empty body", ``, "Invalid JSON in request body: unexpected end of JSON input"},
		{"trailing data", `{"state":"AZ"} {}`, "Invalid JSON in request body: invalid character after top-level value"},
		{"not json", `state=AZ`, "Invalid JSON in request body: invalid character 's' looking for beginning of value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow := &stubQuoteFlow{}
			status, raw := postQuote(t, newQuoteTestApp(flow), tt.body)

			assert.Equal(t, fiber.StatusInternalServerError, status)
			assert.Equal(t, tt.expected, decodeError(t, raw))
			assert.Nil(t, flow.input)
		})
	}
}

func TestQuoteHandler_FlowErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"array body", `[]`, "Invalid request body: expected an object"},
		{"null body", `null`, "Invalid request body: expected an object"},
		{"unsupported state", `{"state":"CA"}`, "Invalid state: must be either AZ or TX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := services.NewMockCovercubeClient()
			flow := businessflow.NewQuoteFlow(mock, testingutil.TestCovercubeConfig("https://carrier.example.com/rate"))

			status, raw := postQuote(t, newQuoteTestApp(flow), tt.body)
			assert.Equal(t, fiber.StatusInternalServerError, status)
			assert.Contains(t, decodeError(t, raw), tt.expected)
			assert.Empty(t, mock.GetSentRequests())
		})
	}
}

func TestQuoteHandler_CarrierFailure(t *testing.T) {
	flow := &stubQuoteFlow{
		err: businessflow.NewBusinessError(businessflow.CodeCarrierRequestFailed, "Failed to call Covercube API",
			&services.CarrierAPIError{StatusCode: 500, Body: "Internal Server Error"}),
	}

	status, raw := postQuote(t, newQuoteTestApp(flow), `{"state":"AZ"}`)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Failed to call Covercube API: Covercube API error (500): Internal Server Error", decodeError(t, raw))
}

func TestQuoteHandler_Success(t *testing.T) {
	body := json.RawMessage(`{"quoteCode":"AZ-1","quotePremium":855.540,"vendorNote":"kept"}`)
	flow := &stubQuoteFlow{
		result: &dto.QuoteResult{
			Variant:  dto.VariantArizonaOwned,
			Response: &dto.CarrierResponse{QuoteCode: "AZ-1"},
			Body:     body,
		},
	}

	status, raw := postQuote(t, newQuoteTestApp(flow), `{"state":"AZ","BI":25,"zipCode":"85001"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, string(body), string(raw))

	input, ok := flow.input.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("25"), input["BI"])
	assert.Equal(t, "85001", input["zipCode"])

	require.NotNil(t, flow.metadata)
	assert.Equal(t, "handler-test", flow.metadata.UserAgent)
	assert.Equal(t, "req-abc", flow.metadata.RequestID)

	assert.Equal(t, "req-abc", flow.ctx.Value(utils.RequestIDKey))
	assert.Equal(t, "/api/quote", flow.ctx.Value(utils.EndpointKey))
	_, hasDeadline := flow.ctx.Deadline()
	assert.True(t, hasDeadline)
}

func TestDecodeRequestBody(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expected    any
		expectError bool
	}{
		{name: "object keeps numbers", body: `{"PIP":2500}`, expected: map[string]any{"PIP": json.Number("2500")}},
		{name: "array", body: `[1]`, expected: []any{json.Number("1")}},
		{name: "surrounding whitespace", body: " {}\n", expected: map[string]any{}},
		{name: "trailing value", body: `{}1`, expectError: true},
		{name: "empty", body: ``, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeRequestBody([]byte(tt.body))
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCreateRequestContext_DefaultTimeout(t *testing.T) {
	app := fiber.New()
	var remaining time.Duration
	app.Get("/", func(c fiber.Ctx) error {
		ctx, cancel := createRequestContext(c, "/", 0)
		defer cancel()
		deadline, _ := ctx.Deadline()
		remaining = time.Until(deadline)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Greater(t, remaining, 29*time.Second)
	assert.LessOrEqual(t, remaining, defaultRequestTimeout)
}

func TestErrorResponse(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error {
		return errorResponse(c, fiber.StatusTeapot, "boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	assert.JSONEq(t, `{"error":"boom"}`, string(raw))
}
