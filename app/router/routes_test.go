package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amirphl/covercube-quote-adapter/app/dto"
	"github.com/amirphl/covercube-quote-adapter/app/handlers"
	"github.com/amirphl/covercube-quote-adapter/app/services"
	businessflow "github.com/amirphl/covercube-quote-adapter/business_flow"
	"github.com/amirphl/covercube-quote-adapter/config"
	testingutil "github.com/amirphl/covercube-quote-adapter/testing"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRouter wires the real client, flow and handler against a fake carrier
func setupTestRouter(t *testing.T, mutate func(cfg *config.ProductionConfig)) (*fiber.App, *testingutil.TestCarrier) {
	t.Helper()

	carrier := testingutil.NewTestCarrier()
	t.Cleanup(carrier.Close)

	cfg := testingutil.TestProductionConfig(carrier.URL())
	if mutate != nil {
		mutate(cfg)
	}

	client := services.NewCovercubeClient(&cfg.Covercube)
	flow := businessflow.NewQuoteFlow(client, cfg.Covercube)
	handler := handlers.NewQuoteHandler(flow, cfg.Server.RequestTimeout)

	r := NewFiberRouter(cfg, handler)
	r.SetupRoutes()
	return r.GetApp(), carrier
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body []byte) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(string(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func postQuote(t *testing.T, app *fiber.App, input map[string]any) (*http.Response, []byte) {
	t.Helper()
	return doRequest(t, app, http.MethodPost, "/api/quote", testingutil.MustEncodeJSON(input))
}

func errorMessage(t *testing.T, raw []byte) string {
	t.Helper()
	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &errResp))
	return errResp.Error
}

func TestQuoteEndpoint_Scenarios(t *testing.T) {
	tests := []struct {
		name          string
		input         func() map[string]any
		carrierStatus int
		carrierBody   []byte
		expectStatus  int
		expectError   string
		expectCall    bool
		checkCall     func(t *testing.T, body map[string]any)
	}{
		{
			name:          "arizona quote",
			input:         testingutil.ArizonaQuoteInput,
			carrierStatus: http.StatusOK,
			carrierBody:   testingutil.MustEncodeJSON(services.MockCarrierResponse(dto.VariantArizonaOwned)),
			expectStatus:  http.StatusOK,
			expectCall:    true,
			checkCall: func(t *testing.T, body map[string]any) {
				assert.Equal(t, testingutil.TestProducerCodeAZ, body["producerCode"])
				assert.Equal(t, "RATEQUOTE", body["action"])
				assert.Equal(t, "NB", body["transType"])
				assert.Equal(t, testingutil.TestUsername, body["username"])
				for _, key := range []string{"PIP", "UMPD", "IsNonOwner", "priorpolicynumber"} {
					assert.NotContains(t, body, key)
				}
			},
		},
		{
			name: "arizona quote with texas coverage",
			input: func() map[string]any {
				in := testingutil.ArizonaQuoteInput()
				in["PIP"] = "2500"
				return in
			},
			carrierStatus: http.StatusOK,
			carrierBody:   testingutil.MustEncodeJSON(services.MockCarrierResponse(dto.VariantArizonaOwned)),
			expectStatus:  http.StatusOK,
			expectCall:    true,
			checkCall: func(t *testing.T, body map[string]any) {
				assert.NotContains(t, body, "PIP")
			},
		},
		{
			name: "texas quote without vehicles",
			input: func() map[string]any {
				in := testingutil.TexasQuoteInput()
				in["vehicles"] = []any{}
				return in
			},
			expectStatus: http.StatusInternalServerError,
			expectError:  "at least one vehicle",
		},
		{
			name:          "texas non-owner quote",
			input:         testingutil.TexasNonOwnerQuoteInput,
			carrierStatus: http.StatusOK,
			carrierBody:   testingutil.MustEncodeJSON(services.MockCarrierResponse(dto.VariantTexasNonOwner)),
			expectStatus:  http.StatusOK,
			expectCall:    true,
			checkCall: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Y", body["IsNonOwner"])
				assert.Equal(t, testingutil.TestProducerCodeTX, body["producerCode"])
				assert.NotContains(t, body, "vehicles")
			},
		},
		{
			name: "texas non-owner quote with vehicles",
			input: func() map[string]any {
				in := testingutil.TexasNonOwnerQuoteInput()
				in["vehicles"] = testingutil.TexasQuoteInput()["vehicles"]
				return in
			},
			expectStatus: http.StatusInternalServerError,
			expectError:  "cannot have vehicles",
		},
		{
			name:          "carrier failure",
			input:         testingutil.TexasQuoteInput,
			carrierStatus: http.StatusInternalServerError,
			carrierBody:   []byte("Internal Server Error"),
			expectStatus:  http.StatusInternalServerError,
			expectError:   "Covercube API error (500)",
			expectCall:    true,
		},
		{
			name:          "carrier answers with an unexpected shape",
			input:         testingutil.TexasQuoteInput,
			carrierStatus: http.StatusOK,
			carrierBody:   []byte(`{"quoteCode":"TX-1"}`),
			expectStatus:  http.StatusInternalServerError,
			expectError:   "quotePremium",
			expectCall:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, carrier := setupTestRouter(t, nil)
			if tt.carrierBody != nil {
				carrier.RespondWith(tt.carrierStatus, tt.carrierBody)
			}

			resp, raw := postQuote(t, app, tt.input())
			assert.Equal(t, tt.expectStatus, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

			if tt.expectError != "" {
				assert.Contains(t, errorMessage(t, raw), tt.expectError)
			} else {
				assert.JSONEq(t, string(tt.carrierBody), string(raw))
			}

			if !tt.expectCall {
				assert.Empty(t, carrier.Calls())
				return
			}
			require.Len(t, carrier.Calls(), 1)
			if tt.checkCall != nil {
				tt.checkCall(t, carrier.LastCall().Body)
			}
		})
	}
}

func TestQuoteEndpoint_MockMode(t *testing.T) {
	app, carrier := setupTestRouter(t, func(cfg *config.ProductionConfig) {
		cfg.Covercube.MockMode = true
	})

	resp, raw := postQuote(t, app, testingutil.TexasQuoteInput())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var quote dto.CarrierResponse
	require.NoError(t, json.Unmarshal(raw, &quote))
	assert.Equal(t, "TX-789012", quote.QuoteCode)
	assert.Empty(t, carrier.Calls())
}

func TestQuoteEndpoint_InvalidJSON(t *testing.T) {
	app, carrier := setupTestRouter(t, nil)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/quote", []byte(`{"state":`))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, errorMessage(t, raw), "Invalid JSON in request body")
	assert.Empty(t, carrier.Calls())
}

func TestQuoteEndpoint_RateLimit(t *testing.T) {
	app, _ := setupTestRouter(t, func(cfg *config.ProductionConfig) {
		cfg.Security.GlobalRateLimit = 1
		cfg.Covercube.MockMode = true
	})

	first, _ := postQuote(t, app, testingutil.ArizonaQuoteInput())
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second, raw := postQuote(t, app, testingutil.ArizonaQuoteInput())
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Equal(t, "Too many quote requests, please retry later", errorMessage(t, raw))
}

func TestRequestIDIsEchoed(t *testing.T) {
	app, _ := setupTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "client-supplied-id", resp.Header.Get("X-Request-ID"))
}

func TestHealthCheck(t *testing.T) {
	app, _ := setupTestRouter(t, func(cfg *config.ProductionConfig) {
		cfg.Covercube.MockMode = true
	})

	resp, raw := doRequest(t, app, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.True(t, body.Success)
	assert.Equal(t, "ok", body.Data["status"])
	assert.Equal(t, "covercube-quote-adapter", body.Data["service"])
	assert.Equal(t, true, body.Data["mock_mode"])
}

func TestNotFound(t *testing.T) {
	app, _ := setupTestRouter(t, nil)

	tests := []struct {
		method   string
		path     string
		expected string
	}{
		{http.MethodGet, "/api/unknown", "Cannot GET /api/unknown"},
		{http.MethodGet, "/api/quote", "Cannot GET /api/quote"},
		{http.MethodPost, "/quote", "Cannot POST /quote"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, raw := doRequest(t, app, tt.method, tt.path, nil)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Equal(t, tt.expected, errorMessage(t, raw))
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := setupTestRouter(t, func(cfg *config.ProductionConfig) {
		cfg.Covercube.MockMode = true
	})

	quoteResp, _ := postQuote(t, app, testingutil.ArizonaQuoteInput())
	require.Equal(t, http.StatusOK, quoteResp.StatusCode)

	resp, raw := doRequest(t, app, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "covercube_quote_requests_total")
	assert.Contains(t, string(raw), "http_requests_total")
}

func TestDocumentationRoutes(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		status      int
	}{
		{"development exposes docs", "development", http.StatusOK},
		{"production hides docs", "production", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := setupTestRouter(t, func(cfg *config.ProductionConfig) {
				cfg.Deployment.Environment = tt.environment
			})

			resp, raw := doRequest(t, app, http.MethodGet, "/api/swagger.json", nil)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == http.StatusOK {
				assert.Contains(t, string(raw), "/api/quote")
			}

			docsResp, _ := doRequest(t, app, http.MethodGet, "/api/docs", nil)
			assert.Equal(t, tt.status, docsResp.StatusCode)
		})
	}
}

func TestSwaggerJSONIsCached(t *testing.T) {
	app, _ := setupTestRouter(t, func(cfg *config.ProductionConfig) {
		cfg.Deployment.Environment = "development"
	})

	first, _ := doRequest(t, app, http.MethodGet, "/api/swagger.json", nil)
	require.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, "miss", first.Header.Get("X-Cache"))

	second, raw := doRequest(t, app, http.MethodGet, "/api/swagger.json", nil)
	require.Equal(t, http.StatusOK, second.StatusCode)
	assert.Equal(t, "hit", second.Header.Get("X-Cache"))
	assert.Contains(t, second.Header.Get("Cache-Control"), "max-age=")
	assert.Contains(t, string(raw), "/api/quote")
}

func TestGetRouteDocumentation(t *testing.T) {
	docs := GetRouteDocumentation()
	require.Len(t, docs, 2)
	assert.Equal(t, "/api/quote", docs[0]["path"])
	assert.Equal(t, "POST", docs[0]["method"])
}
