package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"time"

	businessflow "github.com/amirphl/covercube-quote-adapter/business_flow"
	"github.com/gofiber/fiber/v3"
)

type QuoteHandlerInterface interface {
	RequestQuote(c fiber.Ctx) error
}

type QuoteHandler struct {
	flow    businessflow.QuoteFlow
	timeout time.Duration
}

func NewQuoteHandler(flow businessflow.QuoteFlow, timeout time.Duration) *QuoteHandler {
	return &QuoteHandler{flow: flow, timeout: timeout}
}

// RequestQuote rates a new business quote with Covercube
// @Summary Request Rate Quote
// @Description Classify the policy as Arizona, Texas or Texas non-owner, sanitize it, inject carrier credentials and return the carrier's quote unchanged
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body dto.ArizonaQuote true "Quote request; Texas policies follow dto.TexasOwnedQuote or dto.TexasNonOwnerQuote"
// @Success 200 {object} dto.CarrierResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/quote [post]
func (h *QuoteHandler) RequestQuote(c fiber.Ctx) error {
	input, err := decodeRequestBody(c.Body())
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "Invalid JSON in request body: "+err.Error())
	}

	ctx, cancel := createRequestContext(c, "/api/quote", h.timeout)
	defer cancel()

	result, err := h.flow.RequestQuote(ctx, input, clientMetadata(c))
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(result.Body)
}

// decodeRequestBody parses a single JSON document keeping numbers as json.Number
func decodeRequestBody(body []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var input any
	if err := decoder.Decode(&input); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("unexpected end of JSON input")
		}
		return nil, err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid character after top-level value")
	}
	return input, nil
}
