package businessflow

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/amirphl/covercube-quote-adapter/app/dto"
	"github.com/amirphl/covercube-quote-adapter/app/services"
	"github.com/amirphl/covercube-quote-adapter/config"
	"github.com/amirphl/covercube-quote-adapter/utils"
)

// QuoteFlow handles the rate quote business logic
type QuoteFlow interface {
	RequestQuote(ctx context.Context, input any, metadata *ClientMetadata) (*dto.QuoteResult, error)
}

// QuoteFlowImpl implements the rate quote business flow
type QuoteFlowImpl struct {
	client services.CovercubeClient
	cfg    config.CovercubeConfig
}

// NewQuoteFlow creates a new quote flow instance
func NewQuoteFlow(
	client services.CovercubeClient,
	cfg config.CovercubeConfig,
) QuoteFlow {
	return &QuoteFlowImpl{
		client: client,
		cfg:    cfg,
	}
}

// RequestQuote sanitizes the client payload, sends it to the carrier and
// returns the validated quote
func (f *QuoteFlowImpl) RequestQuote(ctx context.Context, input any, metadata *ClientMetadata) (*dto.QuoteResult, error) {
	requestID := requestIDOf(metadata)

	quote, err := ParseAndSanitizeQuote(input)
	if err != nil {
		variant, _ := ClassifyQuote(input)
		recordQuoteOutcome(string(variant), outcomeInvalidRequest)
		log.Printf("Rejected quote request (request_id=%s): %v", requestID, err)
		return nil, err
	}
	variant := quote.Variant()

	for _, limit := range undocumentedCoverageLimits(quote) {
		log.Printf("Quote for %s uses undocumented coverage limit %s (request_id=%s)", variant, limit, requestID)
	}

	req, err := BuildCarrierRequest(quote, f.cfg)
	if err != nil {
		recordQuoteOutcome(string(variant), outcomeConfigurationError)
		log.Printf("Cannot build carrier request for %s quote (request_id=%s): %v", variant, requestID, err)
		return nil, err
	}
	log.Printf("Requesting %s quote from Covercube (producer=%s, request_id=%s)", variant, req.Credentials().ProducerCode, requestID)

	start := time.Now()
	body, err := f.client.RateQuote(ctx, req)
	carrierCallDuration.WithLabelValues(string(variant)).Observe(time.Since(start).Seconds())
	if err != nil {
		recordQuoteOutcome(string(variant), outcomeCarrierError)
		log.Printf("Covercube call failed for %s quote (request_id=%s): %v", variant, requestID, err)
		return nil, NewBusinessError(CodeCarrierRequestFailed, "Failed to call Covercube API", err)
	}

	payload, err := decodeCarrierBody(body)
	if err != nil {
		recordQuoteOutcome(string(variant), outcomeInvalidResponse)
		return nil, err
	}

	response, err := ValidateCarrierResponse(payload)
	if err != nil {
		recordQuoteOutcome(string(variant), outcomeInvalidResponse)
		log.Printf("Covercube returned an unusable %s quote (request_id=%s): %v", variant, requestID, err)
		return nil, err
	}

	recordQuoteOutcome(string(variant), outcomeSuccess)
	log.Printf("Covercube issued quote %s for %s policy (total=%.2f, request_id=%s)", response.QuoteCode, variant, response.QuoteTotal, requestID)

	return &dto.QuoteResult{
		Variant:  variant,
		Response: response,
		Body:     body,
	}, nil
}

func decodeCarrierBody(body json.RawMessage) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, newValidationError(ErrInvalidCarrierResponse, []FieldIssue{{Path: "response", Reason: err.Error()}})
	}
	return payload, nil
}

type coverageLimit struct {
	code  string
	limit string
}

// undocumentedCoverageLimits lists policy coverages whose limit is not in the
// state's documented table, formatted as "CODE=limit"
func undocumentedCoverageLimits(quote dto.Quote) []string {
	policy := quote.Policy()
	limits := []coverageLimit{
		{"BI", policy.BI},
		{"PD", policy.PD},
		{"UMBI", utils.Deref(policy.UMBI)},
		{"UIMBI", utils.Deref(policy.UIMBI)},
		{"MP", policy.MP.String()},
	}

	var texas *dto.TexasPolicyFields
	switch q := quote.(type) {
	case *dto.TexasOwnedQuote:
		texas = &q.TexasPolicyFields
	case *dto.TexasNonOwnerQuote:
		texas = &q.TexasPolicyFields
	}
	if texas != nil {
		limits = append(limits,
			coverageLimit{"UMPD", utils.Deref(texas.UMPD)},
			coverageLimit{"PIP", texas.PIP.String()},
		)
	}

	var undocumented []string
	for _, l := range limits {
		if l.limit == "" || dto.IsValidCoverageLimit(quote.PolicyState(), l.code, l.limit) {
			continue
		}
		undocumented = append(undocumented, l.code+"="+l.limit)
	}
	return undocumented
}
