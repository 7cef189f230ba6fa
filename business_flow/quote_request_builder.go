package businessflow

import (
	"fmt"

	"github.com/amirphl/covercube-quote-adapter/app/dto"
	"github.com/amirphl/covercube-quote-adapter/config"
)

// BuildCarrierRequest injects the backend-owned fields into a sanitized quote.
// Credentials and producer code always come from cfg, never from the client.
func BuildCarrierRequest(quote dto.Quote, cfg config.CovercubeConfig) (dto.CarrierRequest, error) {
	if quote == nil {
		return nil, fmt.Errorf("quote is nil")
	}

	state := quote.PolicyState()
	producerCode := cfg.ProducerCode(string(state))
	if producerCode == "" {
		return nil, NewBusinessErrorf(CodeConfiguration, "no producer code configured for state %s", ErrConfiguration, state)
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, NewBusinessError(CodeConfiguration, "carrier credentials are not configured", ErrConfiguration)
	}

	credentials := dto.CarrierCredentials{
		Action:       dto.ActionRateQuote,
		Username:     cfg.Username,
		Password:     cfg.Password,
		ProducerCode: producerCode,
		TransType:    dto.TransTypeNewBusiness,
	}

	switch q := quote.(type) {
	case *dto.ArizonaQuote:
		return &dto.ArizonaCarrierRequest{CarrierCredentials: credentials, ArizonaQuote: *q}, nil
	case *dto.TexasOwnedQuote:
		// The record has no IsNonOwner field, so the key is never sent
		return &dto.TexasOwnedCarrierRequest{CarrierCredentials: credentials, TexasOwnedQuote: *q}, nil
	case *dto.TexasNonOwnerQuote:
		req := &dto.TexasNonOwnerCarrierRequest{CarrierCredentials: credentials, TexasNonOwnerQuote: *q}
		req.IsNonOwner = dto.Yes
		return req, nil
	default:
		return nil, fmt.Errorf("unsupported quote variant %T", quote)
	}
}
