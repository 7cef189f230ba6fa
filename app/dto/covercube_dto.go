package dto

import "encoding/json"

// CarrierCredentials are injected by the backend and never taken from client input
type CarrierCredentials struct {
	Action       string `json:"action"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	ProducerCode string `json:"producerCode"`
	TransType    string `json:"transType"`
}

func (c CarrierCredentials) Credentials() CarrierCredentials { return c }

// CarrierRequest is a sanitized quote plus backend-injected credentials,
// serialized flat as the carrier expects.
type CarrierRequest interface {
	Quote
	Credentials() CarrierCredentials
}

type ArizonaCarrierRequest struct {
	CarrierCredentials
	ArizonaQuote
}

type TexasOwnedCarrierRequest struct {
	CarrierCredentials
	TexasOwnedQuote
}

type TexasNonOwnerCarrierRequest struct {
	CarrierCredentials
	TexasNonOwnerQuote
}

// CarrierResponse is a rate quote returned by Covercube
type CarrierResponse struct {
	QuoteCode      string        `json:"quoteCode"`
	QuotePremium   float64       `json:"quotePremium"`
	QuoteFeesTotal float64       `json:"quoteFeesTotal"`
	QuoteTotal     float64       `json:"quoteTotal"`
	PolicyFee      float64       `json:"policyFee"`
	Drivers        []RatedDriver `json:"drivers"`
	Coverages      []Coverage    `json:"coverages"`
	PayPlan        []PayPlan     `json:"payplan"`
	ViewQuote      string        `json:"viewQuote"`
	ConsumerBridge string        `json:"consumerBridge"`
}

type RatedDriver struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	DriverAge float64 `json:"driverAge"`
	RateOrder float64 `json:"rateOrder"`
}

type Coverage struct {
	CoverageCode  string  `json:"coverageCode"`
	CoverageLimit string  `json:"coverageLimit"`
	CoverageTotal float64 `json:"coverageTotal"`
}

// PayPlan is one payment option offered for the quote
type PayPlan struct {
	Description  string  `json:"description"`
	DownPayment  float64 `json:"downPayment"`
	DownPercent  float64 `json:"downPercent"`
	TotalPremium float64 `json:"totalPremium"`
	Instalments  int     `json:"instalments"`
	RefCode      string  `json:"refCode"`
}

// QuoteResult is a validated carrier quote. Body holds the carrier's bytes
// exactly as received.
type QuoteResult struct {
	Variant  Variant
	Response *CarrierResponse
	Body     json.RawMessage
}
