package services

import "github.com/amirphl/covercube-quote-adapter/app/dto"

const (
	mockViewQuoteBaseURL      = "https://pi-cc-dev.azurewebsites.net/quote/bridge/"
	mockConsumerBridgeBaseURL = "https://pi-consumer-dev.azurewebsites.net/quote/"
)

// MockCarrierResponse returns the canned carrier quote for a policy variant
func MockCarrierResponse(variant dto.Variant) dto.CarrierResponse {
	switch variant {
	case dto.VariantArizonaOwned:
		return mockArizonaResponse()
	case dto.VariantTexasNonOwner:
		return mockTexasNonOwnerResponse()
	default:
		return mockTexasResponse()
	}
}

func mockQuoteLinks(resp dto.CarrierResponse) dto.CarrierResponse {
	resp.ViewQuote = mockViewQuoteBaseURL + resp.QuoteCode
	resp.ConsumerBridge = mockConsumerBridgeBaseURL + resp.QuoteCode
	return resp
}

func mockArizonaResponse() dto.CarrierResponse {
	return mockQuoteLinks(dto.CarrierResponse{
		QuoteCode:      "AZ-123456",
		QuotePremium:   855.54,
		QuoteFeesTotal: 130.0,
		QuoteTotal:     985.54,
		PolicyFee:      85.0,
		Drivers: []dto.RatedDriver{
			{FirstName: "Test4", LastName: "ITC0307", DriverAge: 45, RateOrder: 1},
			{FirstName: "FeTest", LastName: "AZ", DriverAge: 44, RateOrder: 2},
		},
		Coverages: []dto.Coverage{
			{CoverageCode: "BI", CoverageLimit: "25/50", CoverageTotal: 205.43},
			{CoverageCode: "PD", CoverageLimit: "15", CoverageTotal: 100.22},
			{CoverageCode: "UMBI", CoverageLimit: "25/50", CoverageTotal: 180.76},
			{CoverageCode: "UIMBI", CoverageLimit: "25/50", CoverageTotal: 150.33},
			{CoverageCode: "MP", CoverageLimit: "500", CoverageTotal: 50.0},
		},
		PayPlan: []dto.PayPlan{
			{
				Description:  "6 Monthly Payments-Direct Billing",
				DownPayment:  251.25,
				DownPercent:  20.0,
				TotalPremium: 1136.5,
				Instalments:  6,
				RefCode:      dto.PayPlanSixMonthlyDirect,
			},
			{
				Description:  "Full Payment",
				DownPayment:  985.54,
				DownPercent:  100.0,
				TotalPremium: 985.54,
				Instalments:  1,
				RefCode:      dto.PayPlanFull,
			},
		},
	})
}

func mockTexasResponse() dto.CarrierResponse {
	return mockQuoteLinks(dto.CarrierResponse{
		QuoteCode:      "TX-789012",
		QuotePremium:   920.75,
		QuoteFeesTotal: 140.0,
		QuoteTotal:     1060.75,
		PolicyFee:      85.0,
		Drivers: []dto.RatedDriver{
			{FirstName: "CCTX", LastName: "TXTest", DriverAge: 32, RateOrder: 1},
		},
		Coverages: []dto.Coverage{
			{CoverageCode: "BI", CoverageLimit: "30/60", CoverageTotal: 225.43},
			{CoverageCode: "PD", CoverageLimit: "25", CoverageTotal: 110.22},
			{CoverageCode: "UMBI", CoverageLimit: "30/60", CoverageTotal: 190.76},
			{CoverageCode: "UIMBI", CoverageLimit: "30/60", CoverageTotal: 170.12},
			{CoverageCode: "PIP", CoverageLimit: "2500", CoverageTotal: 85.12},
			{CoverageCode: "UMPD", CoverageLimit: "25", CoverageTotal: 45.0},
		},
		PayPlan: []dto.PayPlan{
			{
				Description:  "6 Monthly Payments - Direct Billing",
				DownPayment:  260.25,
				DownPercent:  20.0,
				TotalPremium: 1060.75,
				Instalments:  6,
				RefCode:      dto.PayPlanSixMonthlyDirect,
			},
		},
	})
}

func mockTexasNonOwnerResponse() dto.CarrierResponse {
	return mockQuoteLinks(dto.CarrierResponse{
		QuoteCode:      "TXNO-345678",
		QuotePremium:   412.5,
		QuoteFeesTotal: 80.0,
		QuoteTotal:     492.5,
		PolicyFee:      60.0,
		Drivers: []dto.RatedDriver{
			{FirstName: "CCTX", LastName: "TXTest", DriverAge: 32, RateOrder: 1},
		},
		Coverages: []dto.Coverage{
			{CoverageCode: "BI", CoverageLimit: "30/60", CoverageTotal: 160.0},
			{CoverageCode: "PD", CoverageLimit: "25", CoverageTotal: 95.5},
			{CoverageCode: "UMBI", CoverageLimit: "30/60", CoverageTotal: 110.75},
			{CoverageCode: "PIP", CoverageLimit: "2500", CoverageTotal: 46.25},
		},
		PayPlan: []dto.PayPlan{
			{
				Description:  "6 Monthly Payments - Direct Billing",
				DownPayment:  98.5,
				DownPercent:  20.0,
				TotalPremium: 492.5,
				Instalments:  6,
				RefCode:      dto.PayPlanSixMonthlyDirect,
			},
		},
	})
}
