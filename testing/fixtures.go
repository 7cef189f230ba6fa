// Package testing provides fixtures and a fake Covercube carrier for testing the quote adapter
package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amirphl/covercube-quote-adapter/config"
)

// Producer codes and credentials used by TestCovercubeConfig
const (
	TestProducerCodeAZ = "AZ1198"
	TestProducerCodeTX = "TX1199"
	TestUsername       = "test@example.com"
	TestPassword       = "testpass123"
)

const arizonaQuoteJSON = `{
	"policyTerm": "6 Months",
	"inceptionDate": "2025/11/01",
	"effectiveDate": "2025/11/01",
	"rateDate": "2024/11/28",
	"holderFirstName": "Test4",
	"holderMiddleInitial": "A",
	"holderLastName": "ITC0307",
	"address": "235 S 190th Ave",
	"address2": "",
	"city": "BUCKEYE",
	"state": "AZ",
	"zipCode": "85326",
	"email": "Test.AZ@zywave.com",
	"cellPhone": "9999999999",
	"mailSame": "Y",
	"BI": "25/50",
	"PD": "15",
	"UMBI": "25/50",
	"UIMBI": "25/50",
	"MP": "500",
	"roadsideAssistance": "Y",
	"unacceptableRisk": "N",
	"renewalDiscount": "N",
	"advanceDiscount": "N",
	"payplan": "EFTCC",
	"homeownerDiscount": "Y",
	"ispriorpolicy": "YES",
	"priordayslapse": "10",
	"priorexpirationdate": "2025/06/28",
	"monthsinprior": "5",
	"ispriorinsameagency": "YES",
	"vehicles": [
		{
			"year": 2022,
			"make": "TOYOTA",
			"model": "CAMRY",
			"trim": "SE",
			"vin": "4T1G11AK9NU630788",
			"SE": "N",
			"TR": "Y",
			"COM": "500",
			"COL": "500",
			"vehicleUse": "WRK",
			"antitheft": "PAA",
			"braking": "ABSS",
			"price": 27245.0,
			"drivetype": "2WD"
		},
		{
			"year": 2022,
			"make": "MITSUBISHI",
			"model": "MIRAGE",
			"trim": "G4 BLACK EDIT",
			"vin": "ML32FUFJ7N",
			"SE": "N",
			"TR": "N",
			"COM": "500",
			"COL": "500",
			"vehicleUse": "WRK",
			"antitheft": "PAA",
			"braking": "ABSS",
			"price": 15645.0,
			"drivetype": "2WD",
			"parties": [
				{
					"partyName": "Bank of America (Auto)",
					"partyType": "Additional Interest",
					"address1": "Waffle",
					"address2": "Wef",
					"city": "Wef",
					"state": "DE",
					"zip": "12312"
				}
			]
		}
	],
	"drivers": [
		{
			"firstName": "Test4",
			"lastName": "ITC0307",
			"dob": "1979/11/26",
			"gender": "M",
			"married": "Y",
			"points": 0,
			"licenseNumber": "A53454557",
			"licenseState": "AZ",
			"licenseStatus": "RVKD",
			"employerName": "",
			"occupation": "ELECTRICIAN",
			"businessPhone": "",
			"sr22": "Y",
			"Sr22Date": "2022/11/11",
			"excludeFromCoverage": "N",
			"av12": 0,
			"av24": 0,
			"av36": 0,
			"driverDNA": 10,
			"violations": []
		},
		{
			"firstName": "FeTest",
			"lastName": "AZ",
			"dob": "1980/11/26",
			"gender": "F",
			"married": "Y",
			"points": 0,
			"licenseNumber": "D55654588",
			"licenseState": "AZ",
			"licenseStatus": "INT",
			"employerName": "",
			"occupation": "CARPENTER",
			"businessPhone": "",
			"sr22": "N",
			"Sr22Date": "",
			"excludeFromCoverage": "N",
			"av12": 0,
			"av24": 0,
			"av36": 0,
			"driverDNA": 10,
			"violations": [
				{
					"date": "2022/11/26",
					"code": "SPEED",
					"description": "Speeding in a School Zone",
					"points": "0"
				}
			]
		}
	]
}`

const texasPolicyJSON = `
	"policyTerm": "6 Months",
	"inceptionDate": "2025/11/01",
	"effectiveDate": "2025/11/01",
	"rateDate": "2025/08/28",
	"holderFirstName": "CCTX",
	"holderMiddleInitial": "",
	"holderLastName": "TXTest",
	"address": "13808 Tercel Trce",
	"address2": "",
	"city": "MANOR",
	"state": "TX",
	"zipCode": "78653",
	"email": "fdeliva@zywave.com",
	"cellPhone": "1234567891",
	"mailSame": "Y",
	"mailAddress": "",
	"mailAddress2": "",
	"mailCity": "",
	"mailState": "",
	"mailZipCode": "",
	"BI": "30/60",
	"PD": "25",
	"UMBI": "30/60",
	"UIMBI": "30/60",
	"UMPD": "25",
	"MP": "500",
	"PIP": "2500",
	"unacceptableRisk": "N",
	"renewalDiscount": "N",
	"advanceDiscount": "N",
	"payplan": "EFTCC",
	"homeownerDiscount": "Y",
	"ispriorpolicy": "YES",
	"priorpolicynumber": "",
	"priordayslapse": 27,
	"priorexpirationdate": "2025/08/01",
	"monthsinprior": 15,
	"priorbicoveragelimit": "30/60",
	"priorpipcoveragelimit": 30,
	"drivers": [
		{
			"firstName": "CCTX",
			"lastName": "TXTest",
			"dob": "1993/04/23",
			"gender": "F",
			"married": "N",
			"points": 0,
			"licenseNumber": "",
			"licenseState": "TX",
			"licenseStatus": "DUSA",
			"employerName": "",
			"occupation": "OTHER",
			"businessPhone": "",
			"sr22": "N",
			"excludeFromCoverage": "N",
			"av12": 0,
			"av24": 0,
			"av36": 0,
			"driverDNA": 10,
			"violations": [
				{
					"date": "2022/11/26",
					"code": "ADMOV",
					"description": "Driving Too Slow for Conditions",
					"points": "0"
				}
			]
		}
	]`

const texasQuoteJSON = `{` + texasPolicyJSON + `,
	"roadsideAssistance": "Y",
	"vehicles": [
		{
			"year": 2022,
			"make": "TOYOTA",
			"model": "CAMRY",
			"trim": "NIGHT SHADE",
			"vin": "4T1S11BK0N",
			"roadsideAssistance": "Y",
			"SE": "N",
			"TR": "Y",
			"COM": "1000",
			"COL": "1000",
			"vehicleUse": "WRK",
			"platenumber": "1234567",
			"platestate": "TX",
			"antitheft": "PAA",
			"braking": "ABSS",
			"price": 28785.0,
			"weight": 0,
			"drivetype": "2WD",
			"ridesharing": "N",
			"vehiclepurchasedate": "2025/01/01",
			"estimatemilage": 100000,
			"ownershiplength": "NOREG"
		}
	]
}`

const texasNonOwnerQuoteJSON = `{` + texasPolicyJSON + `,
	"IsNonOwner": "Y"
}`

// ArizonaQuoteInput returns an Arizona request with two vehicles and two drivers
func ArizonaQuoteInput() map[string]any {
	return MustDecodeJSON(arizonaQuoteJSON)
}

// TexasQuoteInput returns a Texas owned-vehicle request
func TexasQuoteInput() map[string]any {
	return MustDecodeJSON(texasQuoteJSON)
}

// TexasNonOwnerQuoteInput returns a Texas non-owner request without a vehicles key
func TexasNonOwnerQuoteInput() map[string]any {
	return MustDecodeJSON(texasNonOwnerQuoteJSON)
}

// MustDecodeJSON decodes a JSON object the way the HTTP handler does,
// keeping numbers as json.Number
func MustDecodeJSON(raw string) map[string]any {
	decoder := json.NewDecoder(bytes.NewReader([]byte(raw)))
	decoder.UseNumber()

	var out map[string]any
	if err := decoder.Decode(&out); err != nil {
		panic(fmt.Sprintf("invalid fixture JSON: %v", err))
	}
	return out
}

// MustEncodeJSON marshals v or panics
func MustEncodeJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("failed to encode fixture: %v", err))
	}
	return data
}

// TestCovercubeConfig returns a complete carrier configuration pointing at url
func TestCovercubeConfig(url string) config.CovercubeConfig {
	return config.CovercubeConfig{
		URL:      url,
		Username: TestUsername,
		Password: TestPassword,
		ProducerCodes: map[string]string{
			"AZ": TestProducerCodeAZ,
			"TX": TestProducerCodeTX,
		},
		Timeout: 5 * time.Second,
	}
}

// TestProductionConfig returns a valid application configuration for router tests
func TestProductionConfig(carrierURL string) *config.ProductionConfig {
	return &config.ProductionConfig{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			RequestTimeout:  5 * time.Second,
			BodyLimit:       1024 * 1024,
		},
		Security: config.SecurityConfig{
			AllowedOrigins:  []string{"http://localhost:3000"},
			CORSMaxAge:      600,
			GlobalRateLimit: 1000,
			RateLimitWindow: time.Minute,
		},
		Logging: config.LoggingConfig{
			Output: "stdout",
		},
		Metrics: config.MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Deployment: config.DeploymentConfig{
			Environment: "test",
			Version:     "test",
		},
		Covercube: TestCovercubeConfig(carrierURL),
	}
}
