package dto

// State is a jurisdiction the carrier rates for
type State string

const (
	StateArizona State = "AZ"
	StateTexas   State = "TX"
)

// Variant tags the three mutually exclusive policy shapes
type Variant string

const (
	VariantArizonaOwned  Variant = "ArizonaOwned"
	VariantTexasOwned    Variant = "TexasOwned"
	VariantTexasNonOwner Variant = "TexasNonOwner"
)

// YesNo is the carrier's single-letter flag
type YesNo string

const (
	Yes YesNo = "Y"
	No  YesNo = "N"
)

// PriorYesNo is the long-form flag used by prior-insurance fields
type PriorYesNo string

const (
	PriorYes PriorYesNo = "YES"
	PriorNo  PriorYesNo = "NO"
)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Backend-injected constants
const (
	ActionRateQuote      = "RATEQUOTE"
	TransTypeNewBusiness = "NB"
)

// Policy terms
const (
	PolicyTermSixMonths    = "6 Months"
	PolicyTermTwelveMonths = "12 Months"
)

// Pay plan reference codes
const (
	PayPlanFull             = "FP"
	PayPlanSixMonthly       = "6P"
	PayPlanSixMonthlyDirect = "6P2"
)

// Drive types
const (
	DriveTypeTwoWheel  = "2WD"
	DriveTypeFourWheel = "4WD"
)

// VehicleUse codes and their display names
var VehicleUses = map[string]string{
	"WRK": "Work",
	"SCH": "School",
	"PLS": "Pleasure",
	"ART": "Artisan",
	"BUS": "Business",
}

// Occupations maps occupation codes to display names
var Occupations = map[string]string{
	"OTHER":               "Other",
	"ADMINISTRATIVE":      "Administrative",
	"ARTISAN":             "Artisan",
	"ATHLETE":             "Athlete",
	"CARPENTER":           "Carpenter",
	"CELEBRITY":           "Celebrity",
	"CLERGY":              "Clergy",
	"CLERICAL":            "Clerical",
	"CONSULTANT":          "Consultant",
	"CUSTODIANJANITOR":    "Custodian/Janitor",
	"DRIVER":              "Driver",
	"EMERGENCYSERVICES":   "Emergency Services",
	"ELECTRICIAN":         "Electrician",
	"GENERALCONTRACTOR":   "General Contractor",
	"GENERALLABOR":        "General Labor",
	"HEALTHCAREPROVIDER":  "Healthcare Provider",
	"HOMEMAKER":           "Homemaker",
	"MILITARY":            "Military",
	"NOTEMPLOYED":         "Not Employed",
	"PAINTER":             "Painter",
	"PROFESSIONAL":        "Professional - College Level or Greater",
	"SALESMARKETINGAGENT": "Sales/Marketing/Agent",
	"STUDENT":             "Student",
	"LABOR":               "Technical/Skilled Labor",
}

// LicenseStatuses maps license status codes to display names
var LicenseStatuses = map[string]string{
	"VALID": "Valid",
	"SUSP":  "Suspended",
	"RVKD":  "Revoked",
	"EX":    "Expired",
	"MX":    "Mexico",
	"INT":   "International",
	"DUSA":  "DUSA",
}

// OwnershipLengths maps ownership length codes to display names
var OwnershipLengths = map[string]string{
	"NOREG": "Not registered in my name",
	"60DAY": "1-60 days",
	"6MON":  "61 days - 6 months",
	"1YR":   "6 months - 1 year",
	"2YR":   "1 year - 2 years",
	"3YR":   "2 years - 3 years",
	"5YR":   "3 years - 5 years",
	"5YRP":  "5 years+",
	"UNK":   "Unknown",
}

// Documented coverage limits per state. Rating is the carrier's job, so these
// are only consulted for diagnostics.
var coverageLimits = map[State]map[string][]string{
	StateArizona: {
		"BI":    {"25/50", "50/100", "100/300"},
		"PD":    {"15", "25", "50"},
		"UMBI":  {"25/50", "50/100", "100/300"},
		"UIMBI": {"25/50", "50/100", "100/300"},
		"MP":    {"500", "1000", "2000", "5000"},
		"COM":   {"500", "1000"},
		"COL":   {"500", "1000"},
	},
	StateTexas: {
		"BI":    {"30/60", "50/100", "100/300"},
		"PD":    {"25", "50", "100"},
		"UMBI":  {"30/60", "50/100", "100/300"},
		"UIMBI": {"30/60", "50/100", "100/300"},
		"UMPD":  {"25"},
		"MP":    {"500", "1000", "2000", "5000"},
		"PIP":   {"2500"},
		"COLL":  {"250", "500", "1000"},
		"CMP":   {"250", "500", "1000"},
	},
}

// IsValidCoverageLimit reports whether limit is a documented value for the
// coverage in the given state.
func IsValidCoverageLimit(state State, coverage, limit string) bool {
	for _, l := range coverageLimits[state][coverage] {
		if l == limit {
			return true
		}
	}
	return false
}
