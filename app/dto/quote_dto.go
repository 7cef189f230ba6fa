package dto

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// StringOrNumber holds a JSON string or number exactly as the client sent it.
// The carrier accepts both forms for several coverage and prior-insurance fields.
type StringOrNumber json.RawMessage

func (s StringOrNumber) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return s, nil
}

func (s *StringOrNumber) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	switch c := trimmed[0]; {
	case c == '"', c == '-', c >= '0' && c <= '9':
		*s = append((*s)[:0], trimmed...)
		return nil
	}
	return &json.UnmarshalTypeError{
		Value: jsonKind(trimmed[0]),
		Type:  reflect.TypeFor[StringOrNumber](),
	}
}

// String returns the value without JSON quoting
func (s StringOrNumber) String() string {
	if len(s) == 0 {
		return ""
	}
	var str string
	if err := json.Unmarshal(s, &str); err == nil {
		return str
	}
	return string(s)
}

func jsonKind(first byte) string {
	switch first {
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	default:
		return "value"
	}
}

// Party is a lien-holder or additional interest on a vehicle
type Party struct {
	PartyName string  `json:"partyName" validate:"required"`
	PartyType string  `json:"partyType" validate:"required"`
	Address1  string  `json:"address1" validate:"required"`
	Address2  *string `json:"address2,omitempty"`
	City      string  `json:"city" validate:"required"`
	State     string  `json:"state" validate:"required,min=2"`
	Zip       string  `json:"zip" validate:"required,min=3"`
}

// Violation is a driver's moving violation or incident
type Violation struct {
	Date        string         `json:"date" validate:"required,carrier_date"`
	Code        string         `json:"code" validate:"required"`
	Description string         `json:"description" validate:"required"`
	Points      StringOrNumber `json:"points" validate:"required"`
}

// VehicleFields are accepted in every state
type VehicleFields struct {
	Year       int            `json:"year" validate:"required"`
	Make       string         `json:"make" validate:"required"`
	Model      string         `json:"model" validate:"required"`
	Trim       *string        `json:"trim,omitempty"`
	VIN        *string        `json:"vin,omitempty"`
	SE         *string        `json:"SE,omitempty"`
	TR         *string        `json:"TR,omitempty"`
	COM        StringOrNumber `json:"COM,omitempty"`
	COL        StringOrNumber `json:"COL,omitempty"`
	VehicleUse string         `json:"vehicleUse" validate:"required,oneof=WRK SCH PLS ART BUS"`
	AntiTheft  *string        `json:"antitheft,omitempty"`
	Braking    *string        `json:"braking,omitempty"`
	Price      *float64       `json:"price,omitempty"`
	DriveType  *string        `json:"drivetype,omitempty"`
	Parties    []Party        `json:"parties,omitempty" validate:"omitempty,dive"`
}

// ArizonaVehicle has no registration, usage or vehicle-level roadside fields
type ArizonaVehicle struct {
	VehicleFields
}

type TexasVehicle struct {
	VehicleFields
	PlateNumber         *string  `json:"platenumber,omitempty"`
	PlateState          *string  `json:"platestate,omitempty"`
	Weight              *float64 `json:"weight,omitempty"`
	RideSharing         *YesNo   `json:"ridesharing,omitempty" validate:"omitempty,oneof=Y N"`
	RoadsideAssistance  *YesNo   `json:"roadsideAssistance,omitempty" validate:"omitempty,oneof=Y N"`
	VehiclePurchaseDate *string  `json:"vehiclepurchasedate,omitempty" validate:"omitempty,carrier_date"`
	EstimateMileage     *float64 `json:"estimatemilage,omitempty"`
	OwnershipLength     *string  `json:"ownershiplength,omitempty" validate:"omitempty,oneof=NOREG 60DAY 6MON 1YR 2YR 3YR 5YR 5YRP UNK"`
}

// DriverFields are accepted in every state
type DriverFields struct {
	FirstName           string      `json:"firstName" validate:"required"`
	LastName            string      `json:"lastName" validate:"required"`
	DOB                 string      `json:"dob" validate:"required,carrier_date"`
	Gender              Gender      `json:"gender" validate:"required,oneof=M F"`
	Points              *float64    `json:"points,omitempty"`
	EmployerName        *string     `json:"employerName,omitempty"`
	Occupation          *string     `json:"occupation,omitempty" validate:"omitempty,oneof=OTHER ADMINISTRATIVE ARTISAN ATHLETE CARPENTER CELEBRITY CLERGY CLERICAL CONSULTANT CUSTODIANJANITOR DRIVER EMERGENCYSERVICES ELECTRICIAN GENERALCONTRACTOR GENERALLABOR HEALTHCAREPROVIDER HOMEMAKER MILITARY NOTEMPLOYED PAINTER PROFESSIONAL SALESMARKETINGAGENT STUDENT LABOR"`
	BusinessPhone       *string     `json:"businessPhone,omitempty"`
	ExcludeFromCoverage *YesNo      `json:"excludeFromCoverage,omitempty" validate:"omitempty,oneof=Y N"`
	AV12                *float64    `json:"av12,omitempty"`
	AV24                *float64    `json:"av24,omitempty"`
	AV36                *float64    `json:"av36,omitempty"`
	DriverDNA           *float64    `json:"driverDNA,omitempty"`
	Violations          []Violation `json:"violations,omitempty" validate:"omitempty,dive"`
}

// ArizonaDriver requires the licensing and SR-22 details Texas leaves optional
type ArizonaDriver struct {
	DriverFields
	Married       YesNo   `json:"married" validate:"required,oneof=Y N"`
	LicenseNumber string  `json:"licenseNumber" validate:"required"`
	LicenseState  string  `json:"licenseState" validate:"required,eq=AZ"`
	LicenseStatus string  `json:"licenseStatus" validate:"required,oneof=VALID SUSP RVKD EX MX INT DUSA"`
	SR22          YesNo   `json:"sr22" validate:"required,oneof=Y N"`
	SR22Date      *string `json:"Sr22Date,omitempty" validate:"omitempty,carrier_date"`
}

type TexasDriver struct {
	DriverFields
	Married       *YesNo  `json:"married,omitempty" validate:"omitempty,oneof=Y N"`
	LicenseNumber *string `json:"licenseNumber,omitempty"`
	LicenseState  string  `json:"licenseState" validate:"required,eq=TX"`
	LicenseStatus *string `json:"licenseStatus,omitempty" validate:"omitempty,oneof=VALID SUSP RVKD EX MX INT DUSA"`
	SR22          *YesNo  `json:"sr22,omitempty" validate:"omitempty,oneof=Y N"`
}

// PolicyFields are the policy-level fields every variant carries
type PolicyFields struct {
	PolicyTerm          string  `json:"policyTerm" validate:"required"`
	InceptionDate       string  `json:"inceptionDate" validate:"required,carrier_date"`
	EffectiveDate       string  `json:"effectiveDate" validate:"required,carrier_date"`
	RateDate            string  `json:"rateDate" validate:"required,carrier_date"`
	HolderFirstName     string  `json:"holderFirstName" validate:"required"`
	HolderMiddleInitial *string `json:"holderMiddleInitial,omitempty"`
	HolderLastName      string  `json:"holderLastName" validate:"required"`
	Address             string  `json:"address" validate:"required"`
	Address2            *string `json:"address2,omitempty"`
	City                string  `json:"city" validate:"required"`
	ZipCode             string  `json:"zipCode" validate:"required,min=3"`
	Email               string  `json:"email" validate:"required,email"`
	CellPhone           string  `json:"cellPhone" validate:"required"`
	MailSame            *YesNo  `json:"mailSame,omitempty" validate:"omitempty,oneof=Y N"`

	BI    string         `json:"BI" validate:"required"`
	PD    string         `json:"PD" validate:"required"`
	UMBI  *string        `json:"UMBI,omitempty"`
	UIMBI *string        `json:"UIMBI,omitempty"`
	MP    StringOrNumber `json:"MP,omitempty"`

	UnacceptableRisk  *YesNo `json:"unacceptableRisk,omitempty" validate:"omitempty,oneof=Y N"`
	RenewalDiscount   *YesNo `json:"renewalDiscount,omitempty" validate:"omitempty,oneof=Y N"`
	AdvanceDiscount   *YesNo `json:"advanceDiscount,omitempty" validate:"omitempty,oneof=Y N"`
	PayPlan           string `json:"payplan" validate:"required"`
	HomeownerDiscount *YesNo `json:"homeownerDiscount,omitempty" validate:"omitempty,oneof=Y N"`

	IsPriorPolicy       *PriorYesNo    `json:"ispriorpolicy,omitempty" validate:"omitempty,oneof=YES NO"`
	PriorDaysLapse      StringOrNumber `json:"priordayslapse,omitempty"`
	PriorExpirationDate *string        `json:"priorexpirationdate,omitempty" validate:"omitempty,carrier_date"`
	MonthsInPrior       StringOrNumber `json:"monthsinprior,omitempty"`
	IsPriorInSameAgency *PriorYesNo    `json:"ispriorinsameagency,omitempty" validate:"omitempty,oneof=YES NO"`
}

// TexasPolicyFields only exist on Texas policies
type TexasPolicyFields struct {
	UMPD                  *string        `json:"UMPD,omitempty"`
	PIP                   StringOrNumber `json:"PIP,omitempty"`
	PriorPolicyNumber     *string        `json:"priorpolicynumber,omitempty"`
	PriorBICoverageLimit  *string        `json:"priorbicoveragelimit,omitempty"`
	PriorPIPCoverageLimit StringOrNumber `json:"priorpipcoveragelimit,omitempty"`

	MailAddress  *string `json:"mailAddress,omitempty"`
	MailAddress2 *string `json:"mailAddress2,omitempty"`
	MailCity     *string `json:"mailCity,omitempty"`
	MailState    *string `json:"mailState,omitempty"`
	MailZipCode  *string `json:"mailZipCode,omitempty"`
}

// Quote is a sanitized quote request. It is implemented only by the three
// variant records below; a variant's record has no field for anything the
// carrier forbids on that variant.
type Quote interface {
	Variant() Variant
	PolicyState() State
	Policy() *PolicyFields
	sealed()
}

type ArizonaQuote struct {
	State State `json:"state" validate:"required,eq=AZ"`
	PolicyFields
	RoadsideAssistance *YesNo           `json:"roadsideAssistance,omitempty" validate:"omitempty,oneof=Y N"`
	Vehicles           []ArizonaVehicle `json:"vehicles" validate:"dive"`
	Drivers            []ArizonaDriver  `json:"drivers" validate:"required,min=1,dive"`
}

type TexasOwnedQuote struct {
	State State `json:"state" validate:"required,eq=TX"`
	PolicyFields
	TexasPolicyFields
	RoadsideAssistance *YesNo         `json:"roadsideAssistance,omitempty" validate:"omitempty,oneof=Y N"`
	Vehicles           []TexasVehicle `json:"vehicles" validate:"dive"`
	Drivers            []TexasDriver  `json:"drivers" validate:"required,min=1,dive"`
}

// TexasNonOwnerQuote covers a driver with no insured vehicle
type TexasNonOwnerQuote struct {
	State State `json:"state" validate:"required,eq=TX"`
	PolicyFields
	TexasPolicyFields
	IsNonOwner YesNo         `json:"IsNonOwner" validate:"required,eq=Y"`
	Drivers    []TexasDriver `json:"drivers" validate:"required,min=1,dive"`
}

func (*ArizonaQuote) Variant() Variant { return VariantArizonaOwned }

func (*ArizonaQuote) PolicyState() State { return StateArizona }

func (q *ArizonaQuote) Policy() *PolicyFields { return &q.PolicyFields }

func (*ArizonaQuote) sealed() {}

func (*TexasOwnedQuote) Variant() Variant { return VariantTexasOwned }

func (*TexasOwnedQuote) PolicyState() State { return StateTexas }

func (q *TexasOwnedQuote) Policy() *PolicyFields { return &q.PolicyFields }

func (*TexasOwnedQuote) sealed() {}

func (*TexasNonOwnerQuote) Variant() Variant { return VariantTexasNonOwner }

func (*TexasNonOwnerQuote) PolicyState() State { return StateTexas }

func (q *TexasNonOwnerQuote) Policy() *PolicyFields { return &q.PolicyFields }

func (*TexasNonOwnerQuote) sealed() {}
