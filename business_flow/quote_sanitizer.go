package businessflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/amirphl/covercube-quote-adapter/app/dto"
	"github.com/go-playground/validator/v10"
)

var carrierDatePattern = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)

// Embedded record types do not appear in reported field paths
var embeddedFieldNames = map[string]bool{
	"PolicyFields":      true,
	"TexasPolicyFields": true,
	"VehicleFields":     true,
	"DriverFields":      true,
}

// Common required fields, in the order their absence is reported
var requiredQuoteFields = []struct {
	key     string
	message string
}{
	{"holderFirstName", "Policyholder first name is required"},
	{"holderLastName", "Policyholder last name is required"},
	{"email", "Email address is required"},
	{"cellPhone", "Phone number is required"},
	{"address", "Address is required"},
	{"city", "City is required"},
	{"zipCode", "Zip code is required"},
}

var quoteValidator = newQuoteValidator()

func newQuoteValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("carrier_date", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || carrierDatePattern.MatchString(value)
	})
	return v
}

// ClassifyQuote decides which policy variant an untyped request represents.
// Only the root shape and the state are inspected.
func ClassifyQuote(input any) (dto.Variant, error) {
	raw, ok := input.(map[string]any)
	if !ok {
		return "", ErrMalformedBody
	}
	return classify(raw)
}

func classify(raw map[string]any) (dto.Variant, error) {
	state, _ := raw["state"].(string)
	switch dto.State(state) {
	case dto.StateArizona:
		return dto.VariantArizonaOwned, nil
	case dto.StateTexas:
		if flag, _ := raw["IsNonOwner"].(string); dto.YesNo(flag) == dto.Yes {
			return dto.VariantTexasNonOwner, nil
		}
		return dto.VariantTexasOwned, nil
	default:
		return "", ErrUnsupportedState
	}
}

// ParseAndSanitizeQuote validates an untyped quote request and returns the
// record of the single variant it belongs to. Optional fields the variant does
// not allow are dropped; structural violations are rejected. Checks run in
// phases and every issue of the first failing phase is reported.
func ParseAndSanitizeQuote(input any) (dto.Quote, error) {
	raw, ok := input.(map[string]any)
	if !ok {
		return nil, ErrMalformedBody
	}

	variant, err := classify(raw)
	if err != nil {
		return nil, err
	}

	if err := checkRequiredQuoteFields(raw); err != nil {
		return nil, err
	}

	var quote dto.Quote
	switch variant {
	case dto.VariantArizonaOwned:
		quote = &dto.ArizonaQuote{}
	case dto.VariantTexasOwned:
		quote = &dto.TexasOwnedQuote{}
	default:
		quote = &dto.TexasNonOwnerQuote{}
	}

	if err := decodeQuote(raw, quote); err != nil {
		return nil, err
	}

	if err := validateQuoteRecord(quote); err != nil {
		return nil, err
	}

	if err := checkVariantRules(raw, quote); err != nil {
		return nil, err
	}

	return quote, nil
}

func checkRequiredQuoteFields(raw map[string]any) error {
	var issues []FieldIssue

	if drivers, ok := raw["drivers"].([]any); !ok || len(drivers) == 0 {
		issues = append(issues, FieldIssue{Path: "drivers", Reason: "At least one driver is required"})
	}
	for _, field := range requiredQuoteFields {
		if value, ok := raw[field.key].(string); !ok || value == "" {
			issues = append(issues, FieldIssue{Path: field.key, Reason: field.message})
		}
	}

	return newValidationError(ErrInvalidQuoteRequest, issues)
}

// decodeQuote maps the untyped request onto the variant record. Keys the
// record has no field for are dropped here.
func decodeQuote(raw map[string]any, quote dto.Quote) error {
	data, err := json.Marshal(retainDeclaredKeys(raw, reflect.TypeOf(quote)))
	if err != nil {
		return NewBusinessError(CodeInvalidQuoteRequest, "failed to encode quote request", err)
	}

	if err := json.Unmarshal(data, quote); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			path := typeErr.Field
			if path == "" {
				path = "body"
			}
			return newValidationError(ErrInvalidQuoteRequest, []FieldIssue{{
				Path:   path,
				Reason: fmt.Sprintf("expected %s, got %s", describeType(typeErr.Type), typeErr.Value),
			}})
		}
		return newValidationError(ErrInvalidQuoteRequest, []FieldIssue{{Path: "body", Reason: err.Error()}})
	}

	return nil
}

// retainDeclaredKeys keeps only the object keys that exactly match a JSON field
// name of t, at every nesting level. encoding/json matches names without
// regard to case, so "VEHICLES" would otherwise fill the vehicles field.
func retainDeclaredKeys(value any, t reflect.Type) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch v := value.(type) {
	case map[string]any:
		if t.Kind() != reflect.Struct {
			return v
		}
		fields := declaredFields(t)
		kept := make(map[string]any, len(v))
		for key, item := range v {
			if fieldType, ok := fields[key]; ok {
				kept[key] = retainDeclaredKeys(item, fieldType)
			}
		}
		return kept
	case []any:
		if t.Kind() != reflect.Slice {
			return v
		}
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = retainDeclaredKeys(item, t.Elem())
		}
		return items
	default:
		return value
	}
}

// declaredFields maps JSON field names to field types, including fields
// promoted from embedded records
func declaredFields(t reflect.Type) map[string]reflect.Type {
	fields := make(map[string]reflect.Type)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if field.Anonymous && name == "" && field.Type.Kind() == reflect.Struct {
			for embeddedName, embeddedType := range declaredFields(field.Type) {
				if _, shadowed := fields[embeddedName]; !shadowed {
					fields[embeddedName] = embeddedType
				}
			}
			continue
		}
		if !field.IsExported() || name == "" || name == "-" {
			continue
		}
		fields[name] = field.Type
	}
	return fields
}

func validateQuoteRecord(quote dto.Quote) error {
	err := quoteValidator.Struct(quote)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return newValidationError(ErrInvalidQuoteRequest, []FieldIssue{{Path: "body", Reason: err.Error()}})
	}

	issues := make([]FieldIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, FieldIssue{Path: fieldPath(fe.Namespace()), Reason: fieldReason(fe)})
	}
	return newValidationError(ErrInvalidQuoteRequest, issues)
}

// checkVariantRules enforces the vehicle rules that distinguish the variants
func checkVariantRules(raw map[string]any, quote dto.Quote) error {
	var issues []FieldIssue

	switch q := quote.(type) {
	case *dto.ArizonaQuote:
		if len(q.Vehicles) == 0 {
			issues = append(issues, FieldIssue{Path: "vehicles", Reason: "Arizona policies require at least one vehicle"})
		}
	case *dto.TexasOwnedQuote:
		if len(q.Vehicles) == 0 {
			issues = append(issues, FieldIssue{Path: "vehicles", Reason: "Texas policies require at least one vehicle (or set IsNonOwner='Y')"})
		}
		if flag, present := raw["IsNonOwner"]; present && flag != nil && flag != string(dto.No) {
			issues = append(issues, FieldIssue{Path: "IsNonOwner", Reason: "must be one of: Y N"})
		}
	case *dto.TexasNonOwnerQuote:
		// An empty list is dropped like any other disallowed optional field
		switch vehicles := raw["vehicles"].(type) {
		case nil:
		case []any:
			if len(vehicles) > 0 {
				issues = append(issues, FieldIssue{Path: "vehicles", Reason: "Texas non-owner policies cannot have vehicles"})
			}
		default:
			issues = append(issues, FieldIssue{Path: "vehicles", Reason: "Texas non-owner policies cannot have vehicles"})
		}
	}

	return newValidationError(ErrInvalidQuoteRequest, issues)
}

// fieldPath turns a validator namespace such as
// "ArizonaQuote.vehicles[0].VehicleFields.year" into "vehicles[0].year"
func fieldPath(namespace string) string {
	segments := strings.Split(namespace, ".")
	if len(segments) > 1 {
		segments = segments[1:]
	}
	kept := segments[:0]
	for _, segment := range segments {
		if !embeddedFieldNames[segment] {
			kept = append(kept, segment)
		}
	}
	return strings.Join(kept, ".")
}

func fieldReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "carrier_date":
		return "must use YYYY/MM/DD"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "eq":
		return "must be " + fe.Param()
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must contain at least " + fe.Param() + " item(s)"
		}
		return "must be at least " + fe.Param() + " characters"
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}

func describeType(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	if t == reflect.TypeFor[dto.StringOrNumber]() {
		return "string or number"
	}
	switch t.Kind() {
	case reflect.Pointer:
		return describeType(t.Elem())
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return t.String()
	}
}
