package businessflow

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"strconv"

	"github.com/amirphl/covercube-quote-adapter/app/dto"
)

type valueKind string

const (
	kindString  valueKind = "string"
	kindNumber  valueKind = "number"
	kindInteger valueKind = "integer"
)

type shapeField struct {
	key  string
	kind valueKind
}

var (
	ratedDriverShape = []shapeField{
		{"firstName", kindString},
		{"lastName", kindString},
		{"driverAge", kindNumber},
		{"rateOrder", kindNumber},
	}
	coverageShape = []shapeField{
		{"coverageCode", kindString},
		{"coverageLimit", kindString},
		{"coverageTotal", kindNumber},
	}
	payPlanShape = []shapeField{
		{"description", kindString},
		{"downPayment", kindNumber},
		{"downPercent", kindNumber},
		{"totalPremium", kindNumber},
		{"instalments", kindInteger},
		{"refCode", kindString},
	}
)

// ValidateCarrierResponse checks that an untyped carrier response has every
// field the quote contract needs and returns it typed. All problems are
// reported together. Keys outside the contract are ignored.
func ValidateCarrierResponse(payload any) (*dto.CarrierResponse, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, newValidationError(ErrInvalidCarrierResponse, []FieldIssue{{
			Path:   "response",
			Reason: "expected object, got " + describeValue(payload),
		}})
	}

	var issues []FieldIssue

	if code, ok := obj["quoteCode"].(string); !ok || code == "" {
		issues = append(issues, FieldIssue{Path: "quoteCode", Reason: "expected non-empty string, got " + describeValue(obj["quoteCode"])})
	}
	for _, key := range []string{"quotePremium", "quoteFeesTotal", "quoteTotal", "policyFee"} {
		issues = append(issues, checkValue(key, obj[key], kindNumber)...)
	}
	issues = append(issues, checkArray(obj, "drivers", ratedDriverShape)...)
	issues = append(issues, checkArray(obj, "coverages", coverageShape)...)
	issues = append(issues, checkArray(obj, "payplan", payPlanShape)...)
	for _, key := range []string{"viewQuote", "consumerBridge"} {
		link, ok := obj[key].(string)
		if !ok || quoteValidator.Var(link, "required,url") != nil {
			issues = append(issues, FieldIssue{Path: key, Reason: "expected URL, got " + describeValue(obj[key])})
		}
	}

	if err := newValidationError(ErrInvalidCarrierResponse, issues); err != nil {
		return nil, err
	}

	data, err := json.Marshal(withIntegralInstalments(obj))
	if err != nil {
		return nil, NewBusinessError(CodeInvalidCarrierResponse, "failed to encode carrier response", ErrInvalidCarrierResponse)
	}
	var response dto.CarrierResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, newValidationError(ErrInvalidCarrierResponse, []FieldIssue{{Path: "response", Reason: err.Error()}})
	}

	return &response, nil
}

// withIntegralInstalments returns a copy of a validated response whose payplan
// instalments are written without a fraction, so that "6.0" decodes into an int.
// The caller's payload is left untouched.
func withIntegralInstalments(obj map[string]any) map[string]any {
	plans := obj["payplan"].([]any)
	normalized := make([]any, len(plans))
	for i, item := range plans {
		plan := maps.Clone(item.(map[string]any))
		plan["instalments"] = integerValue(plan["instalments"])
		normalized[i] = plan
	}

	out := maps.Clone(obj)
	out["payplan"] = normalized
	return out
}

func integerValue(value any) any {
	n, ok := value.(json.Number)
	if !ok {
		return value
	}
	if _, err := n.Int64(); err == nil {
		return n
	}
	f, err := n.Float64()
	if err != nil {
		return n
	}
	return json.Number(strconv.FormatInt(int64(f), 10))
}

func checkArray(obj map[string]any, key string, shape []shapeField) []FieldIssue {
	items, ok := obj[key].([]any)
	if !ok {
		return []FieldIssue{{Path: key, Reason: "expected array, got " + describeValue(obj[key])}}
	}

	var issues []FieldIssue
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", key, i)
		element, ok := item.(map[string]any)
		if !ok {
			issues = append(issues, FieldIssue{Path: path, Reason: "expected object, got " + describeValue(item)})
			continue
		}
		for _, field := range shape {
			issues = append(issues, checkValue(path+"."+field.key, element[field.key], field.kind)...)
		}
	}
	return issues
}

func checkValue(path string, value any, kind valueKind) []FieldIssue {
	var ok bool
	switch kind {
	case kindString:
		_, ok = value.(string)
	case kindNumber:
		_, ok = toFloat(value)
	case kindInteger:
		ok = isInteger(value)
	}
	if ok {
		return nil
	}
	return []FieldIssue{{Path: path, Reason: fmt.Sprintf("expected %s, got %s", kind, describeValue(value))}}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Largest magnitude a float64 holds without losing integer precision
const maxExactInteger = 1 << 53

func isInteger(value any) bool {
	if n, ok := value.(json.Number); ok {
		if _, err := n.Int64(); err == nil {
			return true
		}
	}
	f, ok := toFloat(value)
	return ok && f == math.Trunc(f) && math.Abs(f) <= maxExactInteger
}

func describeValue(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	if _, ok := toFloat(value); ok {
		return "number"
	}
	return fmt.Sprintf("%T", value)
}
