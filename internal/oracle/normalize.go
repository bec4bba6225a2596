package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"cablecheck/internal/domain"
)

// DefaultConfidence is the fallback applied when the oracle reports no
// confidence, an unrecognized shape, or exactly zero. A genuine zero is
// deliberately conflated with "no information" here; revisit via this
// constant if that tradeoff changes.
const DefaultConfidence = 0.5

const autoPassComment = "Auto-passed (oracle returned valid)"

// NormalizedResponse is the strict internal shape distilled from the
// oracle's free-form reply.
type NormalizedResponse struct {
	Fields     domain.FieldSet
	Validation []domain.FieldValidation
	Confidence float64
}

// Normalizer converts the oracle's raw text reply into a NormalizedResponse.
// The oracle's shape contract is advisory, not enforced, so every branch
// tolerates absence and malformation without erroring.
type Normalizer struct {
	// DefaultStatus is assigned to validation entries that arrive without a
	// status. FAIL treats an unverified field as failed; PASS is the
	// permissive variant.
	DefaultStatus domain.ValidationStatus
}

// NewNormalizer creates a Normalizer with the given missing-status policy.
// An empty status defaults to FAIL.
func NewNormalizer(defaultStatus domain.ValidationStatus) *Normalizer {
	if defaultStatus == "" {
		defaultStatus = domain.StatusFail
	}
	return &Normalizer{DefaultStatus: defaultStatus}
}

// Normalize strips code fences, parses the reply as JSON, and decodes the
// fields, validation, and confidence members defensively. A reply that fails
// to parse degrades to an empty object rather than an error: an oracle that
// replied unintelligibly yields empty fields, empty validation, and fallback
// confidence.
func (n *Normalizer) Normalize(raw string) *NormalizedResponse {
	text := StripCodeFences(raw)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		parsed = map[string]any{}
	}

	fields := normalizeFields(parsed["fields"])
	validation := n.normalizeValidation(parsed["validation"], fields)
	confidence := NormalizeConfidence(parsed["confidence"])

	return &NormalizedResponse{
		Fields:     fields,
		Validation: validation,
		Confidence: confidence,
	}
}

// StripCodeFences removes triple-backtick fencing (optionally language-tagged
// as json) so the remaining text can be parsed directly.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// normalizeFields accepts either a sequence of {field, expected} pairs or a
// ready-made mapping. Anything else yields an empty mapping.
func normalizeFields(raw any) domain.FieldSet {
	fields := domain.FieldSet{}
	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			name := fieldName(entry["field"])
			if name == "" {
				continue
			}
			fields[name] = entry["expected"]
		}
	case map[string]any:
		for k, val := range v {
			fields[k] = val
		}
	}
	return fields
}

// normalizeValidation decodes the validation member. A sequence maps to
// entries with defaults filled in; the literal true or "valid" synthesizes
// one auto-pass entry per known field; any other shape yields an empty list.
// The result is always non-nil.
func (n *Normalizer) normalizeValidation(raw any, fields domain.FieldSet) []domain.FieldValidation {
	validation := []domain.FieldValidation{}

	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			name := fieldName(entry["field"])

			status := n.DefaultStatus
			if s, ok := entry["status"].(string); ok && s != "" {
				status = domain.ValidationStatus(s)
			}

			expected := entry["expected"]
			if expected == nil {
				expected = fields[name]
			}

			comment := ""
			if c, ok := entry["comment"].(string); ok {
				comment = c
			}

			validation = append(validation, domain.FieldValidation{
				Field:    name,
				Status:   status,
				Expected: expected,
				Comment:  comment,
			})
		}
	case bool:
		if v {
			validation = autoPass(fields)
		}
	case string:
		if v == "valid" {
			validation = autoPass(fields)
		}
	}

	return validation
}

func autoPass(fields domain.FieldSet) []domain.FieldValidation {
	validation := make([]domain.FieldValidation, 0, len(fields))
	for name, expected := range fields {
		validation = append(validation, domain.FieldValidation{
			Field:    name,
			Status:   domain.StatusPass,
			Expected: expected,
			Comment:  autoPassComment,
		})
	}
	return validation
}

// NormalizeConfidence converts any confidence representation into a 0-1
// fraction. Numbers above 1 are read as 0-100 percentages; an object with a
// numeric "overall" follows the same rule; the labels high/medium/low map to
// fixed fractions. Anything unrecognized, absent, or still exactly zero
// falls back to DefaultConfidence. Total over all JSON-representable inputs.
func NormalizeConfidence(raw any) float64 {
	confidence := 0.0

	switch v := raw.(type) {
	case float64:
		confidence = fromNumber(v)
	case int:
		confidence = fromNumber(float64(v))
	case map[string]any:
		switch overall := v["overall"].(type) {
		case float64:
			confidence = fromNumber(overall)
		case int:
			confidence = fromNumber(float64(overall))
		}
	case string:
		switch strings.ToLower(v) {
		case "high":
			confidence = 0.9
		case "medium":
			confidence = 0.6
		case "low":
			confidence = 0.3
		}
	}

	if confidence == 0 {
		confidence = DefaultConfidence
	}
	return confidence
}

func fromNumber(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

// fieldName stringifies the field key of an oracle entry. Numeric keys are
// formatted rather than dropped.
func fieldName(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return ""
	}
}
