package oracle

import (
	"encoding/json"
)

// Mode selects the validation philosophy sent to the oracle.
type Mode string

const (
	// ModeStrict instructs the oracle to never guess: it must extract only
	// what is explicit and return an empty result when fewer than two
	// attributes can be confidently identified.
	ModeStrict Mode = "strict"
	// ModePermissive lets the oracle evaluate whatever is present and mark
	// missing data as WARN instead of bailing out.
	ModePermissive Mode = "permissive"
)

// BuildValidationPrompt renders the instruction text for one validation
// call. The payload is embedded as pretty-printed JSON.
func BuildValidationPrompt(payload any, mode Mode) string {
	input, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		input = []byte("{}")
	}

	if mode == ModePermissive {
		return `You are an IEC cable design validation expert.

Instructions:
- Validate the given cable design against IEC 60502-1.
- Do NOT hallucinate missing standards.
- If data is missing, return WARN for that field.
- Respond ONLY with valid JSON.
- Do NOT add text outside JSON.

Input:
` + string(input) + `

Return JSON in this exact format:
{
  "fields": { ... },
  "validation": [
    {
      "field": "string",
      "status": "PASS | FAIL | WARN",
      "expected": "string",
      "comment": "string"
    }
  ],
  "confidence": {
    "overall": number
  }
}
`
	}

	return `You are an expert in IEC 60502-1 cable specifications.

INPUT:
` + string(input) + `

TASK:
1. Validate attributes ONLY if they are explicitly present or can be unambiguously inferred.
2. DO NOT guess or assume values.
3. If fewer than TWO valid technical attributes are present, return an EMPTY result.
4. Do NOT infer defaults.
5. Validate values strictly against IEC 60502-1.

OUTPUT FORMAT (JSON ONLY):

If LESS THAN TWO valid attributes are found:
{
  "fields": {},
  "validation": [],
  "confidence": 0
}

Otherwise:
{
  "fields": {
    "standard": string | null,
    "voltage": string | null,
    "conductor_material": string | null,
    "conductor_class": string | null,
    "csa": number | null,
    "insulation_material": string | null,
    "insulation_thickness": number | null
  },
  "validation": [
    {
      "field": string,
      "expected": string,
      "status": "PASS" | "FAIL" | "WARN",
      "comment": string
    }
  ],
  "confidence": number
}

IMPORTANT:
- Never hallucinate values.
- Never fill missing fields just to complete the structure.
- If information is insufficient, return the empty result with confidence 0.
`
}
