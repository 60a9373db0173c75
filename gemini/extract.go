package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrMalformedResponse means the model output contained no parseable JSON
// object. Distinct from a provider outage.
var ErrMalformedResponse = errors.New("ai response contains no parseable JSON object")

// ErrInvalidShape means the JSON parsed but is missing required top-level
// keys or has the wrong container type for one of them.
var ErrInvalidShape = errors.New("ai response does not match the expected shape")

// extractJSONObject pulls the JSON object out of free-form model output.
// The model is asked for bare JSON but may wrap it in commentary or markdown
// fencing, so the span from the first '{' through the last '}' is taken.
// Anything less than a valid object in that span is a hard failure; fields
// are never salvaged from broken output.
func extractJSONObject(text string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end < start {
		return nil, fmt.Errorf("%w: no object span in %q", ErrMalformedResponse, truncate(cleaned, 120))
	}

	span := []byte(cleaned[start : end+1])
	if !json.Valid(span) {
		return nil, fmt.Errorf("%w: object span is not valid JSON", ErrMalformedResponse)
	}

	return span, nil
}

// fieldKind describes the expected container type of a top-level key
type fieldKind int

const (
	kindArray fieldKind = iota
	kindObject
	kindNumber
	kindString
)

func (k fieldKind) String() string {
	switch k {
	case kindArray:
		return "array"
	case kindObject:
		return "object"
	case kindNumber:
		return "number"
	default:
		return "string"
	}
}

// validateShape checks that every required top-level key is present with the
// expected container type. A mismatch is ErrInvalidShape; a partially valid
// object is never returned to callers.
func validateShape(data []byte, required map[string]fieldKind) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return fmt.Errorf("%w: top-level value is not an object", ErrInvalidShape)
	}

	for key, kind := range required {
		raw, ok := top[key]
		if !ok {
			return fmt.Errorf("%w: missing required key %q", ErrInvalidShape, key)
		}
		if !matchesKind(raw, kind) {
			return fmt.Errorf("%w: key %q is not a %s", ErrInvalidShape, key, kind)
		}
	}

	return nil
}

func matchesKind(raw json.RawMessage, kind fieldKind) bool {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return false
	}

	switch kind {
	case kindArray:
		return trimmed[0] == '['
	case kindObject:
		return trimmed[0] == '{'
	case kindString:
		return trimmed[0] == '"'
	case kindNumber:
		c := trimmed[0]
		return c == '-' || (c >= '0' && c <= '9')
	}
	return false
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
