// Package sanitize builds outgoing patient payloads from loosely typed form
// state. Cleaning is driven entirely by the declared field schema: each
// field is cleaned by kind, anything undeclared is dropped and any key whose
// cleaned value comes back empty is stripped from the payload.
package sanitize

import (
	"encoding/json"
	"strconv"
	"strings"

	"medirec-service/internal/pkg/datemath"
)

// Build projects form state into the payload for one section. forUpdate
// strips the patient identifier, which travels in the URL on updates.
func Build(form map[string]interface{}, section Section, forUpdate bool) map[string]interface{} {
	groups := sectionGroups[section]
	payload := make(map[string]interface{})
	for _, spec := range Schema {
		if !groups[spec.Group] {
			continue
		}
		if forUpdate && spec.Name == FieldIdentifier {
			continue
		}
		raw, present := form[spec.Name]
		if !present {
			continue
		}
		cleaned, ok := clean(raw, spec.Kind)
		if !ok {
			continue
		}
		payload[spec.Name] = cleaned
	}
	return payload
}

func clean(raw interface{}, kind Kind) (interface{}, bool) {
	if raw == nil {
		return nil, false
	}
	switch kind {
	case KindNumeric:
		return cleanNumeric(raw)
	case KindDate:
		return cleanDate(raw)
	case KindBool:
		value, ok := raw.(bool)
		return value, ok
	case KindArray:
		return cleanArray(raw)
	default:
		return cleanText(raw)
	}
}

// cleanNumeric accepts numbers directly and parses trimmed strings. A blank
// string means the value was cleared; an unparsable one is treated the same
// way, so a half-typed entry never reaches the backend.
func cleanNumeric(raw interface{}) (interface{}, bool) {
	switch value := raw.(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return nil, false
		}
		return parsed, true
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return nil, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, false
		}
		return parsed, true
	default:
		return nil, false
	}
}

func cleanDate(raw interface{}) (interface{}, bool) {
	value, ok := raw.(string)
	if !ok {
		return nil, false
	}
	trimmed := strings.TrimSpace(value)
	if !datemath.IsValidDate(trimmed) {
		return nil, false
	}
	return trimmed, true
}

func cleanText(raw interface{}) (interface{}, bool) {
	value, ok := raw.(string)
	if !ok {
		return nil, false
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, false
	}
	return trimmed, true
}

// cleanArray keeps string entries that are non-blank after trimming. An
// array that empties out is still transmitted, since an explicit empty list
// differs from an absent one.
func cleanArray(raw interface{}) (interface{}, bool) {
	var entries []interface{}
	switch value := raw.(type) {
	case []interface{}:
		entries = value
	case []string:
		entries = make([]interface{}, len(value))
		for i, s := range value {
			entries[i] = s
		}
	default:
		return nil, false
	}
	kept := make([]string, 0, len(entries))
	for _, entry := range entries {
		s, ok := entry.(string)
		if !ok {
			continue
		}
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		kept = append(kept, trimmed)
	}
	return kept, true
}
