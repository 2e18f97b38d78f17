package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ValueKind discriminates a FieldValue.
type ValueKind string

const (
	ValueKindText   ValueKind = "text"
	ValueKindNumber ValueKind = "number"
)

// FieldValue is the typed value a line item holds for one field. Keeping
// the text/number split here means numeric coercion happens once, at the
// boundary, instead of ad hoc in every renderer.
type FieldValue struct {
	Kind   ValueKind
	Text   string
	Number float64
}

func TextValue(s string) FieldValue {
	return FieldValue{Kind: ValueKindText, Text: s}
}

func NumberValue(n float64) FieldValue {
	return FieldValue{Kind: ValueKindNumber, Number: n}
}

// ZeroValue returns the default value for a field type: 0 for numeric
// fields, the empty string otherwise.
func ZeroValue(t FieldType) FieldValue {
	if t.Numeric() {
		return NumberValue(0)
	}
	return TextValue("")
}

// AsNumber coerces the value to a float64; non-numeric text and missing
// values coerce to 0.
func (v FieldValue) AsNumber() float64 {
	switch v.Kind {
	case ValueKindNumber:
		return v.Number
	case ValueKindText:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// AsText returns the raw text for text values and the shortest decimal
// representation for numbers.
func (v FieldValue) AsText() string {
	switch v.Kind {
	case ValueKindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return v.Text
	}
}

// CoerceValue builds a FieldValue of the field's type from raw JSON-ish
// input (string or number).
func CoerceValue(t FieldType, raw any) FieldValue {
	if t.Numeric() {
		switch val := raw.(type) {
		case float64:
			return NumberValue(val)
		case int:
			return NumberValue(float64(val))
		case int64:
			return NumberValue(float64(val))
		case json.Number:
			n, err := val.Float64()
			if err != nil {
				return NumberValue(0)
			}
			return NumberValue(n)
		case string:
			return NumberValue(TextValue(val).AsNumber())
		case nil:
			return NumberValue(0)
		default:
			return NumberValue(0)
		}
	}

	switch val := raw.(type) {
	case string:
		return TextValue(val)
	case nil:
		return TextValue("")
	default:
		return TextValue(NumberValue(toFloat(val)).AsText())
	}
}

func toFloat(raw any) float64 {
	switch val := raw.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		n, _ := val.Float64()
		return n
	default:
		return 0
	}
}

// MarshalJSON encodes text values as JSON strings and numbers as JSON
// numbers, matching the shape the builder UI exchanges.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.Kind == ValueKindNumber {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON accepts either a JSON string or number.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*v = NumberValue(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = TextValue(s)
	return nil
}
