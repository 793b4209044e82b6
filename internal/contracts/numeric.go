package contracts

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Numeric keeps a raw scalar exactly as it arrived from the input so that
// coercion rules are applied by the pipeline, not by the decoder.
// A Numeric whose field was absent from the input reports Present() == false.
type Numeric struct {
	raw     interface{}
	present bool
}

// Num wraps a float value
func Num(v float64) Numeric {
	return Numeric{raw: v, present: true}
}

// RawNumeric wraps an arbitrary scalar (string, bool, nil, number)
func RawNumeric(v interface{}) Numeric {
	return Numeric{raw: v, present: true}
}

// Present reports whether the field was supplied at all (null counts as supplied)
func (n Numeric) Present() bool {
	return n.present
}

// IsZero lets encoders with omitzero drop absent values
func (n Numeric) IsZero() bool {
	return !n.present
}

// Raw returns the underlying scalar
func (n Numeric) Raw() interface{} {
	return n.raw
}

// Float converts the raw value leniently: numbers pass through, numeric
// strings are parsed, booleans map to 1/0, null and blank strings are 0.
// ok is false for absent, NaN, infinite or non-numeric values.
func (n Numeric) Float() (float64, bool) {
	if !n.present {
		return 0, false
	}

	var f float64
	switch v := n.raw.(type) {
	case nil:
		return 0, true
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, true
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FloatOr returns the coerced value, or def when it is not numeric or zero
func (n Numeric) FloatOr(def float64) float64 {
	f, ok := n.Float()
	if !ok || f == 0 {
		return def
	}
	return f
}

// UnmarshalJSON keeps the raw scalar; numbers are kept as json.Number
func (n *Numeric) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}

	n.raw = v
	n.present = true
	return nil
}

// MarshalJSON writes the raw scalar back unchanged
func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.present {
		return []byte("null"), nil
	}
	if f, ok := n.raw.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return []byte("null"), nil
	}
	return json.Marshal(n.raw)
}

// UnmarshalYAML keeps the raw scalar from a YAML node
func (n *Numeric) UnmarshalYAML(node *yaml.Node) error {
	var v interface{}
	if err := node.Decode(&v); err != nil {
		return err
	}

	n.raw = v
	n.present = true
	return nil
}
