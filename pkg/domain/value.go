package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ValueKind discriminates the variants of a Value.
type ValueKind int

const (
	KindAbsent ValueKind = iota
	KindInt
	KindFloat
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "absent"
	}
}

// Value is a typed template argument: absent, integer, float or string.
// The zero Value is absent. Values are immutable.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
}

// ValueMap is one argument set a generator can render.
type ValueMap map[string]Value

// Absent returns the empty value.
func Absent() Value { return Value{} }

// Int returns an integer value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a floating point value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// String returns a string value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// ValueOf converts a decoded YAML/JSON scalar into a Value.
// Booleans are kept as their textual form. Composite values are rejected.
func ValueOf(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Absent(), nil
	case Value:
		return v, nil
	case string:
		return String(v), nil
	case bool:
		return String(strconv.FormatBool(v)), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return uintValue(uint64(v))
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint64:
		return uintValue(v)
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, v.String())
		}
		return Float(f), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidValue, raw)
	}
}

func uintValue(v uint64) (Value, error) {
	if v > math.MaxInt64 {
		return Value{}, fmt.Errorf("%w: %d overflows int64", ErrInvalidValue, v)
	}
	return Int(int64(v)), nil
}

// Kind reports which variant the value holds.
func (v Value) Kind() ValueKind { return v.kind }

// IsAbsent reports whether the value carries nothing.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Int returns the integer payload. Floats are truncated, numeric strings parsed.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		return int64(v.f), true
	case KindString:
		i, err := strconv.ParseInt(v.s, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// Float returns the numeric payload as a float64. Integers are widened,
// numeric strings parsed.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	case KindString:
		f, err := strconv.ParseFloat(v.s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Text is the form a value takes inside a rendered template.
// Floats use fixed-point notation with six fractional digits.
func (v Value) Text() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', 6, 64)
	case KindString:
		return v.s
	default:
		return ""
	}
}

// Interface returns the payload as a plain Go value (nil when absent).
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	default:
		return nil
	}
}

func (v Value) String() string {
	if v.kind == KindString {
		return strconv.Quote(v.s)
	}
	if v.kind == KindAbsent {
		return "<absent>"
	}
	return v.Text()
}

// MarshalJSON encodes the value as its natural JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes a JSON scalar, keeping integers as integers.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := unmarshalNumber(data, &raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML encodes the value as its natural YAML scalar.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// UnmarshalYAML decodes a YAML scalar node.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Clone returns a shallow copy of the map; Values themselves are immutable.
func (m ValueMap) Clone() ValueMap {
	out := make(ValueMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ValueMapOf converts a decoded YAML/JSON object into a ValueMap.
func ValueMapOf(raw map[string]any) (ValueMap, error) {
	out := make(ValueMap, len(raw))
	for k, r := range raw {
		v, err := ValueOf(r)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}
