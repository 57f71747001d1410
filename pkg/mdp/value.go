package mdp

import (
	"strconv"
	"strings"
)

// Kind identifies the scalar type held by a Value
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	default:
		return "string"
	}
}

// Value is a typed scalar read from the right-hand side of an MDP line.
// Values are comparable with ==.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
}

// Int returns an integer value
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a float value
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Bool returns a boolean value
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// String returns a string value
func String(v string) Value { return Value{kind: KindString, s: v} }

// ParseValue converts a raw token into the best-fitting scalar: integer,
// then float, then boolean literal, otherwise the token itself.
func ParseValue(token string) Value {
	if i, err := strconv.ParseInt(token, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return Float(f)
	}
	switch strings.ToLower(token) {
	case "yes", "true":
		return Bool(true)
	case "no", "false":
		return Bool(false)
	}
	return String(token)
}

// Kind reports the scalar type of v
func (v Value) Kind() Kind { return v.kind }

// AsInt returns v as an integer. Floats are truncated toward zero.
func (v Value) AsInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		return int64(v.f), true
	default:
		return 0, false
	}
}

// AsFloat returns v as a float. Integers are widened.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// AsBool returns the boolean held by v
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsString returns the string held by v
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// String renders v the way it is written back to an MDP file. Integral
// floats keep a ".0" suffix so that re-parsing yields a float again.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		s := strconv.FormatFloat(v.f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case KindBool:
		if v.b {
			return "yes"
		}
		return "no"
	default:
		return v.s
	}
}
