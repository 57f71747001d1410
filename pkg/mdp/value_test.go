package mdp

import (
	"math"
	"testing"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		token string
		want  Value
	}{
		{"5", Int(5)},
		{"-12", Int(-12)},
		{"5.0", Float(5.0)},
		{"0.02", Float(0.02)},
		{"1e-3", Float(0.001)},
		{"yes", Bool(true)},
		{"no", Bool(false)},
		{"YES", Bool(true)},
		{"true", Bool(true)},
		{"False", Bool(false)},
		{"md", String("md")},
		{"V-rescale", String("V-rescale")},
		{"ProteinNon-Protein", String("ProteinNon-Protein")},
		{"", String("")},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got := ParseValue(tt.token)
			if got != tt.want {
				t.Errorf("Expected %v (%s), got %v (%s)", tt.want, tt.want.Kind(), got, got.Kind())
			}
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"integer", Int(5000000), "5000000"},
		{"integral float", Float(5), "5.0"},
		{"fractional float", Float(0.02), "0.02"},
		{"large float", Float(1e21), "1e+21"},
		{"true", Bool(true), "yes"},
		{"false", Bool(false), "no"},
		{"string", String("md"), "md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.String(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValueStringReparsesToSameKind(t *testing.T) {
	values := []Value{
		Int(0), Int(-3), Float(5), Float(0.002), Float(1e21), Float(math.Inf(1)),
		Bool(true), Bool(false), String("cutoff-scheme"),
	}

	for _, v := range values {
		if got := ParseValue(v.String()); got != v {
			t.Errorf("Expected %v to survive a render/parse cycle, got %v (%s)", v, got, got.Kind())
		}
	}
}

func TestValueCoercion(t *testing.T) {
	if i, ok := Float(49999.9).AsInt(); !ok || i != 49999 {
		t.Errorf("Expected float to truncate to 49999, got %d (ok=%v)", i, ok)
	}
	if f, ok := Int(2).AsFloat(); !ok || f != 2.0 {
		t.Errorf("Expected int to widen to 2.0, got %f (ok=%v)", f, ok)
	}
	if _, ok := String("md").AsInt(); ok {
		t.Error("Expected string not to coerce to integer")
	}
	if _, ok := Bool(true).AsFloat(); ok {
		t.Error("Expected boolean not to coerce to float")
	}
	if s, ok := String("md").AsString(); !ok || s != "md" {
		t.Errorf("Expected string md, got %q (ok=%v)", s, ok)
	}
	if b, ok := Bool(true).AsBool(); !ok || !b {
		t.Errorf("Expected boolean true, got %v (ok=%v)", b, ok)
	}
}
