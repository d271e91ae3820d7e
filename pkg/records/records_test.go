package records

import (
	"encoding/json"
	"testing"
)

func TestString(t *testing.T) {
	t.Parallel()

	r := Record{"a": "x", "b": json.Number("5"), "c": nil, "d": 5}
	if got := r.String("a"); got != "x" {
		t.Errorf("String(a) = %q", got)
	}
	if got := r.String("b"); got != "5" {
		t.Errorf("String(b) = %q, want %q", got, "5")
	}
	if got := r.String("d"); got != "" {
		t.Errorf("String(d) = %q, want empty for a non-string-like value", got)
	}
	if got := r.String("c"); got != "" {
		t.Errorf("String(c) = %q, want empty for nil", got)
	}
	if got := r.String("missing"); got != "" {
		t.Errorf("String(missing) = %q, want empty", got)
	}
}

func TestFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		val  any
		want float64
		ok   bool
	}{
		{"float64", 95.5, 95.5, true},
		{"int", 42, 42, true},
		{"json number", json.Number("88.2"), 88.2, true},
		{"numeric string", "12.5", 12.5, true},
		{"non-numeric string", "n/a", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := Record{"value": tt.val}
			got, ok := r.Float("value")
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("Float = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}

	if _, ok := (Record{}).Float("missing"); ok {
		t.Error("Float(missing) ok = true, want false")
	}
}

func TestHas(t *testing.T) {
	t.Parallel()

	r := Record{"a": nil}
	if !r.Has("a") {
		t.Error("Has(a) = false, want true even for nil value")
	}
	if r.Has("b") {
		t.Error("Has(b) = true, want false")
	}
}
