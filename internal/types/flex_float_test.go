package types_test

import (
	"encoding/json"
	"testing"

	"github.com/localnerve/studynotes/internal/types"
)

// TestFlexFloat64Unmarshal tests number, numeric string, null, and
// garbage inputs
func TestFlexFloat64Unmarshal(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
		value float64
	}{
		{`-33.87`, true, -33.87},
		{`"151.21"`, true, 151.21},
		{`" 12.5 "`, true, 12.5},
		{`null`, false, 0},
		{`"not-a-number"`, false, 0},
		{`{"lat": 1}`, false, 0},
	}

	for _, c := range cases {
		var f types.FlexFloat64
		if err := json.Unmarshal([]byte(c.in), &f); err != nil {
			t.Errorf("Unmarshal(%s) returned error: %v", c.in, err)
			continue
		}
		if f.Valid != c.valid {
			t.Errorf("Unmarshal(%s): expected valid=%v, got %v", c.in, c.valid, f.Valid)
		}
		if c.valid && f.Value != c.value {
			t.Errorf("Unmarshal(%s): expected %v, got %v", c.in, c.value, f.Value)
		}
	}
}

// TestFlexFloat64Marshal tests null round-tripping
func TestFlexFloat64Marshal(t *testing.T) {
	out, err := json.Marshal(types.FlexFloat64{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != "null" {
		t.Errorf("Expected null, got %s", out)
	}

	out, err = json.Marshal(types.FlexFloat64{Value: 1.5, Valid: true})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != "1.5" {
		t.Errorf("Expected 1.5, got %s", out)
	}
}

// TestCoerceFloat tests the decoded-value coercion used by the importer
func TestCoerceFloat(t *testing.T) {
	if v := types.CoerceFloat(float64(3.25)); v == nil || *v != 3.25 {
		t.Errorf("Expected 3.25, got %v", v)
	}
	if v := types.CoerceFloat("4.5"); v == nil || *v != 4.5 {
		t.Errorf("Expected 4.5 from string, got %v", v)
	}
	if v := types.CoerceFloat("garbage"); v != nil {
		t.Errorf("Expected nil for garbage, got %v", v)
	}
	if v := types.CoerceFloat(nil); v != nil {
		t.Errorf("Expected nil for nil, got %v", v)
	}
	if v := types.CoerceFloat(true); v != nil {
		t.Errorf("Expected nil for bool, got %v", v)
	}
}
