package common

import "testing"

func TestHasAny(t *testing.T) {
	if !HasAny("strongwind", "rain", "wind") {
		t.Fatal("expected match")
	}
	if HasAny("cloudy", "rain", "wind") {
		t.Fatal("expected no match")
	}
	if HasAny("cloudy") {
		t.Fatal("expected no match without substrings")
	}
}

func TestCutAnySuffix(t *testing.T) {
	tests := []struct {
		in, base, suffix string
	}{
		{"rain_day", "rain", "_day"},
		{"rain_night", "rain", "_night"},
		{"fair_polartwilight", "fair", "_polartwilight"},
		{"cloudy", "cloudy", ""},
		{"_day", "", "_day"},
	}
	for _, tt := range tests {
		base, suffix := CutAnySuffix(tt.in, "_day", "_night", "_polartwilight")
		if base != tt.base || suffix != tt.suffix {
			t.Errorf("CutAnySuffix(%q) = (%q, %q), want (%q, %q)", tt.in, base, suffix, tt.base, tt.suffix)
		}
	}
}
