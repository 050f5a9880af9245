package intrinsic

import (
	"testing"

	json "github.com/goccy/go-json"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		in      string
		want    Rate
		wantErr bool
	}{
		{"0.08", 0.08, false},
		{"8%", 0.08, false},
		{" 12.5 % ", 0.125, false},
		{" 8 % ", 0.08, false},
		{"-3%", -0.03, false},
		{"-10%", -0.10, false},
		{"0", 0, false},
		{"", 0, true},
		{"abc", 0, true},
		{"eight", 0, true},
		{"NaN", 0, true},
		{"Inf%", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseRate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseRate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRate_String(t *testing.T) {
	tests := []struct {
		r            Rate
		str, signed string
	}{
		{0.08, "8.00%", "+8.0%"},
		{-0.034, "-3.40%", "-3.4%"},
		{0, "0.00%", "0.0%"},
		{-0.0001, "-0.01%", "0.0%"},
		{-0.0312, "-3.12%", "-3.1%"},
		{0.00001, "0.00%", "0.0%"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.str {
			t.Errorf("Rate(%v).String() = %q, want %q", float64(tt.r), got, tt.str)
		}
		if got := tt.r.SignedString(); got != tt.signed {
			t.Errorf("Rate(%v).SignedString() = %q, want %q", float64(tt.r), got, tt.signed)
		}
	}
}

func TestRate_Quantize(t *testing.T) {
	tests := []struct {
		in, want Rate
	}{
		{0.083, 0.08},
		{0.086, 0.09},
		{0.07, 0.07},
		{-0.034, -0.03},
		{0.001, 0},
	}
	for _, tt := range tests {
		if got := tt.in.Quantize(RateStep); got != tt.want {
			t.Errorf("Rate(%v).Quantize() = %v, want %v", float64(tt.in), float64(got), float64(tt.want))
		}
	}
}

func TestRate_UnmarshalJSON(t *testing.T) {
	var v struct {
		A, B Rate
	}
	if err := json.Unmarshal([]byte(`{"A": 0.08, "B": "3%"}`), &v); err != nil {
		t.Fatalf("Unmarshal() unexpected error = %v", err)
	}
	if !v.A.Equal(0.08) || !v.B.Equal(0.03) {
		t.Errorf("Unmarshal() = %v, %v, want 8%%, 3%%", v.A, v.B)
	}
	if err := json.Unmarshal([]byte(`{"A": "eight"}`), &v); err == nil {
		t.Error("Unmarshal() of an invalid rate should fail")
	}
}
