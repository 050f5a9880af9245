package intrinsic

import (
	"testing"

	"github.com/Rhymond/go-money"
)

func TestMoney_String(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{M(1234.567, "USD"), "$1,234.57"},
		{M(-1234.5, "USD"), "-$1,234.50"},
		{M(2512.4, "JPY"), "¥2,512"},
		{M(15730851.13, "JPY"), "¥15,730,851"},
		{M(0, "USD"), "$0.00"},
		{M(-0.001, "USD"), "$0.00"},
		{M(1e20, "USD"), "$100,000,000,000,000,000,000.00"},
		{M(-2.5e17, "USD"), "-$250,000,000,000,000,000.00"},
		{M(1e20, "JPY"), "¥100,000,000,000,000,000,000"},
	}
	for _, tc := range tests {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("%v %s String() = %q, want %q", tc.m.AsFloat(), tc.m.Currency(), got, tc.want)
		}
	}
}

func TestDefaultCurrency(t *testing.T) {
	tests := []struct{ ticker, want string }{
		{"7203.T", "JPY"},
		{"7203.t", "JPY"},
		{"7203.TSE", "JPY"},
		{"AAPL", "USD"},
		{"AAPL.US", "USD"},
	}
	for _, tc := range tests {
		if got := DefaultCurrency(tc.ticker); got != tc.want {
			t.Errorf("DefaultCurrency(%q) = %q, want %q", tc.ticker, got, tc.want)
		}
	}
}

func TestMoney_StringMatchesGoMoney(t *testing.T) {
	for _, minor := range []int64{0, 5, -5, 99, 100, 123456, -987654321, 1 << 40} {
		for _, cur := range []string{"USD", "JPY", "EUR", "GBP"} {
			want := money.New(minor, cur).Display()
			fraction := money.GetCurrency(cur).Fraction
			got := M(M(minor, cur).Value().Shift(-int32(fraction)), cur).String()
			if got != want {
				t.Errorf("%d %s minor units String() = %q, want %q", minor, cur, got, want)
			}
		}
	}
}
