package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/etnz/intrinsic"
	"google.golang.org/genai"
)

func testProvider(calls *int) intrinsic.Provider {
	return intrinsic.ProviderFunc(func(ctx context.Context, ticker string) (intrinsic.Fundamentals, error) {
		*calls++
		if ticker != "ACME" {
			return intrinsic.Fundamentals{}, intrinsic.Unavailable(ticker, "ticker not found or data source unreachable", nil)
		}
		return intrinsic.Fundamentals{
			Ticker:             "ACME",
			Name:               "Acme Corp",
			Currency:           "USD",
			Price:              12,
			SharesOutstanding:  1_000_000,
			FreeCashFlow:       1_000_000,
			FreeCashFlowSource: intrinsic.FCFReported,
		}, nil
	})
}

func call(t *testing.T, lib Library, name string, args map[string]any) (output, errMsg string) {
	t.Helper()
	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: name, Args: args})
	if resp.ID != "1" || resp.Name != name {
		t.Errorf("response for %s(%v) = %q %q, want id 1 and name %s", name, args, resp.ID, resp.Name, name)
	}
	output, _ = resp.Response["output"].(string)
	errMsg, _ = resp.Response["error"].(string)
	return output, errMsg
}

func TestLibrary(t *testing.T) {
	var calls int
	p := testProvider(&calls)
	lib := NewLibrary([]Function{FundamentalsTool(p), ValuateTool(p, intrinsic.DefaultParameters())})

	decls := NewDeclaration([]Function{FundamentalsTool(p), ValuateTool(p, intrinsic.DefaultParameters())})
	if len(decls) != 2 || decls[0].Name != "Fundamentals" || decls[1].Name != "Valuate" {
		t.Errorf("NewDeclaration() = %v, want Fundamentals and Valuate", decls)
	}

	if _, errMsg := call(t, lib, "Nope", nil); !strings.Contains(errMsg, "unknown function Nope") {
		t.Errorf("unknown function error = %q", errMsg)
	}
}

func TestFundamentalsTool(t *testing.T) {
	var calls int
	lib := NewLibrary([]Function{FundamentalsTool(testProvider(&calls))})

	out, errMsg := call(t, lib, "Fundamentals", map[string]any{"ticker": "ACME"})
	if errMsg != "" {
		t.Fatalf("Fundamentals(ACME) unexpected error %q", errMsg)
	}
	if !strings.Contains(out, "Acme Corp (ACME)") || !strings.Contains(out, "$12.00") {
		t.Errorf("Fundamentals(ACME) = %q", out)
	}

	if _, errMsg := call(t, lib, "Fundamentals", map[string]any{"ticker": "NOPE"}); !strings.Contains(errMsg, "ticker not found") {
		t.Errorf("Fundamentals(NOPE) error = %q", errMsg)
	}
	if _, errMsg := call(t, lib, "Fundamentals", map[string]any{}); errMsg == "" {
		t.Error("Fundamentals() without ticker should fail")
	}
}

func TestValuateTool(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		want    []string
		wantErr string
		fetches int
	}{
		{
			name:    "fetched",
			args:    map[string]any{"ticker": "ACME"},
			want:    []string{"| Intrinsic value | $15.73 |", "| Upside | +31.1% |"},
			fetches: 1,
		},
		{
			name: "rates",
			args: map[string]any{"ticker": "ACME", "discount_rate": 0.10, "growth_rate": "5%", "horizon": float64(10)},
			want: []string{"- Discount rate: 10.00%", "- Growth rate over 10 years: 5.00%", "| Year 10 |"},

			fetches: 1,
		},
		{
			name: "manual",
			args: map[string]any{"price": 12.0, "shares_outstanding": 1e6, "fcf": 1e6},
			want: []string{"| Intrinsic value | $15.73 |", "manual entry"},
		},
		{
			name:    "partial manual",
			args:    map[string]any{"price": 12.0},
			wantErr: "manual figures require",
		},
		{
			name:    "no ticker",
			args:    map[string]any{},
			wantErr: "a ticker or the price",
		},
		{
			name:    "discount out of range",
			args:    map[string]any{"ticker": "ACME", "discount_rate": 0.5},
			wantErr: "discount rate",
		},
		{
			name:    "fractional horizon",
			args:    map[string]any{"ticker": "ACME", "horizon": 5.7},
			wantErr: "whole number of years",
		},
		{
			name:    "horizon too long",
			args:    map[string]any{"ticker": "ACME", "horizon": 1e20},
			wantErr: "whole number of years",
		},
		{
			name:    "unavailable",
			args:    map[string]any{"ticker": "NOPE"},
			wantErr: "ticker not found",
			fetches: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			lib := NewLibrary([]Function{ValuateTool(testProvider(&calls), intrinsic.DefaultParameters())})
			out, errMsg := call(t, lib, "Valuate", tt.args)
			if calls != tt.fetches {
				t.Errorf("Valuate(%v) fetched %d times, want %d", tt.args, calls, tt.fetches)
			}
			if tt.wantErr != "" {
				if !strings.Contains(errMsg, tt.wantErr) {
					t.Errorf("Valuate(%v) error = %q, want %q", tt.args, errMsg, tt.wantErr)
				}
				return
			}
			if errMsg != "" {
				t.Fatalf("Valuate(%v) unexpected error %q", tt.args, errMsg)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("Valuate(%v) does not contain %q:\n%s", tt.args, want, out)
				}
			}
		})
	}
}

func TestText(t *testing.T) {
	c := &genai.Content{Parts: []*genai.Part{{Text: "Hello "}, {Text: "world"}}}
	if got := Text(c); got != "Hello world" {
		t.Errorf("Text() = %q, want %q", got, "Hello world")
	}
	if got := Text(nil); got != "" {
		t.Errorf("Text(nil) = %q, want empty", got)
	}
}
