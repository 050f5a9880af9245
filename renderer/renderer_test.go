package renderer

import (
	"io/fs"
	"strings"
	"testing"
	"text/template"

	"github.com/etnz/intrinsic"
)

func referenceValuation(t *testing.T) *Valuation {
	t.Helper()
	f := intrinsic.Fundamentals{
		Ticker:             "ACME",
		Price:              12,
		SharesOutstanding:  1_000_000,
		FreeCashFlow:       1_000_000,
		FreeCashFlowSource: intrinsic.FCFManual,
	}
	p := intrinsic.DefaultParameters()
	res, err := intrinsic.Value(intrinsic.Fetched{Fundamentals: f}, p)
	if err != nil {
		t.Fatalf("Value() unexpected error = %v", err)
	}
	return NewValuation(f, p, res)
}

func TestTemplatesParse(t *testing.T) {
	files, err := fs.Glob(templates, "*.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no embedded templates")
	}
	for _, file := range files {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			t.Fatalf("cannot read %q: %v", file, err)
		}
		if _, err := template.New(file).Parse(string(content)); err != nil {
			t.Errorf("template %q does not parse: %v", file, err)
		}
	}
}

func TestRenderValuation(t *testing.T) {
	md := RenderValuation(referenceValuation(t))

	for _, want := range []string{
		"# Valuation of ACME\n",
		"*USD, figures from manual entry.*",
		"| Current price | $12.00 |",
		"| Intrinsic value | $15.73 |",
		"| Upside | +31.1% |",
		"| Year 1 | $1,030,000.00 | $953,703.70 |",
		"| Year 5 | $1,159,274.07 | $788,982.46 |",
		"| Base free cash flow | $1,000,000.00 |",
		"| Present value of terminal value | $11,383,889.72 |",
		"| Enterprise value | $15,730,851.13 |",
		"| Shares outstanding | 1,000,000 |",
		"- Discount rate: 8.00%",
		"- Growth rate over 5 years: 3.00%",
		"- Terminal growth rate: 1.00%",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("RenderValuation() does not contain %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "error ") {
		t.Errorf("RenderValuation() reported an error:\n%s", md)
	}
}

func TestRenderValuation_NoPrice(t *testing.T) {
	v := referenceValuation(t)
	f := intrinsic.Fundamentals{Ticker: "7203.T", Name: "Toyota", SharesOutstanding: 1_000_000, FreeCashFlow: 1_000_000, FreeCashFlowSource: intrinsic.FCFManual}
	res, err := intrinsic.Value(intrinsic.Manual{Price: 0, SharesOutstanding: 1_000_000, FreeCashFlow: 1_000_000}, v.Parameters)
	if err != nil {
		t.Fatal(err)
	}
	md := RenderValuation(NewValuation(f, v.Parameters, res))
	for _, want := range []string{
		"# Valuation of Toyota (7203.T)",
		"| Upside | n/a |",
		"| Intrinsic value | ¥16 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("RenderValuation() does not contain %q:\n%s", want, md)
		}
	}
}

func TestRenderFundamentals(t *testing.T) {
	md := RenderFundamentals(NewFundamentals(intrinsic.Fundamentals{
		Ticker:             "AAPL.US",
		Name:               "Apple Inc",
		Currency:           "USD",
		Price:              292.25,
		SharesOutstanding:  15204100000,
		FreeCashFlow:       99584000000,
		FreeCashFlowSource: intrinsic.FCFReported,
	}))
	for _, want := range []string{
		"# Apple Inc (AAPL.US)",
		"| Price | $292.25 |",
		"| Shares outstanding | 15,204,100,000 |",
		"| Free cash flow | $99,584,000,000.00 |",
		"*Free cash flow from reported free cash flow.*",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("RenderFundamentals() does not contain %q:\n%s", want, md)
		}
	}
}

func TestHTML(t *testing.T) {
	html, err := HTML(RenderValuation(referenceValuation(t)))
	if err != nil {
		t.Fatalf("HTML() unexpected error = %v", err)
	}
	for _, want := range []string{"<h1>Valuation of ACME</h1>", "<table>", "Year 1", "$15.73"} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML() does not contain %q:\n%s", want, html)
		}
	}
}
