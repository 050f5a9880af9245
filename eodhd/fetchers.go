package eodhd

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/intrinsic"
	"github.com/shopspring/decimal"
)

// This file contains functions to access the EODHD API.

// fetchFundamentals returns everything but the price from the fundamentals endpoint.
func (c *Client) fetchFundamentals(ctx context.Context, ticker string) (intrinsic.Fundamentals, error) {
	// https://eodhd.com/api/fundamentals/AAPL.US?api_token=demo&fmt=json
	// {
	//   "General": { "Code": "AAPL", "Name": "Apple Inc", "CurrencyCode": "USD", ... },
	//   "SharesStats": { "SharesOutstanding": 15204100000, ... },
	//   "Financials": {
	//     "Cash_Flow": {
	//       "currency_symbol": "USD",
	//       "yearly": {
	//         "2023-09-30": {
	//           "date": "2023-09-30",
	//           "totalCashFromOperatingActivities": "110543000000.00",
	//           "totalCashflowsFromInvestingActivities": "3705000000.00",
	//           "freeCashFlow": "99584000000.00",
	//           ...
	addr := fmt.Sprintf("%s/fundamentals/%s?api_token=%s&fmt=json", c.baseURL(), url.PathEscape(ticker), url.QueryEscape(c.APIKey))

	// the document is huge and deeply nested, it is walked with jsonpath rather than mapped.
	var doc any
	if err := jwget(ctx, c.client(), addr, &doc); err != nil {
		return intrinsic.Fundamentals{}, intrinsic.Unavailable(ticker, "ticker not found or data source unreachable", err)
	}

	f := intrinsic.Fundamentals{
		Ticker:   ticker,
		Name:     str(doc, "$.General.Name"),
		Currency: str(doc, "$.General.CurrencyCode"),
	}

	shares := num(doc, "$.SharesStats.SharesOutstanding")
	if shares == nil || *shares <= 0 {
		return intrinsic.Fundamentals{}, intrinsic.Unavailable(ticker, "no shares outstanding data", nil)
	}
	f.SharesOutstanding = *shares

	statement, err := latestYear(doc, "$.Financials.Cash_Flow.yearly")
	if err != nil {
		return intrinsic.Fundamentals{}, intrinsic.Unavailable(ticker, "no cash flow data", err)
	}
	fcf, source, ok := intrinsic.FreeCashFlow(
		num(statement, "$.freeCashFlow"),
		num(statement, "$.totalCashFromOperatingActivities"),
		num(statement, "$.totalCashflowsFromInvestingActivities"),
	)
	if !ok {
		return intrinsic.Fundamentals{}, intrinsic.Unavailable(ticker, "cannot compute free cash flow: neither free cash flow nor operating and investing cash flows are reported", nil)
	}
	f.FreeCashFlow, f.FreeCashFlowSource = fcf, source
	return f, nil
}

// fetchPrice returns the latest close price.
func (c *Client) fetchPrice(ctx context.Context, ticker string) (float64, error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json&from=2024-02-06&to=2024-02-13
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },

	// a week covers week-ends and most bank holidays.
	to := c.now()
	from := to.AddDate(0, 0, -7)
	addr := fmt.Sprintf("%s/eod/%s?api_token=%s&fmt=json&from=%s&to=%s", c.baseURL(), url.PathEscape(ticker), url.QueryEscape(c.APIKey), from.Format("2006-01-02"), to.Format("2006-01-02"))

	type Info struct {
		Date  string          `json:"date"`
		Close decimal.Decimal `json:"close"`
	}

	// that's the payload
	content := make([]Info, 0)
	if err := jwget(ctx, c.client(), addr, &content); err != nil {
		return 0, intrinsic.Unavailable(ticker, "cannot fetch price", err)
	}
	if len(content) == 0 {
		return 0, intrinsic.Unavailable(ticker, "no price data", nil)
	}
	// dates are ISO formatted, so they sort lexicographically.
	sort.Slice(content, func(i, j int) bool { return content[i].Date < content[j].Date })
	latest := content[len(content)-1]
	if !latest.Close.IsPositive() {
		return 0, intrinsic.Unavailable(ticker, "no price data", nil)
	}
	return latest.Close.InexactFloat64(), nil
}

// latestYear returns the most recent entry of an object keyed by date.
func latestYear(doc any, path string) (any, error) {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, err
	}
	years, ok := v.(map[string]any)
	if !ok || len(years) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	var latest string
	for k := range years {
		if k > latest {
			latest = k
		}
	}
	return years[latest], nil
}

// num returns the number at path, nil if it is missing.
//
// EODHD reports financial statements figures as strings, and other figures as numbers.
func num(doc any, path string) *float64 {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil
	}
	switch x := v.(type) {
	case float64:
		return &x
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return nil
		}
		f := d.InexactFloat64()
		return &f
	}
	return nil
}

// str returns the string at path, "" if it is missing.
func str(doc any, path string) string {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
