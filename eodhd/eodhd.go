// Package eodhd implements an intrinsic.Provider on top of the eodhd.com API.
package eodhd

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/etnz/intrinsic"
)

// nice to redirect to https://eodhd.com/financial-summary/AAPL.US

// DefaultBaseURL is the root of the EODHD REST API.
const DefaultBaseURL = "https://eodhd.com/api"

// Client fetches fundamentals from EODHD.
type Client struct {
	APIKey  string
	BaseURL string           // defaults to DefaultBaseURL
	HTTP    *http.Client     // defaults to http.DefaultClient
	Now     func() time.Time // defaults to time.Now
}

// New returns a Client using apiKey. A nil client uses http.DefaultClient.
func New(apiKey string, client *http.Client) *Client {
	return &Client{APIKey: apiKey, HTTP: client}
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimSuffix(c.BaseURL, "/")
}

func (c *Client) client() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c *Client) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Fetch returns the latest price, shares outstanding and free cash flow of a company.
//
// ticker can be in EODHD format (AAPL.US) or in Yahoo format (AAPL, 7203.T), see Ticker.
func (c *Client) Fetch(ctx context.Context, ticker string) (intrinsic.Fundamentals, error) {
	t, err := Ticker(ticker)
	if err != nil {
		return intrinsic.Fundamentals{}, err
	}
	if c.APIKey == "" {
		return intrinsic.Fundamentals{}, intrinsic.Unavailable(t, "no EODHD API key", nil)
	}

	f, err := c.fetchFundamentals(ctx, t)
	if err != nil {
		return intrinsic.Fundamentals{}, err
	}

	price, err := c.fetchPrice(ctx, t)
	if err != nil {
		return intrinsic.Fundamentals{}, err
	}
	f.Price = price

	if err := f.Check(); err != nil {
		return intrinsic.Fundamentals{}, err
	}
	return f, nil
}

// exchangeAliases maps Yahoo exchange suffixes to EODHD exchange codes.
//
// Single letter suffixes missing from this map are share classes (BRK.B).
var exchangeAliases = map[string]string{
	"T":  "TSE", // Tokyo
	"L":  "LSE",
	"F":  "F", // Frankfurt
	"V":  "V", // TSX Venture
	"PA": "PA",
	"DE": "XETRA",
}

// Ticker normalizes a ticker to the EODHD "CODE.EXCHANGE" format.
//
// A ticker without exchange is considered a US ticker. Share classes are
// joined with a dash as EODHD expects: BRK.B and BRK.B.US are BRK-B.US.
// An empty code wraps intrinsic.ErrInvalidParameters.
func Ticker(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	code, exchange := s, "US"
	if i := strings.LastIndex(s, "."); i >= 0 {
		suffix := s[i+1:]
		_, known := exchangeAliases[suffix]
		if len(suffix) != 1 || known {
			code, exchange = s[:i], suffix
		}
	}
	if alias, ok := exchangeAliases[exchange]; ok {
		exchange = alias
	}
	code = strings.ReplaceAll(code, ".", "-")
	if strings.Trim(code, "-") == "" || exchange == "" {
		return "", fmt.Errorf("%w: invalid ticker %q", intrinsic.ErrInvalidParameters, s)
	}
	return code + "." + exchange, nil
}
