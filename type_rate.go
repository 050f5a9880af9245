package intrinsic

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rate is a rate expressed as a fraction: 0.08 is 8%.
type Rate float64

// ParseRate parses a rate either as a fraction "0.08" or as a percentage "8%".
func ParseRate(s string) (Rate, error) {
	s = strings.TrimSpace(s)
	percent := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid rate %q: not a finite number", s)
	}
	if percent {
		v /= 100
	}
	return Rate(v), nil
}

func (r Rate) Equal(q Rate) bool {
	// it has to be compared with some precision
	const precision = 0.000001
	return math.Abs(float64(r-q)) < precision
}

// Quantize rounds the rate to the nearest multiple of step.
func (r Rate) Quantize(step Rate) Rate {
	if step <= 0 {
		return r
	}
	n := math.Round(float64(r) / float64(step))
	// round again to get rid of the binary noise of the multiplication (e.g 0.07000000000000001)
	return Rate(math.Round(n*float64(step)*1e9) / 1e9)
}

func (r Rate) String() string {
	return fmt.Sprintf("%.2f%%", float64(r)*100)
}

// SignedString returns the rate as a signed percentage with a single decimal.
func (r Rate) SignedString() string {
	res := fmt.Sprintf("%+.1f%%", float64(r)*100)
	if res == "+0.0%" || res == "-0.0%" {
		return "0.0%"
	}
	return res
}

// Set implements flag.Value.
func (r *Rate) Set(s string) error {
	v, err := ParseRate(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// UnmarshalJSON accepts both a number (0.08) and a string ("8%").
func (r *Rate) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	return r.Set(s)
}
