package cmd

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/intrinsic"
	"github.com/etnz/intrinsic/eodhd"
	"github.com/shopspring/decimal"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

const eodhdAPIKeyEnv = "EODHD_API_KEY"

var (
	eodhdAPIFlag = flag.String("eodhd-api-key", "", "EODHD API key to use for consuming EODHD.com API. This flag takes precedence over the "+eodhdAPIKeyEnv+" environment variable. You can get one at https://eodhd.com/")
	cacheDir     = flag.String("cache-dir", filepath.Join(os.TempDir(), "dcf"), "Folder where EODHD responses are cached between runs")
	cacheTTL     = flag.Duration("cache-ttl", intrinsic.DefaultCacheTTL, "How long fetched data is reused. 0 disables the cache")

	// Verbose enables logging.
	Verbose = flag.Bool("v", false, "verbose: log HTTP requests and cache decisions")
)

// eodhdAPIKey retrieves the EODHD API key from the command-line flag or the environment variable.
// It prioritizes the flag over the environment variable.
func eodhdAPIKey() string {
	if *eodhdAPIFlag == "" {
		*eodhdAPIFlag = os.Getenv(eodhdAPIKeyEnv)
	}
	return *eodhdAPIFlag
}

// newEODHD returns the EODHD client whose responses are cached on disk between runs.
func newEODHD() *eodhd.Client {
	return eodhd.New(eodhdAPIKey(), intrinsic.NewCachingClient(*cacheDir, *cacheTTL))
}

// newSessionProvider returns a provider for long running sessions: responses are memoized in memory.
func newSessionProvider() intrinsic.Provider {
	return &intrinsic.CachedProvider{
		Provider: eodhd.New(eodhdAPIKey(), http.DefaultClient),
		Cache:    intrinsic.NewMemoryCache(*cacheTTL),
	}
}

// printMarkdown renders md for the terminal.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// parseFigure parses a manually entered figure like "1,000,000" or "-5e5".
func parseFigure(name, s string) (float64, error) {
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	if s == "" {
		return 0, fmt.Errorf("-%s is required in manual mode", name)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid -%s %q: %w", name, s, err)
	}
	return d.InexactFloat64(), nil
}
