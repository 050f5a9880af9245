// Package server exposes valuations over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/etnz/intrinsic"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// ValuationRequest is the body of POST /api/valuation.
//
// Figures are entered manually when Price, SharesOutstanding and FCF are all
// set, otherwise they are fetched for Ticker. Missing rates take the server
// defaults.
type ValuationRequest struct {
	Ticker             string          `json:"ticker,omitempty"`
	Currency           string          `json:"currency,omitempty"`
	Price              *float64        `json:"price,omitempty"`
	SharesOutstanding  *float64        `json:"shares_outstanding,omitempty"`
	FCF                *float64        `json:"fcf,omitempty"`
	DiscountRate       *intrinsic.Rate `json:"discount_rate,omitempty"`
	GrowthRate         *intrinsic.Rate `json:"growth_rate,omitempty"`
	TerminalGrowthRate *intrinsic.Rate `json:"terminal_growth_rate,omitempty"`
	Horizon            *int            `json:"horizon,omitempty"`
}

// ValuationResponse is the body of a successful POST /api/valuation.
type ValuationResponse struct {
	Fundamentals intrinsic.Fundamentals     `json:"fundamentals"`
	Parameters   intrinsic.Parameters       `json:"parameters"`
	Inputs       intrinsic.ValuationInputs  `json:"inputs"`
	Result       *intrinsic.ValuationResult `json:"result"`
	Upside       *intrinsic.Rate            `json:"upside,omitempty"`
}

// ErrorResponse is the body of any failed request.
type ErrorResponse struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// Server serves valuations computed with figures from a Provider.
type Server struct {
	Provider intrinsic.Provider
	Defaults intrinsic.Parameters
}

// New returns a Server. The provider is usually wrapped in a CachedProvider.
func New(p intrinsic.Provider, defaults intrinsic.Parameters) *Server {
	return &Server{Provider: p, Defaults: defaults}
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &fasthttp.Server{
		Handler: s.Handle,
		Name:    "dcf",
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe(addr) }()
	log.Printf("dcf server listening on %s", addr)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return srv.Shutdown()
	}
}

// Handle routes a request.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	id := uuid.NewString()
	ctx.Response.Header.Set("X-Request-Id", id)

	path := strings.TrimSuffix(string(ctx.Path()), "/")
	switch path {
	case "/api/valuation":
		if !ctx.IsPost() {
			writeError(ctx, id, fasthttp.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.handleValuation(ctx, id)
	case "/api/fundamentals":
		if !ctx.IsGet() {
			writeError(ctx, id, fasthttp.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.handleFundamentals(ctx, id)
	default:
		writeError(ctx, id, fasthttp.StatusNotFound, "not found")
	}
	log.Printf("%s %s %s %d", id, ctx.Method(), path, ctx.Response.StatusCode())
}

func (s *Server) handleValuation(ctx *fasthttp.RequestCtx, id string) {
	var req ValuationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, id, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	p := s.parameters(req)
	if err := p.Check(); err != nil {
		writeError(ctx, id, fasthttp.StatusBadRequest, err.Error())
		return
	}

	var src intrinsic.InputSource
	var f intrinsic.Fundamentals
	switch {
	case req.Price != nil && req.SharesOutstanding != nil && req.FCF != nil:
		m := intrinsic.Manual{Price: *req.Price, SharesOutstanding: *req.SharesOutstanding, FreeCashFlow: *req.FCF}
		src, f = m, m.Fundamentals(req.Ticker, req.Currency)
	case req.Price != nil || req.SharesOutstanding != nil || req.FCF != nil:
		writeError(ctx, id, fasthttp.StatusBadRequest, "manual entry requires price, shares_outstanding and fcf")
		return
	case req.Ticker == "":
		writeError(ctx, id, fasthttp.StatusBadRequest, "a ticker or the manual figures are required")
		return
	default:
		var err error
		f, err = s.Provider.Fetch(ctx, req.Ticker)
		if err != nil {
			writeFetchError(ctx, id, err)
			return
		}
		src = intrinsic.Fetched{Fundamentals: f}
	}
	if f.Currency == "" {
		f.Currency = intrinsic.DefaultCurrency(f.Ticker)
	}

	in, err := intrinsic.NewInputs(src, p)
	if err != nil {
		writeFetchError(ctx, id, err)
		return
	}
	res, err := intrinsic.ComputeValuation(in)
	if err != nil {
		writeError(ctx, id, fasthttp.StatusBadRequest, err.Error())
		return
	}

	resp := ValuationResponse{Fundamentals: f, Parameters: p, Inputs: in, Result: res}
	if up, ok := res.Upside(); ok {
		resp.Upside = &up
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Server) handleFundamentals(ctx *fasthttp.RequestCtx, id string) {
	ticker := string(ctx.QueryArgs().Peek("ticker"))
	if ticker == "" {
		writeError(ctx, id, fasthttp.StatusBadRequest, "ticker is required")
		return
	}
	f, err := s.Provider.Fetch(ctx, ticker)
	if err != nil {
		writeFetchError(ctx, id, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, f)
}

// parameters returns the request parameters on top of the server defaults.
func (s *Server) parameters(req ValuationRequest) intrinsic.Parameters {
	p := s.Defaults
	if req.DiscountRate != nil {
		p.DiscountRate = *req.DiscountRate
	}
	if req.GrowthRate != nil {
		p.GrowthRate = *req.GrowthRate
	}
	if req.TerminalGrowthRate != nil {
		p.TerminalGrowthRate = *req.TerminalGrowthRate
	}
	if req.Horizon != nil {
		p.Horizon = *req.Horizon
	}
	return p.Quantize()
}

// writeFetchError maps errors from the input sources to a status code.
func writeFetchError(ctx *fasthttp.RequestCtx, id string, err error) {
	switch {
	case errors.Is(err, intrinsic.ErrDataUnavailable):
		writeError(ctx, id, fasthttp.StatusBadGateway, err.Error())
	case errors.Is(err, intrinsic.ErrInvalidParameters):
		writeError(ctx, id, fasthttp.StatusBadRequest, err.Error())
	default:
		writeError(ctx, id, fasthttp.StatusInternalServerError, err.Error())
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	content, err := json.Marshal(v)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(content)
}

func writeError(ctx *fasthttp.RequestCtx, id string, status int, message string) {
	writeJSON(ctx, status, ErrorResponse{Status: status, Message: message, RequestID: id})
}
