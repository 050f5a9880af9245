// Package intrinsic estimates the intrinsic value per share of a company with
// a discounted cash flow (DCF) model.
//
// The core functionalities include:
//   - Valuation: a pure engine that projects the latest free cash flow over a
//     horizon, discounts it to today and adds a terminal value (see ComputeValuation).
//   - Parameters: the user adjustable rates, their admissible ranges and the
//     YAML parameters file.
//   - Input sources: figures either fetched from a Provider or entered
//     manually, normalized into ValuationInputs.
//   - Caching: a memory cache for fetched fundamentals and a disk cache for
//     HTTP responses.
//
// This package serves as the foundational logic for the `dcf` command-line
// tool. Fetching lives in the eodhd package and rendering in the renderer package.
package intrinsic
