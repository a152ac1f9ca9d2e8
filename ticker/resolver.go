package ticker

import (
	"context"

	"go.uber.org/zap"

	"companyintel/model"
)

// UnknownIndustry is reported when the service has no industry for a listing.
const UnknownIndustry = "Unknown"

// Resolver maps a company name to a market summary.
type Resolver struct {
	svc    Service
	logger *zap.Logger
}

// NewResolver creates a Resolver backed by svc. A nil logger discards diagnostics.
func NewResolver(svc Service, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{svc: svc, logger: logger}
}

// Resolve returns stock information for name, or nil when no candidate symbol
// has a regular-market price. The cleaned name is tried as a symbol first,
// then with each market suffix; each candidate is queried exactly once per step.
func (r *Resolver) Resolve(ctx context.Context, name string) *model.StockInfo {
	base := CleanName(name)
	if base == "" {
		return nil
	}

	if q := r.probe(ctx, []string{base}); q != nil {
		return toStockInfo(q)
	}

	symbol := r.search(ctx, base)
	if symbol == "" {
		r.logger.Debug("ticker: no listing found", zap.String("name", name))
		return nil
	}

	if q := r.probe(ctx, []string{symbol}); q != nil {
		return toStockInfo(q)
	}
	return nil
}

// search probes base with every market suffix and returns the first
// candidate symbol that has a price.
func (r *Resolver) search(ctx context.Context, base string) string {
	for _, candidate := range Candidates(base) {
		if q := r.probe(ctx, []string{candidate}); q != nil {
			return candidate
		}
	}
	return ""
}

// probe queries each candidate in order and returns the first priced quote.
// Errors and unpriced answers reject the candidate.
func (r *Resolver) probe(ctx context.Context, candidates []string) *Quote {
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			return nil
		}
		q, err := r.svc.Lookup(ctx, candidate)
		if err != nil {
			r.logger.Debug("ticker: candidate rejected",
				zap.String("symbol", candidate),
				zap.Error(err),
			)
			continue
		}
		if !q.Priced() {
			r.logger.Debug("ticker: candidate has no market price", zap.String("symbol", candidate))
			continue
		}
		if q.Symbol == "" {
			q.Symbol = candidate
		}
		return q
	}
	return nil
}

func toStockInfo(q *Quote) *model.StockInfo {
	industry := q.Industry
	if industry == "" {
		industry = UnknownIndustry
	}
	return &model.StockInfo{
		Symbol:       q.Symbol,
		CurrentPrice: *q.RegularMarketPrice,
		MarketCap:    q.MarketCap,
		Industry:     industry,
	}
}
