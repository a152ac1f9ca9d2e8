// Package ticker guesses a company's stock listing from its name.
package ticker

import (
	"context"
	"regexp"
	"strings"

	"companyintel/config"
)

// Quote is a market data service's answer for one symbol.
type Quote struct {
	// Symbol is the service's canonical form of the queried symbol.
	Symbol             string
	RegularMarketPrice *float64
	MarketCap          *int64
	Industry           string
}

// Priced reports whether the quote carries a regular-market price.
func (q *Quote) Priced() bool {
	return q != nil && q.RegularMarketPrice != nil
}

// Service looks up market data for a single candidate symbol.
type Service interface {
	Lookup(ctx context.Context, symbol string) (*Quote, error)
}

// Factory returns a fresh Service for one extraction run. Services that hold
// network resources also implement io.Closer.
type Factory func() Service

var legalSuffixRe = regexp.MustCompile(`(?i)\s+(Inc\.?|Corp\.?|Ltd\.?|LLC|Limited)$`)

// CleanName strips a trailing legal-entity suffix such as "Inc." or "Ltd".
func CleanName(name string) string {
	return legalSuffixRe.ReplaceAllString(strings.TrimSpace(name), "")
}

// Candidates returns base combined with every market suffix, in probe order.
func Candidates(base string) []string {
	suffixes := config.MarketSuffixes()
	out := make([]string, len(suffixes))
	for i, suffix := range suffixes {
		out[i] = base + suffix
	}
	return out
}
