package config

import "strings"

// Market pairs a ticker suffix with the exchange it denotes
type Market struct {
	Suffix   string // Appended to the base symbol
	Exchange string // Human readable exchange name
}

// Markets is the ordered list of listings probed when a bare symbol has no quote.
// The empty suffix comes first so the bare symbol is always checked before any
// exchange-qualified variant.
var Markets = []Market{
	{"", "Primary listing"},
	{".OL", "Oslo Bors"},
	{".ST", "Nasdaq Stockholm"},
	{".CO", "Nasdaq Copenhagen"},
	{".HE", "Nasdaq Helsinki"},
	{".DE", "Deutsche Borse XETRA"},
}

// MarketSuffixes returns the suffixes of Markets in probe order.
func MarketSuffixes() []string {
	suffixes := make([]string, len(Markets))
	for i, m := range Markets {
		suffixes[i] = m.Suffix
	}
	return suffixes
}

// MarketOf returns the market a symbol's suffix denotes. Symbols without a
// known suffix belong to the primary listing.
func MarketOf(symbol string) Market {
	upper := strings.ToUpper(symbol)
	for _, m := range Markets {
		if m.Suffix != "" && strings.HasSuffix(upper, m.Suffix) {
			return m
		}
	}
	return Markets[0]
}
