// Package model holds the company record produced by one extraction run.
package model

// StockInfo is the best-guess market summary for a company.
type StockInfo struct {
	Symbol       string  `json:"symbol"`
	CurrentPrice float64 `json:"current_price"`
	MarketCap    *int64  `json:"market_cap,omitempty"`
	Industry     string  `json:"industry"`
}

// CompanyRecord is the structured result of extracting one company website.
// Optional fields are nil when the corresponding heuristic found nothing.
type CompanyRecord struct {
	SourceURL   string     `json:"source_url"`
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	LogoURL     *string    `json:"logo_url,omitempty"`
	StockInfo   *StockInfo `json:"stock_info,omitempty"`
	Error       *string    `json:"error,omitempty"`
}

// Failed reports whether the record carries a fetch-level error.
func (r CompanyRecord) Failed() bool {
	return r.Error != nil
}

// NameOr returns the company name, or fallback when no name was found.
func (r CompanyRecord) NameOr(fallback string) string {
	if r.Name == nil {
		return fallback
	}
	return *r.Name
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
