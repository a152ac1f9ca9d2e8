// Package dashboard renders tracked company records and accepts new URLs.
package dashboard

import (
	"path/filepath"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"companyintel/config"
	"companyintel/model"
	"companyintel/store"
	"companyintel/tracker"
)

const summaryLen = 100

// View holds the four display slots for one record. Unset slots render empty.
type View struct {
	Sidebar *SidebarEntry
	Header  *Header
	Tabs    *Tabs
	Error   string
}

// SidebarEntry is a company's line in the tracked-companies list.
type SidebarEntry struct {
	Key     string
	Name    string
	Summary string
}

// Header shows the logo, name and full description.
type Header struct {
	LogoSrc     string
	Name        string
	Description string
}

// Field is a labelled value in a detail tab.
type Field struct {
	Label string
	Value string
}

// Tabs is the content of the Overview, Financial and Market tabs.
type Tabs struct {
	Overview  []Field
	Financial []Field // empty when no stock information was found
	Market    []Field
}

// BuildView maps a record to its display slots. logoPath is the locally saved
// logo, if any, and takes precedence over the remote logo URL.
func BuildView(rec model.CompanyRecord, logoPath string) View {
	if rec.Error != nil {
		return View{Error: *rec.Error}
	}
	if rec.Name == nil {
		return View{Error: tracker.NoCompanyMessage}
	}

	name := *rec.Name
	var description string
	if rec.Description != nil {
		description = *rec.Description
	}

	return View{
		Sidebar: SidebarFor(store.Key(name), rec),
		Header: &Header{
			LogoSrc:     logoSrc(rec, logoPath),
			Name:        name,
			Description: description,
		},
		Tabs: &Tabs{
			Overview:  overview(rec),
			Financial: financial(rec.StockInfo),
			Market:    market(rec.StockInfo),
		},
	}
}

// SidebarFor builds the sidebar entry for a stored record.
func SidebarFor(key string, rec model.CompanyRecord) *SidebarEntry {
	entry := &SidebarEntry{
		Key:  key,
		Name: rec.NameOr("Unknown Company"),
	}
	if rec.Description != nil && *rec.Description != "" {
		entry.Summary = Truncate(*rec.Description, summaryLen) + "..."
	}
	return entry
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func logoSrc(rec model.CompanyRecord, logoPath string) string {
	if logoPath != "" {
		return "/logos/" + filepath.Base(logoPath)
	}
	if rec.LogoURL != nil {
		return *rec.LogoURL
	}
	return ""
}

func overview(rec model.CompanyRecord) []Field {
	fields := []Field{
		{Label: "Name", Value: rec.NameOr("")},
		{Label: "Website", Value: rec.SourceURL},
	}
	if rec.Description != nil {
		fields = append(fields, Field{Label: "Description", Value: *rec.Description})
	}
	return fields
}

func financial(info *model.StockInfo) []Field {
	if info == nil {
		return nil
	}
	return []Field{
		{Label: "Symbol", Value: info.Symbol},
		{Label: "Current Price", Value: "$" + humanize.Commaf(info.CurrentPrice)},
		{Label: "Market Cap", Value: FormatMarketCap(info.MarketCap)},
		{Label: "Industry", Value: info.Industry},
	}
}

func market(info *model.StockInfo) []Field {
	if info == nil {
		return nil
	}
	m := config.MarketOf(info.Symbol)
	return []Field{
		{Label: "Exchange", Value: m.Exchange},
		{Label: "Symbol", Value: info.Symbol},
		{Label: "Industry", Value: info.Industry},
	}
}

// FormatMarketCap renders a market cap with thousands separators.
func FormatMarketCap(mc *int64) string {
	if mc == nil {
		return "N/A"
	}
	return "$" + humanize.Comma(*mc)
}
