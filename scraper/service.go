package scraper

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"companyintel/fetcher"
	"companyintel/model"
	"companyintel/ticker"
)

// Service runs one extraction per call: fetch, parse, extract, ticker lookup.
type Service struct {
	fetcher fetcher.Fetcher
	tickers ticker.Factory
	logger  *zap.Logger
}

// NewService creates a scraper service. A nil tickers factory disables the
// stock lookup and a nil logger discards diagnostics.
func NewService(f fetcher.Fetcher, tickers ticker.Factory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher: f,
		tickers: tickers,
		logger:  logger,
	}
}

// ScrapeCompany extracts a company record from the website at rawURL. It never
// fails: fetch problems and panics below it are reported in the record's Error.
func (s *Service) ScrapeCompany(ctx context.Context, rawURL string) (rec model.CompanyRecord) {
	log := s.logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("url", rawURL),
	)
	rec.SourceURL = rawURL

	defer func() {
		if r := recover(); r != nil {
			log.Error("scrape: recovered from panic", zap.Any("panic", r))
			rec = model.CompanyRecord{
				SourceURL: rawURL,
				Error:     model.StringPtr(fmt.Sprintf("Error scraping website: %v", r)),
			}
		}
	}()

	target := fetcher.NormalizeURL(rawURL)
	page, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		log.Error("scrape: could not access website", zap.Error(err))
		rec.Error = model.StringPtr(fmt.Sprintf("Could not access website: %v", err))
		return rec
	}

	if page.URL != target {
		log.Debug("scrape: followed redirect", zap.String("final_url", page.URL))
	}

	// Relative links and the domain fallback resolve against the requested URL.
	parsed, err := ParsePage(page.Body, target)
	if err != nil {
		log.Error("scrape: could not parse website", zap.Error(err))
		rec.Error = model.StringPtr(fmt.Sprintf("Could not parse website: %v", err))
		return rec
	}

	var name, description, logo string
	var hasName, hasDescription, hasLogo bool

	g := new(errgroup.Group)
	g.Go(func() (err error) {
		defer recoverField("name", &err)
		name, hasName = ExtractName(parsed)
		return nil
	})
	g.Go(func() (err error) {
		defer recoverField("description", &err)
		description, hasDescription = ExtractDescription(parsed)
		return nil
	})
	g.Go(func() (err error) {
		defer recoverField("logo", &err)
		logo, hasLogo = ExtractLogo(parsed)
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("scrape: extraction failed", zap.Error(err))
		return model.CompanyRecord{
			SourceURL: rawURL,
			Error:     model.StringPtr(fmt.Sprintf("Error scraping website: %v", err)),
		}
	}

	if hasName {
		rec.Name = model.StringPtr(name)
	} else {
		log.Debug("scrape: no company name found")
	}
	if hasDescription {
		rec.Description = model.StringPtr(description)
	}
	if hasLogo {
		rec.LogoURL = model.StringPtr(logo)
	}

	if hasName && s.tickers != nil {
		rec.StockInfo = s.lookupStock(ctx, name, log)
	}

	log.Info("scrape: completed",
		zap.Bool("name", rec.Name != nil),
		zap.Bool("description", rec.Description != nil),
		zap.Bool("logo", rec.LogoURL != nil),
		zap.Bool("stock", rec.StockInfo != nil),
	)
	return rec
}

// recoverField turns a panic in an extractor goroutine into err. Panics do not
// cross goroutines, so the recover in ScrapeCompany cannot see them.
func recoverField(field string, err *error) {
	if r := recover(); r != nil {
		*err = eris.Errorf("%s: %v", field, r)
	}
}

// lookupStock resolves the listing with a ticker service that lives for this
// call only. A failing lookup leaves the stock info unset.
func (s *Service) lookupStock(ctx context.Context, name string, log *zap.Logger) (info *model.StockInfo) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("scrape: ticker lookup panicked", zap.String("name", name), zap.Any("panic", r))
			info = nil
		}
	}()

	svc := s.tickers()
	if svc == nil {
		return nil
	}
	if c, ok := svc.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				log.Warn("scrape: close ticker service", zap.Error(err))
			}
		}()
	}

	info = ticker.NewResolver(svc, log).Resolve(ctx, name)
	if info == nil {
		log.Info("scrape: no stock listing found", zap.String("name", name))
	}
	return info
}
