package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"companyintel/config"
	"companyintel/fetcher"
	"companyintel/scraper"
	"companyintel/store"
	"companyintel/ticker"
	"companyintel/tracker"
)

// app holds the components shared by the commands.
type app struct {
	Scraper *scraper.Service
	Store   store.Store
	Logos   *store.LogoSaver
	Tracker *tracker.Tracker
}

// newScraper builds the extraction service from configuration.
func newScraper(c *config.Config, logger *zap.Logger) (*scraper.Service, error) {
	f, err := fetcher.New(c.Fetch)
	if err != nil {
		return nil, err
	}
	tickers, err := ticker.NewFactory(c.Ticker, logger.Named("ticker"))
	if err != nil {
		return nil, err
	}
	return scraper.NewService(f, tickers, logger.Named("scraper")), nil
}

// logoFetcher returns a plain HTTP fetcher regardless of fetch.mode.
func logoFetcher(c config.FetchConfig) fetcher.Fetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:    c.UserAgent,
		Timeout:      time.Duration(c.TimeoutSecs) * time.Second,
		MaxBodyBytes: c.MaxBodyBytes,
		InsecureTLS:  c.InsecureTLS,
	})
}

// initApp wires the scraper, store and tracker.
func initApp(ctx context.Context, c *config.Config) (*app, error) {
	logger := zap.L()

	svc, err := newScraper(c, logger)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, c.Store)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}

	a := &app{Scraper: svc, Store: st}
	var logos tracker.LogoSaver
	if c.Store.SaveLogos {
		a.Logos = store.NewLogoSaver(logoFetcher(c.Fetch), c.Store.DataDir, logger.Named("logos"))
		logos = a.Logos
	}
	a.Tracker = tracker.New(svc, st, logos, logger.Named("tracker"))
	return a, nil
}

// Close releases the store.
func (a *app) Close() {
	if err := a.Store.Close(); err != nil {
		zap.L().Warn("close store", zap.Error(err))
	}
}

// logosDir is where the dashboard serves saved logos from.
func (a *app) logosDir() string {
	if a.Logos == nil {
		return ""
	}
	return a.Logos.Dir()
}
