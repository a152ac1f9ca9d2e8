package ticker

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"companyintel/config"
)

// NewFactory returns the Factory selected by cfg.Provider. The "none"
// provider yields a nil Factory, which disables ticker lookup.
func NewFactory(cfg config.TickerConfig, logger *zap.Logger) (Factory, error) {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	switch cfg.Provider {
	case "", "yahoo":
		return func() Service {
			return NewYahooClient(YahooOptions{
				BaseURL:   cfg.BaseURL,
				CookieURL: cfg.CookieURL,
				Timeout:   timeout,
				Logger:    logger,
			})
		}, nil
	case "financego":
		return func() Service {
			return NewFinanceGoClient(nil, timeout)
		}, nil
	case "none":
		return nil, nil
	default:
		return nil, eris.Errorf("ticker: unknown provider %q", cfg.Provider)
	}
}
