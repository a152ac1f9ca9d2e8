package ticker

import (
	"context"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/equity"
	"github.com/rotisserie/eris"
)

// EquityGetter fetches an equity quote by symbol.
type EquityGetter func(symbol string) (*finance.Equity, error)

// FinanceGoClient adapts github.com/piquette/finance-go to Service.
// finance-go does not report industry, so quotes from it carry none.
type FinanceGoClient struct {
	get     EquityGetter
	timeout time.Duration
}

// NewFinanceGoClient creates a client. A nil getter uses equity.Get.
func NewFinanceGoClient(get EquityGetter, timeout time.Duration) *FinanceGoClient {
	if get == nil {
		get = equity.Get
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &FinanceGoClient{get: get, timeout: timeout}
}

type equityResult struct {
	eq  *finance.Equity
	err error
}

// Lookup returns the quote for symbol. finance-go takes no context, so the
// call is abandoned, not cancelled, when ctx or the timeout expires first.
func (c *FinanceGoClient) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan equityResult, 1)
	go func() {
		eq, err := c.get(symbol)
		done <- equityResult{eq: eq, err: err}
	}()

	var res equityResult
	select {
	case <-ctx.Done():
		return nil, eris.Wrapf(ctx.Err(), "financego: lookup %s", symbol)
	case res = <-done:
	}

	if res.err != nil {
		return nil, eris.Wrapf(res.err, "financego: lookup %s", symbol)
	}
	if res.eq == nil {
		return nil, eris.Errorf("financego: no quote for %s", symbol)
	}

	q := &Quote{Symbol: res.eq.Symbol}
	if res.eq.RegularMarketPrice != 0 {
		price := res.eq.RegularMarketPrice
		q.RegularMarketPrice = &price
	}
	if res.eq.MarketCap != 0 {
		marketCap := int64(res.eq.MarketCap)
		q.MarketCap = &marketCap
	}
	return q, nil
}
