package ticker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"companyintel/ticker"
	"companyintel/ticker/mocks"
)

func price(v float64) *float64 { return &v }
func cap64(v int64) *int64     { return &v }

func calledSymbols(m *mocks.MockService) []string {
	var out []string
	for _, c := range m.Calls {
		out = append(out, c.Arguments.String(1))
	}
	return out
}

func TestResolve_DirectProbe(t *testing.T) {
	svc := mocks.NewMockService(t)
	svc.On("Lookup", mock.Anything, "AAPL").Return(&ticker.Quote{
		Symbol:             "AAPL",
		RegularMarketPrice: price(189.5),
		MarketCap:          cap64(2_900_000_000_000),
		Industry:           "Consumer Electronics",
	}, nil).Once()

	info := ticker.NewResolver(svc, nil).Resolve(context.Background(), "AAPL Inc.")
	require.NotNil(t, info)

	assert.Equal(t, "AAPL", info.Symbol)
	assert.InDelta(t, 189.5, info.CurrentPrice, 0.0001)
	require.NotNil(t, info.MarketCap)
	assert.Equal(t, int64(2_900_000_000_000), *info.MarketCap)
	assert.Equal(t, "Consumer Electronics", info.Industry)
	assert.Equal(t, []string{"AAPL"}, calledSymbols(svc))
}

func TestResolve_UsesCanonicalSymbol(t *testing.T) {
	svc := mocks.NewMockService(t)
	svc.On("Lookup", mock.Anything, "msft").Return(&ticker.Quote{
		Symbol:             "MSFT",
		RegularMarketPrice: price(410),
	}, nil).Once()

	info := ticker.NewResolver(svc, nil).Resolve(context.Background(), "msft")
	require.NotNil(t, info)
	assert.Equal(t, "MSFT", info.Symbol)
	assert.Equal(t, ticker.UnknownIndustry, info.Industry)
	assert.Nil(t, info.MarketCap)
}

func TestResolve_SuffixSearchOrder(t *testing.T) {
	svc := mocks.NewMockService(t)
	// Direct probe and the bare-suffix probe both miss.
	svc.On("Lookup", mock.Anything, "Equinor").Return(nil, errors.New("not found")).Once()
	svc.On("Lookup", mock.Anything, "Equinor").Return(&ticker.Quote{Symbol: "EQUINOR"}, nil).Once()
	// Oslo listing is priced on the search probe and again on the re-query.
	svc.On("Lookup", mock.Anything, "Equinor.OL").Return(&ticker.Quote{
		Symbol:             "EQUINOR.OL",
		RegularMarketPrice: price(312.4),
		Industry:           "Oil & Gas Integrated",
	}, nil).Twice()

	info := ticker.NewResolver(svc, nil).Resolve(context.Background(), "Equinor")
	require.NotNil(t, info)

	assert.Equal(t, "EQUINOR.OL", info.Symbol)
	assert.InDelta(t, 312.4, info.CurrentPrice, 0.0001)
	assert.Equal(t, "Oil & Gas Integrated", info.Industry)
	assert.Equal(t, []string{"Equinor", "Equinor", "Equinor.OL", "Equinor.OL"}, calledSymbols(svc))
}

func TestResolve_LaterSuffix(t *testing.T) {
	svc := mocks.NewMockService(t)
	svc.On("Lookup", mock.Anything, "Nokia").Return(nil, errors.New("boom")).Twice()
	svc.On("Lookup", mock.Anything, "Nokia.OL").Return(nil, errors.New("boom")).Once()
	svc.On("Lookup", mock.Anything, "Nokia.ST").Return(&ticker.Quote{Symbol: "NOKIA.ST"}, nil).Once()
	svc.On("Lookup", mock.Anything, "Nokia.CO").Return(nil, errors.New("boom")).Once()
	svc.On("Lookup", mock.Anything, "Nokia.HE").Return(&ticker.Quote{
		Symbol:             "NOKIA.HE",
		RegularMarketPrice: price(3.45),
	}, nil).Twice()

	info := ticker.NewResolver(svc, nil).Resolve(context.Background(), "Nokia Corp")
	require.NotNil(t, info)
	assert.Equal(t, "NOKIA.HE", info.Symbol)
	assert.Equal(t, []string{"Nokia", "Nokia", "Nokia.OL", "Nokia.ST", "Nokia.CO", "Nokia.HE", "Nokia.HE"}, calledSymbols(svc))
}

func TestResolve_NoListing(t *testing.T) {
	svc := mocks.NewMockService(t)
	svc.On("Lookup", mock.Anything, mock.Anything).Return(nil, errors.New("not found"))

	info := ticker.NewResolver(svc, nil).Resolve(context.Background(), "Tiny Startup LLC")
	assert.Nil(t, info)

	want := append([]string{"Tiny Startup"}, ticker.Candidates("Tiny Startup")...)
	assert.Equal(t, want, calledSymbols(svc))
}

func TestResolve_RequeryFails(t *testing.T) {
	svc := mocks.NewMockService(t)
	svc.On("Lookup", mock.Anything, "Acme").Return(nil, errors.New("nope")).Twice()
	svc.On("Lookup", mock.Anything, "Acme.OL").Return(&ticker.Quote{RegularMarketPrice: price(1)}, nil).Once()
	svc.On("Lookup", mock.Anything, "Acme.OL").Return(nil, errors.New("flaky")).Once()

	assert.Nil(t, ticker.NewResolver(svc, nil).Resolve(context.Background(), "Acme"))
}

func TestResolve_FallsBackToCandidateSymbol(t *testing.T) {
	svc := mocks.NewMockService(t)
	svc.On("Lookup", mock.Anything, "Acme").Return(&ticker.Quote{RegularMarketPrice: price(12)}, nil).Once()

	info := ticker.NewResolver(svc, nil).Resolve(context.Background(), "Acme")
	require.NotNil(t, info)
	assert.Equal(t, "Acme", info.Symbol)
}

func TestResolve_EmptyName(t *testing.T) {
	svc := mocks.NewMockService(t)
	assert.Nil(t, ticker.NewResolver(svc, nil).Resolve(context.Background(), "   "))
	svc.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
}

func TestResolve_CancelledContext(t *testing.T) {
	svc := mocks.NewMockService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Nil(t, ticker.NewResolver(svc, nil).Resolve(ctx, "Acme"))
	svc.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
}
