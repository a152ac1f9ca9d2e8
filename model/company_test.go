package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyRecordOmitsMissingFields(t *testing.T) {
	data, err := json.Marshal(CompanyRecord{
		SourceURL: "https://gone.example",
		Error:     StringPtr("Could not access website: 404"),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"source_url":"https://gone.example","error":"Could not access website: 404"}`, string(data))
}

func TestStockInfoMarketCapOptional(t *testing.T) {
	data, err := json.Marshal(StockInfo{Symbol: "ACME", CurrentPrice: 1.5, Industry: "Unknown"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"symbol":"ACME","current_price":1.5,"industry":"Unknown"}`, string(data))
}

func TestNameOr(t *testing.T) {
	assert.Equal(t, "fallback", CompanyRecord{}.NameOr("fallback"))
	assert.Equal(t, "Acme", CompanyRecord{Name: StringPtr("Acme")}.NameOr("fallback"))
	assert.True(t, CompanyRecord{Error: StringPtr("x")}.Failed())
	assert.False(t, CompanyRecord{}.Failed())
}
