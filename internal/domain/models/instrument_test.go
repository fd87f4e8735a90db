package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCategory("bond")
	assert.Error(t, err)
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryOption.Valid())
	assert.False(t, Category(42).Valid())
}

func TestInstrumentPageBounds(t *testing.T) {
	tests := []struct {
		name    string
		page    InstrumentPage
		hasNext bool
		hasPrev bool
	}{
		{"first of many", InstrumentPage{Total: 25, Page: 1, PageSize: 10}, true, false},
		{"middle", InstrumentPage{Total: 25, Page: 2, PageSize: 10}, true, true},
		{"last partial", InstrumentPage{Total: 25, Page: 3, PageSize: 10}, false, true},
		{"exact fit", InstrumentPage{Total: 20, Page: 2, PageSize: 10}, false, true},
		{"empty", InstrumentPage{Total: 0, Page: 1, PageSize: 10}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hasNext, tt.page.HasNext())
			assert.Equal(t, tt.hasPrev, tt.page.HasPrev())
		})
	}
}

func TestCatalogRowOmitsOtherVariants(t *testing.T) {
	row := Instrument{Code: "600519", Name: "贵州茅台", Market: "主板", Price: 1700, Change: 1.2}.Row()

	b, err := json.Marshal(row)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.NotContains(t, m, "nav")
	assert.NotContains(t, m, "strike_price")
	assert.NotContains(t, m, "delivery_date")
	assert.Equal(t, "600519", m["code"])
}

func TestOptionRowCarriesContractFields(t *testing.T) {
	row := Option{
		Instrument:  Instrument{Code: "10004567", Name: "50ETF购3月2750"},
		Underlying:  "510050",
		ExpiryDate:  "2026-03-25",
		StrikePrice: 2.75,
		OptionType:  "C",
		Exchange:    "SSE",
	}.Row()

	assert.Equal(t, "510050", row.Underlying)
	assert.Equal(t, "C", row.OptionType)
	assert.Equal(t, 2.75, row.StrikePrice)
}
