package marketdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// columnarServer dispatches on api_name and answers with canned
// {fields, items} tables, like the upstream market data API does.
func columnarServer(t *testing.T, tables map[string]map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req apiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		data, ok := tables[req.APIName]
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"code": 0, "msg": "",
				"data": map[string]any{"fields": []string{}, "items": [][]any{}},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 0, "msg": "", "data": data})
	}))
}

func fixedClock() func() time.Time {
	// a Wednesday
	return func() time.Time { return time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC) }
}

func TestEquitiesMergesQuotes(t *testing.T) {
	srv := columnarServer(t, map[string]map[string]any{
		"stock_basic": {
			"fields": []string{"ts_code", "symbol", "name", "area", "industry", "market", "list_date"},
			"items": [][]any{
				{"600519.SH", "600519", "贵州茅台", "贵州", "白酒", "主板", "20010827"},
				{"300750.SZ", "300750", "宁德时代", "福建", "", "创业板", "20180611"},
			},
		},
		"daily": {
			"fields": []string{"ts_code", "close", "pct_chg"},
			"items": [][]any{
				{"600519.SH", 1700.5, 1.2},
			},
		},
	})
	defer srv.Close()

	c := New(srv.URL, "test-token", 5*time.Second, WithClock(fixedClock()))
	list, err := c.Equities(context.Background())
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "600519.SH", list[0].Code)
	assert.Equal(t, "白酒", list[0].Industry)
	assert.Equal(t, 1700.5, list[0].Price)
	assert.Equal(t, 1.2, list[0].Change)

	// missing industry defaults, missing quote stays zero
	assert.Equal(t, "unknown", list[1].Industry)
	assert.Zero(t, list[1].Price)
}

func TestEquitiesSurvivesQuoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req apiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.APIName == "daily" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": 0, "msg": "",
			"data": map[string]any{
				"fields": []string{"ts_code", "name", "market", "industry"},
				"items":  [][]any{{"600519.SH", "贵州茅台", "主板", "白酒"}},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-token", 5*time.Second, WithClock(fixedClock()))
	list, err := c.Equities(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Zero(t, list[0].Price)
}

func TestFundsClassifiesPublicKinds(t *testing.T) {
	srv := columnarServer(t, map[string]map[string]any{
		"fund_basic": {
			"fields": []string{"ts_code", "name", "fund_type", "type", "market"},
			"items": [][]any{
				{"510050.SH", "50ETF", "ETF", "股票型", "E"},
				{"166001.SZ", "某私募", "其他", "", "E"},
			},
		},
		"fund_daily": {
			"fields": []string{"ts_code", "close", "pct_chg"},
			"items":  [][]any{{"510050.SH", 2.85, 0.4}},
		},
	})
	defer srv.Close()

	c := New(srv.URL, "test-token", 5*time.Second, WithClock(fixedClock()))
	list, err := c.Funds(context.Background())
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "public", list[0].FundType)
	assert.Equal(t, "股票型", list[0].FundCategory)
	assert.Equal(t, 2.85, list[0].NAV)
	assert.Equal(t, "private", list[1].FundType)
	// category falls back to the raw fund type when untyped
	assert.Equal(t, "其他", list[1].FundCategory)
}

func TestFuturesFiltersToCurrentYear(t *testing.T) {
	srv := columnarServer(t, map[string]map[string]any{
		"fut_basic": {
			"fields": []string{"ts_code", "symbol", "name", "exchange", "fut_code", "last_trade_date"},
			"items": [][]any{
				{"T2606.CFX", "T2606", "10年期国债 2606", "CFFEX", "T", "20260612"},
				{"T2506.CFX", "T2506", "10年期国债 2506", "CFFEX", "T", "20250613"},
				{"T2609.CFX", "T2609", "10年期国债 2609", "CFFEX", "T", "20260911"},
			},
		},
	})
	defer srv.Close()

	c := New(srv.URL, "test-token", 5*time.Second, WithClock(fixedClock()))
	list, err := c.Futures(context.Background())
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "T2606.CFX", list[0].Code)
	assert.Equal(t, "T2609.CFX", list[1].Code)
	assert.Equal(t, "T", list[0].Industry)
	assert.Equal(t, "20260612", list[0].DeliveryDate)
}

func TestOptionsFiltersToCurrentYearMaturity(t *testing.T) {
	srv := columnarServer(t, map[string]map[string]any{
		"opt_basic": {
			"fields": []string{"ts_code", "name", "exchange", "call_put", "exercise_price", "maturity_date", "opt_code"},
			"items": [][]any{
				{"10004567.SH", "50ETF购6月2750", "SSE", "C", 2.75, "20260624", "510050"},
				{"10001111.SH", "50ETF沽12月2500", "SSE", "P", 2.50, "20251224", "510050"},
			},
		},
	})
	defer srv.Close()

	c := New(srv.URL, "test-token", 5*time.Second, WithClock(fixedClock()))
	list, err := c.Options(context.Background())
	require.NoError(t, err)

	require.Len(t, list, 1)
	assert.Equal(t, "10004567.SH", list[0].Code)
	assert.Equal(t, "510050", list[0].Underlying)
	assert.Equal(t, "C", list[0].OptionType)
	assert.Equal(t, 2.75, list[0].StrikePrice)
}

func TestQuoteReturnsLatestClose(t *testing.T) {
	srv := columnarServer(t, map[string]map[string]any{
		"daily": {
			"fields": []string{"ts_code", "trade_date", "close", "pct_chg"},
			"items": [][]any{
				{"600519.SH", "20260610", 1700.5, 1.2},
				{"600519.SH", "20260609", 1680.0, -0.3},
			},
		},
	})
	defer srv.Close()

	c := New(srv.URL, "test-token", 5*time.Second, WithClock(fixedClock()))
	price, change, err := c.Quote(context.Background(), "600519.SH")
	require.NoError(t, err)
	assert.Equal(t, 1700.5, price)
	assert.Equal(t, 1.2, change)
}

func TestQuoteNotFound(t *testing.T) {
	srv := columnarServer(t, nil)
	defer srv.Close()

	c := New(srv.URL, "test-token", 5*time.Second, WithClock(fixedClock()))
	_, _, err := c.Quote(context.Background(), "nope")
	assert.Error(t, err)
}

func TestUpstreamErrorCodeSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 40001, "msg": "token invalid"})
	}))
	defer srv.Close()

	c := New(srv.URL, "bad-token", 5*time.Second, WithClock(fixedClock()))
	_, err := c.Equities(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token invalid")
}

func TestLastTradeDayStepsOverWeekend(t *testing.T) {
	sunday := func() time.Time { return time.Date(2026, 6, 14, 9, 0, 0, 0, time.UTC) }
	c := &Client{now: sunday}
	assert.Equal(t, "20260612", c.lastTradeDay())
}
