package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"QuantDesk/internal/domain/models"
)

// fakeMarketData is an in-memory catalog source for tests. The gate
// channel, when set, blocks listing calls until released.
type fakeMarketData struct {
	equities []models.Instrument
	funds    []models.Fund
	futures  []models.Future
	options  []models.Option
	err      error
	gate     chan struct{}
}

func (f *fakeMarketData) wait() {
	if f.gate != nil {
		<-f.gate
	}
}

func (f *fakeMarketData) Equities(ctx context.Context) ([]models.Instrument, error) {
	f.wait()
	return f.equities, f.err
}

func (f *fakeMarketData) Funds(ctx context.Context) ([]models.Fund, error) {
	f.wait()
	return f.funds, f.err
}

func (f *fakeMarketData) Futures(ctx context.Context) ([]models.Future, error) {
	f.wait()
	return f.futures, f.err
}

func (f *fakeMarketData) Options(ctx context.Context) ([]models.Option, error) {
	f.wait()
	return f.options, f.err
}

func (f *fakeMarketData) Quote(ctx context.Context, code string) (float64, float64, error) {
	return 0, 0, errors.New("no quote")
}

func equityFixture(n int) []models.Instrument {
	out := make([]models.Instrument, 0, n)
	for i := 0; i < n; i++ {
		market := "主板"
		if i%2 == 1 {
			market = "创业板"
		}
		out = append(out, models.Instrument{
			Code:   fmt.Sprintf("6005%02d", i),
			Name:   fmt.Sprintf("股票%02d", i),
			Market: market,
		})
	}
	return out
}

func TestCatalogListPaginates(t *testing.T) {
	src := &fakeMarketData{equities: equityFixture(25)}
	cat := NewCatalog(src, nil, 0, nil)

	page, err := cat.List(context.Background(), models.CategoryEquity, &models.ListQuery{Page: 3, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.Page)
	assert.Len(t, page.Data, 5)
	assert.False(t, page.HasNext())
	assert.True(t, page.HasPrev())
}

func TestCatalogListOutOfRangePageIsEmpty(t *testing.T) {
	src := &fakeMarketData{equities: equityFixture(5)}
	cat := NewCatalog(src, nil, 0, nil)

	page, err := cat.List(context.Background(), models.CategoryEquity, &models.ListQuery{Page: 4, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, 5, page.Total)
	assert.Empty(t, page.Data)
}

func TestCatalogListTotalCountedAfterFiltering(t *testing.T) {
	src := &fakeMarketData{equities: equityFixture(25)}
	cat := NewCatalog(src, nil, 0, nil)

	page, err := cat.List(context.Background(), models.CategoryEquity, &models.ListQuery{
		Page: 1, PageSize: 10, Market: "主板",
	})
	require.NoError(t, err)

	assert.Equal(t, 13, page.Total)
	assert.Len(t, page.Data, 10)
	for _, r := range page.Data {
		assert.Equal(t, "主板", r.Market)
	}
}

func TestCatalogSearchMatchesCodeOrName(t *testing.T) {
	src := &fakeMarketData{equities: []models.Instrument{
		{Code: "600519", Name: "贵州茅台"},
		{Code: "000858", Name: "五粮液"},
		{Code: "AAPL", Name: "Apple Inc"},
	}}
	cat := NewCatalog(src, nil, 0, nil)

	page, err := cat.List(context.Background(), models.CategoryEquity, &models.ListQuery{
		Page: 1, PageSize: 10, Search: "aapl",
	})
	require.NoError(t, err)

	require.Len(t, page.Data, 1)
	assert.Equal(t, "AAPL", page.Data[0].Code)

	page, err = cat.List(context.Background(), models.CategoryEquity, &models.ListQuery{
		Page: 1, PageSize: 10, Search: "茅台",
	})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "600519", page.Data[0].Code)
}

func TestCatalogFutureUnderlyingIsProductPrefix(t *testing.T) {
	src := &fakeMarketData{futures: []models.Future{
		{Instrument: models.Instrument{Code: "IF2606.CFX"}, Symbol: "IF2606", Exchange: "CFFEX"},
		{Instrument: models.Instrument{Code: "IC2606.CFX"}, Symbol: "IC2606", Exchange: "CFFEX"},
		{Instrument: models.Instrument{Code: "IF2609.CFX"}, Symbol: "IF2609", Exchange: "CFFEX"},
	}}
	cat := NewCatalog(src, nil, 0, nil)

	page, err := cat.List(context.Background(), models.CategoryFuture, &models.ListQuery{
		Page: 1, PageSize: 10, Underlying: "IF",
	})
	require.NoError(t, err)

	require.Len(t, page.Data, 2)
	assert.Equal(t, "IF2606", page.Data[0].Symbol)
	assert.Equal(t, "IF2609", page.Data[1].Symbol)
}

func TestCatalogOptionFilters(t *testing.T) {
	src := &fakeMarketData{options: []models.Option{
		{Instrument: models.Instrument{Code: "10001"}, Underlying: "510050", OptionType: "C", Exchange: "SSE"},
		{Instrument: models.Instrument{Code: "10002"}, Underlying: "510050", OptionType: "P", Exchange: "SSE"},
		{Instrument: models.Instrument{Code: "10003"}, Underlying: "510300", OptionType: "C", Exchange: "SSE"},
	}}
	cat := NewCatalog(src, nil, 0, nil)

	page, err := cat.List(context.Background(), models.CategoryOption, &models.ListQuery{
		Page: 1, PageSize: 10, Underlying: "510050", OptionType: "C",
	})
	require.NoError(t, err)

	require.Len(t, page.Data, 1)
	assert.Equal(t, "10001", page.Data[0].Code)
}

func TestCatalogServesStaleSnapshotOnFetchFailure(t *testing.T) {
	src := &fakeMarketData{equities: equityFixture(3)}
	cat := NewCatalog(src, nil, 0, nil)

	_, err := cat.List(context.Background(), models.CategoryEquity, &models.ListQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)

	src.err = errors.New("upstream down")
	page, err := cat.List(context.Background(), models.CategoryEquity, &models.ListQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
}

func TestCatalogFetchFailureWithNoSnapshotErrors(t *testing.T) {
	src := &fakeMarketData{err: errors.New("upstream down")}
	cat := NewCatalog(src, nil, 0, nil)

	_, err := cat.List(context.Background(), models.CategoryEquity, &models.ListQuery{Page: 1, PageSize: 10})
	assert.Error(t, err)
}

func TestCatalogDetailNotFound(t *testing.T) {
	src := &fakeMarketData{equities: equityFixture(2)}
	cat := NewCatalog(src, nil, 0, nil)

	_, err := cat.Detail(context.Background(), "nope")
	assert.Error(t, err)
}

func TestCatalogDetailFindsAcrossCategories(t *testing.T) {
	src := &fakeMarketData{
		equities: equityFixture(2),
		funds: []models.Fund{
			{Instrument: models.Instrument{Code: "510050", Name: "50ETF"}, FundType: "ETF"},
		},
	}
	cat := NewCatalog(src, nil, 0, nil)

	row, err := cat.Detail(context.Background(), "510050")
	require.NoError(t, err)
	assert.Equal(t, "50ETF", row.Name)
	assert.Equal(t, "ETF", row.FundType)
}
