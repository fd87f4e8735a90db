package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"QuantDesk/internal/domain/models"
)

func newTestExplorer(t *testing.T, src *fakeMarketData, onChange func([]string)) *Explorer {
	t.Helper()
	cat := NewCatalog(src, nil, 0, nil)
	return NewExplorer("sess-1", cat, 10, nil, onChange)
}

func TestExplorerSwitchCategoryResetsFiltersAndPage(t *testing.T) {
	src := &fakeMarketData{
		equities: equityFixture(25),
		funds: []models.Fund{
			{Instrument: models.Instrument{Code: "510050", Name: "50ETF"}},
		},
	}
	e := newTestExplorer(t, src, nil)

	e.SetFilters(models.FilterState{Market: "主板", Search: "股票"})
	e.View(context.Background())
	require.True(t, e.NextPage())

	e.SwitchCategory(models.CategoryFund)
	v := e.View(context.Background())

	assert.Equal(t, "fund", v.Category)
	assert.Equal(t, models.FilterState{}, v.Filters)
	assert.Equal(t, 1, v.Page)
	assert.Equal(t, 1, v.Total)
}

func TestExplorerSwitchToActiveCategoryKeepsState(t *testing.T) {
	src := &fakeMarketData{equities: equityFixture(25)}
	e := newTestExplorer(t, src, nil)

	e.SetFilters(models.FilterState{Market: "主板"})
	e.View(context.Background())
	require.True(t, e.NextPage())

	e.SwitchCategory(models.CategoryEquity)
	v := e.View(context.Background())

	assert.Equal(t, 2, v.Page)
	assert.Equal(t, "主板", v.Filters.Market)
}

func TestExplorerPaginationClamps(t *testing.T) {
	src := &fakeMarketData{equities: equityFixture(25)}
	e := newTestExplorer(t, src, nil)

	// no fetch yet, total unknown
	assert.False(t, e.NextPage())
	assert.False(t, e.PrevPage())

	e.View(context.Background())
	assert.True(t, e.NextPage())
	assert.True(t, e.NextPage())

	e.View(context.Background())
	assert.False(t, e.NextPage())

	assert.True(t, e.PrevPage())
	assert.True(t, e.PrevPage())
	assert.False(t, e.PrevPage())
}

func TestExplorerSetFiltersResetsPage(t *testing.T) {
	src := &fakeMarketData{equities: equityFixture(25)}
	e := newTestExplorer(t, src, nil)

	e.View(context.Background())
	require.True(t, e.NextPage())

	e.SetFilters(models.FilterState{Market: "主板"})
	v := e.View(context.Background())
	assert.Equal(t, 1, v.Page)
}

func TestExplorerSearchRefinesFetchedPageOnly(t *testing.T) {
	src := &fakeMarketData{equities: []models.Instrument{
		{Code: "600519", Name: "贵州茅台"},
		{Code: "000858", Name: "五粮液"},
		{Code: "AAPL", Name: "Apple Inc"},
	}}
	e := newTestExplorer(t, src, nil)

	e.SetFilters(models.FilterState{Search: "apple"})
	v := e.View(context.Background())

	// total reflects the unrefined page, search narrows rows locally
	assert.Equal(t, 3, v.Total)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "AAPL", v.Rows[0].Code)
}

func TestExplorerSelectionNotifies(t *testing.T) {
	var mu sync.Mutex
	var got [][]string
	src := &fakeMarketData{equities: equityFixture(3)}
	e := newTestExplorer(t, src, func(codes []string) {
		mu.Lock()
		got = append(got, codes)
		mu.Unlock()
	})

	e.Select("600500")
	e.Select("600501")
	e.Select("600500") // already selected, no notification
	e.Deselect("600500")
	e.ClearSelection()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 4)
	assert.Equal(t, []string{"600500"}, got[0])
	assert.Equal(t, []string{"600500", "600501"}, got[1])
	assert.Equal(t, []string{"600501"}, got[2])
	assert.Empty(t, got[3])
}

func TestExplorerStaleFetchDiscarded(t *testing.T) {
	gate := make(chan struct{})
	src := &fakeMarketData{equities: equityFixture(5), gate: gate}
	e := newTestExplorer(t, src, nil)

	first := make(chan *models.ExplorerView, 1)
	go func() {
		first <- e.View(context.Background())
	}()

	// let the first fetch start, then supersede it
	time.Sleep(20 * time.Millisecond)
	second := make(chan *models.ExplorerView, 1)
	go func() {
		second <- e.View(context.Background())
	}()
	time.Sleep(20 * time.Millisecond)

	// release both fetches; only the newer one may land
	close(gate)

	v1 := <-first
	v2 := <-second

	assert.True(t, v1.Stale || v2.Stale)
	assert.False(t, v1.Stale && v2.Stale, "at least one fetch must land")
}

func TestExplorerFetchFailureKeepsPriorView(t *testing.T) {
	src := &fakeMarketData{equities: equityFixture(5)}
	e := newTestExplorer(t, src, nil)

	v := e.View(context.Background())
	require.False(t, v.Stale)
	require.Equal(t, 5, v.Total)

	src.err = assert.AnError
	src.equities = nil
	// the catalog falls back to its last good snapshot, so the view
	// still renders the previous rows
	v = e.View(context.Background())
	assert.Equal(t, 5, v.Total)
}
