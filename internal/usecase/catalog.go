package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"QuantDesk/internal/domain/models"
	drepo "QuantDesk/internal/domain/repository"
	pkgcache "QuantDesk/pkg/cache"
	xhttp "QuantDesk/pkg/http"
	applogger "QuantDesk/pkg/logger"
)

// Catalog serves filtered, paginated instrument listings from
// per-category snapshots. Snapshots come from the upstream source and
// are cached; a failed refresh logs and keeps serving the previous
// snapshot untouched.
type Catalog struct {
	source drepo.MarketData
	cache  pkgcache.Service
	ttl    time.Duration
	logger *applogger.Logger

	mu       sync.RWMutex
	lastGood map[models.Category][]models.CatalogRow
}

// NewCatalog creates the catalog service.
func NewCatalog(source drepo.MarketData, cache pkgcache.Service, snapshotTTL time.Duration, logger *applogger.Logger) *Catalog {
	if snapshotTTL <= 0 {
		snapshotTTL = 5 * time.Minute
	}
	return &Catalog{
		source:   source,
		cache:    cache,
		ttl:      snapshotTTL,
		logger:   logger,
		lastGood: make(map[models.Category][]models.CatalogRow),
	}
}

// List returns one page of the category's catalog after applying the
// query's filters. Total is counted after filtering, before paging.
func (c *Catalog) List(ctx context.Context, cat models.Category, q *models.ListQuery) (*models.InstrumentPage, error) {
	rows, err := c.snapshot(ctx, cat)
	if err != nil {
		return nil, err
	}

	filtered := filterRows(cat, rows, q)

	page, size := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	total := len(filtered)
	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	data := make([]models.CatalogRow, end-start)
	copy(data, filtered[start:end])

	return &models.InstrumentPage{
		Data:     data,
		Total:    total,
		Page:     page,
		PageSize: size,
	}, nil
}

// Detail returns one instrument by code with a live quote. Categories
// are searched in tab order; codes are only unique per category, so the
// first hit wins.
func (c *Catalog) Detail(ctx context.Context, code string) (*models.CatalogRow, error) {
	for _, cat := range models.Categories() {
		rows, err := c.snapshot(ctx, cat)
		if err != nil {
			continue
		}
		for i := range rows {
			if rows[i].Code != code {
				continue
			}
			row := rows[i]
			if price, change, err := c.source.Quote(ctx, code); err == nil {
				row.Price = price
				row.Change = change
			}
			return &row, nil
		}
	}
	return nil, xhttp.NotFoundErrorf("instrument %s not found", code)
}

// Refresh force-fetches the category's snapshot, bypassing the cache.
func (c *Catalog) Refresh(ctx context.Context, cat models.Category) error {
	rows, err := c.fetch(ctx, cat)
	if err != nil {
		return err
	}
	c.store(ctx, cat, rows)
	return nil
}

func (c *Catalog) snapshot(ctx context.Context, cat models.Category) ([]models.CatalogRow, error) {
	key := snapshotKey(cat)

	if c.cache != nil {
		var cached []models.CatalogRow
		if err := c.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	rows, err := c.fetch(ctx, cat)
	if err != nil {
		// keep showing what we had
		c.mu.RLock()
		prev, ok := c.lastGood[cat]
		c.mu.RUnlock()
		if ok {
			if c.logger != nil {
				c.logger.Error("catalog refresh failed, serving stale snapshot",
					applogger.String("category", cat.String()),
					applogger.Error(err))
			}
			return prev, nil
		}
		return nil, err
	}

	c.store(ctx, cat, rows)
	return rows, nil
}

func (c *Catalog) fetch(ctx context.Context, cat models.Category) ([]models.CatalogRow, error) {
	switch cat {
	case models.CategoryEquity:
		list, err := c.source.Equities(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]models.CatalogRow, 0, len(list))
		for _, e := range list {
			rows = append(rows, e.Row())
		}
		return rows, nil
	case models.CategoryFund:
		list, err := c.source.Funds(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]models.CatalogRow, 0, len(list))
		for _, f := range list {
			rows = append(rows, f.Row())
		}
		return rows, nil
	case models.CategoryFuture:
		list, err := c.source.Futures(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]models.CatalogRow, 0, len(list))
		for _, f := range list {
			rows = append(rows, f.Row())
		}
		return rows, nil
	case models.CategoryOption:
		list, err := c.source.Options(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]models.CatalogRow, 0, len(list))
		for _, o := range list {
			rows = append(rows, o.Row())
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("unknown category %v", cat)
	}
}

func (c *Catalog) store(ctx context.Context, cat models.Category, rows []models.CatalogRow) {
	c.mu.Lock()
	c.lastGood[cat] = rows
	c.mu.Unlock()

	if c.cache != nil {
		if err := c.cache.Set(ctx, snapshotKey(cat), rows, c.ttl); err != nil && c.logger != nil {
			c.logger.Warn("snapshot cache write failed",
				applogger.String("category", cat.String()),
				applogger.Error(err))
		}
	}
}

func snapshotKey(cat models.Category) string {
	return pkgcache.GenerateKey("catalog", cat.String())
}

// filterRows applies the category's filter schema, then the common
// search filter.
func filterRows(cat models.Category, rows []models.CatalogRow, q *models.ListQuery) []models.CatalogRow {
	out := make([]models.CatalogRow, 0, len(rows))
	for _, r := range rows {
		if !matchCategory(cat, r, q) {
			continue
		}
		if q.Search != "" && !MatchesSearch(r.Code, r.Name, q.Search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchCategory(cat models.Category, r models.CatalogRow, q *models.ListQuery) bool {
	switch cat {
	case models.CategoryEquity:
		if q.Market != "" && r.Market != q.Market {
			return false
		}
		if q.Industry != "" && r.Industry != q.Industry {
			return false
		}
	case models.CategoryFund:
		if q.FundType != "" && r.FundType != q.FundType {
			return false
		}
		if q.FundCategory != "" && r.FundCategory != q.FundCategory {
			return false
		}
	case models.CategoryFuture:
		if q.Exchange != "" && r.Exchange != q.Exchange {
			return false
		}
		// product filter: IF matches IF2406
		if q.Underlying != "" && !strings.HasPrefix(r.Symbol, q.Underlying) {
			return false
		}
	case models.CategoryOption:
		if q.Exchange != "" && r.Exchange != q.Exchange {
			return false
		}
		if q.OptionType != "" && r.OptionType != q.OptionType {
			return false
		}
		if q.Underlying != "" && r.Underlying != q.Underlying {
			return false
		}
	}
	return true
}

// MatchesSearch reports whether needle is a case-insensitive substring
// of code or name.
func MatchesSearch(code, name, needle string) bool {
	n := strings.ToLower(needle)
	return strings.Contains(strings.ToLower(code), n) ||
		strings.Contains(strings.ToLower(name), n)
}
