package usecase

import (
	"context"
	"sync"

	"QuantDesk/internal/domain/models"
	applogger "QuantDesk/pkg/logger"
)

// Explorer is the server-side state of one instrument selection widget:
// an active category tab, that tab's filters and page, and the
// selection set. All mutations serialize on one mutex; fetches carry a
// monotonically increasing token so a superseded response can never
// overwrite a newer view.
type Explorer struct {
	id       string
	catalog  *Catalog
	logger   *applogger.Logger
	onChange func(codes []string)

	mu        sync.Mutex
	category  models.Category
	filters   models.FilterState
	page      int
	pageSize  int
	selection *models.Selection
	token     uint64
	lastTotal int
	view      *models.ExplorerView
}

// NewExplorer creates a session showing the equity tab on page 1.
// onChange receives a copy of the selection codes after every selection
// mutation; it may be nil.
func NewExplorer(id string, catalog *Catalog, pageSize int, logger *applogger.Logger, onChange func([]string)) *Explorer {
	if pageSize < 1 {
		pageSize = 10
	}
	return &Explorer{
		id:        id,
		catalog:   catalog,
		logger:    logger,
		onChange:  onChange,
		category:  models.CategoryEquity,
		page:      1,
		pageSize:  pageSize,
		selection: models.NewSelection(),
	}
}

// ID returns the session identifier.
func (e *Explorer) ID() string { return e.id }

// SwitchCategory activates a tab. Filters clear and the page resets to
// 1 so one category's filters never leak into another's schema.
// Switching to the already-active tab is a no-op.
func (e *Explorer) SwitchCategory(cat models.Category) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cat == e.category {
		return
	}
	e.category = cat
	e.filters = models.FilterState{}
	e.page = 1
	e.lastTotal = 0
}

// SetFilters replaces the active tab's filters and resets to page 1.
func (e *Explorer) SetFilters(f models.FilterState) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.filters = f
	e.page = 1
}

// NextPage advances one page unless the current page is the last.
// Returns whether the page moved.
func (e *Explorer) NextPage() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.page*e.pageSize >= e.lastTotal {
		return false
	}
	e.page++
	return true
}

// PrevPage steps back one page unless already at page 1. Returns
// whether the page moved.
func (e *Explorer) PrevPage() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.page <= 1 {
		return false
	}
	e.page--
	return true
}

// Select adds a code to the selection. Adding a present code is a
// no-op and does not notify.
func (e *Explorer) Select(code string) {
	e.mu.Lock()
	changed := e.selection.Add(code)
	codes := e.selection.Codes()
	e.mu.Unlock()

	if changed {
		e.notify(codes)
	}
}

// Deselect removes a code from the selection.
func (e *Explorer) Deselect(code string) {
	e.mu.Lock()
	changed := e.selection.Remove(code)
	codes := e.selection.Codes()
	e.mu.Unlock()

	if changed {
		e.notify(codes)
	}
}

// ClearSelection empties the selection.
func (e *Explorer) ClearSelection() {
	e.mu.Lock()
	e.selection.Clear()
	e.mu.Unlock()

	e.notify(nil)
}

// Selected returns a copy of the selected codes.
func (e *Explorer) Selected() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection.Codes()
}

func (e *Explorer) notify(codes []string) {
	if e.onChange != nil {
		e.onChange(codes)
	}
}

// View fetches the active page and renders the session. A fetch that
// finishes after a newer one started is discarded; a failed fetch logs
// and returns the previous view untouched.
func (e *Explorer) View(ctx context.Context) *models.ExplorerView {
	e.mu.Lock()
	e.token++
	tok := e.token
	cat := e.category
	q := e.filters.Query(e.page, e.pageSize)
	search := e.filters.Search
	e.mu.Unlock()

	page, err := e.catalog.List(ctx, cat, q)

	e.mu.Lock()
	defer e.mu.Unlock()

	if tok != e.token {
		// superseded by a newer request
		return e.staleView()
	}
	if err != nil {
		if e.logger != nil {
			e.logger.Error("explorer fetch failed",
				applogger.String("session", e.id),
				applogger.String("category", cat.String()),
				applogger.Error(err))
		}
		return e.staleView()
	}

	rows := page.Data
	if search != "" {
		// refine over the fetched page only, never the full catalog
		refined := make([]models.CatalogRow, 0, len(rows))
		for _, r := range rows {
			if MatchesSearch(r.Code, r.Name, search) {
				refined = append(refined, r)
			}
		}
		rows = refined
	}

	e.lastTotal = page.Total
	e.view = &models.ExplorerView{
		SessionID: e.id,
		Category:  cat.String(),
		Filters:   e.filters,
		Page:      page.Page,
		PageSize:  page.PageSize,
		Total:     page.Total,
		HasNext:   page.HasNext(),
		HasPrev:   page.HasPrev(),
		Rows:      rows,
		Selected:  e.selection.Codes(),
	}
	return e.view
}

// staleView returns the last rendered view, marked stale, or an empty
// placeholder view when nothing rendered yet. Caller holds the lock.
func (e *Explorer) staleView() *models.ExplorerView {
	if e.view != nil {
		v := *e.view
		v.Stale = true
		v.Selected = e.selection.Codes()
		return &v
	}
	return &models.ExplorerView{
		SessionID: e.id,
		Category:  e.category.String(),
		Filters:   e.filters,
		Page:      e.page,
		PageSize:  e.pageSize,
		Rows:      []models.CatalogRow{},
		Selected:  e.selection.Codes(),
		Stale:     true,
	}
}
