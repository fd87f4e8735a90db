package models

// FilterState holds the transient filter fields of one explorer tab.
// The zero value means no filters; switching category always resets to
// it.
type FilterState struct {
	Search       string `json:"search,omitempty"`
	Market       string `json:"market,omitempty"`
	Industry     string `json:"industry,omitempty"`
	FundType     string `json:"fund_type,omitempty"`
	FundCategory string `json:"fund_category,omitempty"`
	Exchange     string `json:"exchange,omitempty"`
	Underlying   string `json:"underlying,omitempty"`
	OptionType   string `json:"option_type,omitempty"`
}

// Query converts the filter state to a catalog list query. The search
// text is deliberately left out: it refines the fetched page locally,
// it does not reach the catalog.
func (f FilterState) Query(page, pageSize int) *ListQuery {
	return &ListQuery{
		Page:         page,
		PageSize:     pageSize,
		Market:       f.Market,
		Industry:     f.Industry,
		FundType:     f.FundType,
		FundCategory: f.FundCategory,
		Exchange:     f.Exchange,
		Underlying:   f.Underlying,
		OptionType:   f.OptionType,
	}
}

// ExplorerView is the rendered state of one explorer session: the
// active tab, its page of rows after local refinement, pagination
// flags, and the selection.
type ExplorerView struct {
	SessionID string       `json:"session_id"`
	Category  string       `json:"category"`
	Filters   FilterState  `json:"filters"`
	Page      int          `json:"page"`
	PageSize  int          `json:"page_size"`
	Total     int          `json:"total"`
	HasNext   bool         `json:"has_next"`
	HasPrev   bool         `json:"has_prev"`
	Rows      []CatalogRow `json:"rows"`
	Selected  []string     `json:"selected"`
	Stale     bool         `json:"stale,omitempty"`
}
