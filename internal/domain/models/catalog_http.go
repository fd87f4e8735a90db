package models

// Requests for catalog and explorer HTTP endpoints. Defined in domain for
// consistency and reuse.

// ListQuery carries the pagination and filter parameters of the catalog
// listing endpoints. Category-specific fields are ignored by the other
// categories.
type ListQuery struct {
	Page     int    `query:"page" json:"page" default:"1" validate:"gte=1"`
	PageSize int    `query:"page_size" json:"page_size" default:"10" validate:"gte=1,lte=100"`
	Search   string `query:"search" json:"search"`

	// equity
	Market   string `query:"market" json:"market"`
	Industry string `query:"industry" json:"industry"`

	// fund
	FundType     string `query:"fund_type" json:"fund_type"`
	FundCategory string `query:"fund_category" json:"fund_category"`

	// future / option
	Exchange   string `query:"exchange" json:"exchange"`
	Underlying string `query:"underlying" json:"underlying"`

	// option
	OptionType string `query:"option_type" json:"option_type" validate:"omitempty,oneof=C P"`
}

// HasFilters reports whether any non-pagination parameter is set.
func (q *ListQuery) HasFilters() bool {
	return q.Search != "" || q.Market != "" || q.Industry != "" ||
		q.FundType != "" || q.FundCategory != "" ||
		q.Exchange != "" || q.Underlying != "" || q.OptionType != ""
}

// SwitchCategoryRequest selects the active explorer tab.
type SwitchCategoryRequest struct {
	Category string `json:"category" validate:"required,oneof=stock fund future option"`
}

// UpdateFiltersRequest replaces the active tab's filter fields. Page
// resets to 1 on any change.
type UpdateFiltersRequest struct {
	Search       string `json:"search"`
	Market       string `json:"market"`
	Industry     string `json:"industry"`
	FundType     string `json:"fund_type"`
	FundCategory string `json:"fund_category"`
	Exchange     string `json:"exchange"`
	Underlying   string `json:"underlying"`
	OptionType   string `json:"option_type" validate:"omitempty,oneof=C P"`
}

// SelectRequest adds one instrument code to the session selection.
type SelectRequest struct {
	Code string `json:"code" validate:"required"`
}

// RunRequest is the dashboard-facing payload of the backtest and
// analysis operations. Date presence and ordering are checked by the
// orchestrator so the caller gets a prompt-style message, not a bare
// validation error.
type RunRequest struct {
	Tickers          []string           `json:"tickers"`
	StartDate        string             `json:"start_date"`
	EndDate          string             `json:"end_date"`
	InitialCapital   float64            `json:"initial_capital" default:"100000"`
	Portfolio        map[string]float64 `json:"portfolio"`
	SelectedAnalysts []string           `json:"selected_analysts" validate:"omitempty,dive,required"`
	ModelName        string             `json:"model_name"`
	ModelProvider    string             `json:"model_provider"`
}
