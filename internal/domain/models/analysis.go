package models

// AnalysisRequest is the payload sent to the strategy service for both
// the backtest and the analysis operations.
type AnalysisRequest struct {
	Tickers          []string           `json:"tickers"`
	StartDate        string             `json:"start_date"`
	EndDate          string             `json:"end_date"`
	InitialCapital   float64            `json:"initial_capital"`
	Portfolio        map[string]float64 `json:"portfolio"`
	SelectedAnalysts []string           `json:"selected_analysts"`
	ModelName        string             `json:"model_name"`
	ModelProvider    string             `json:"model_provider"`
}

// TickerDecision is the per-ticker outcome of an analysis run.
type TickerDecision struct {
	Action     string  `json:"action"`
	Quantity   float64 `json:"quantity"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// AnalystSignal is one analyst's signal for one ticker.
type AnalystSignal struct {
	Signal     string  `json:"signal"`
	Confidence float64 `json:"confidence"`
}

// AnalysisResult holds decisions and the raw analyst signals keyed by
// analyst, then by ticker.
type AnalysisResult struct {
	Decisions      map[string]TickerDecision           `json:"decisions"`
	AnalystSignals map[string]map[string]AnalystSignal `json:"analyst_signals"`
}

// EquityPoint is one sample of the simulated portfolio value series.
type EquityPoint struct {
	Date           string  `json:"date"`
	PortfolioValue float64 `json:"portfolio_value"`
}

// BacktestMetrics carries the summary statistics of a backtest run.
// Pointers stay nil for the analysis-only operation, which returns no
// simulation.
type BacktestMetrics struct {
	SharpeRatio    *float64      `json:"sharpe_ratio"`
	SortinoRatio   *float64      `json:"sortino_ratio"`
	MaxDrawdown    *float64      `json:"max_drawdown"`
	LongShortRatio *float64      `json:"long_short_ratio"`
	GrossExposure  *float64      `json:"gross_exposure"`
	NetExposure    *float64      `json:"net_exposure"`
	EquityCurve    []EquityPoint `json:"equity_curve,omitempty"`
}

// AnalysisResponse is the combined result of either remote operation.
type AnalysisResponse struct {
	Analysis AnalysisResult  `json:"analysis"`
	Backtest BacktestMetrics `json:"backtest"`
}

// Analyst is a selectable analyst preset. A pinned analyst is always
// part of a run and cannot be deselected.
type Analyst struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Pinned bool   `json:"pinned"`
}

// PinnedAnalystID is included in every run regardless of selection.
const PinnedAnalystID = "portfolio_manager"

// AnalystPresets lists the available analysts in display order.
func AnalystPresets() []Analyst {
	return []Analyst{
		{ID: "warren_buffett", Name: "Warren Buffett"},
		{ID: "charlie_munger", Name: "Charlie Munger"},
		{ID: "ben_graham", Name: "Ben Graham"},
		{ID: "bill_ackman", Name: "Bill Ackman"},
		{ID: "cathie_wood", Name: "Cathie Wood"},
		{ID: "valuation", Name: "Valuation"},
		{ID: "risk_manager", Name: "Risk Manager"},
		{ID: PinnedAnalystID, Name: "Portfolio Manager", Pinned: true},
	}
}

// KnownAnalyst reports whether id names a preset.
func KnownAnalyst(id string) bool {
	for _, a := range AnalystPresets() {
		if a.ID == id {
			return true
		}
	}
	return false
}
