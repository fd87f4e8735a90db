package repository

import (
	"context"

	"QuantDesk/internal/domain/models"
)

// MarketData is the upstream catalog source. Listings come back fully
// enriched (latest quote merged in); implementations own rate limiting
// and upstream failure classification.
type MarketData interface {
	Equities(ctx context.Context) ([]models.Instrument, error)
	Funds(ctx context.Context) ([]models.Fund, error)
	Futures(ctx context.Context) ([]models.Future, error)
	Options(ctx context.Context) ([]models.Option, error)
	Quote(ctx context.Context, code string) (price, change float64, err error)
}

// StrategyRunner invokes the remote AI strategy service.
type StrategyRunner interface {
	Backtest(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResponse, error)
	Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResponse, error)
}

// TokenStore holds the bearer token attached to strategy service calls.
// Clear is invoked when the service answers 401.
type TokenStore interface {
	Token() (string, error)
	Set(token string) error
	Clear() error
}

// Metrics records operational counters and latencies.
type Metrics interface {
	RecordCatalogFetch(category string, rows int)
	RecordError(kind string)
	RecordRunLatency(op string, seconds float64)
}
