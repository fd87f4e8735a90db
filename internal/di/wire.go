//go:build wireinject
// +build wireinject

package di

import (
	"QuantDesk/pkg/config"
	"QuantDesk/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Caches
		ProvideSnapshotCache,
		ProvideResponseCache,

		// Upstream clients
		ProvideMarketData,
		ProvideTokenStore,
		ProvideStrategyRunner,

		// Use cases
		ProvideCatalog,
		ProvideExplorerSessions,
		ProvideOrchestrator,

		// Background refresh
		ProvideQueue,
		ProvideRefreshJob,
		ProvideRefresher,

		// HTTP surface
		ProvideRouter,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
