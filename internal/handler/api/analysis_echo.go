package api

import (
    "context"
    "time"

    models "QuantDesk/internal/domain/models"
    "QuantDesk/internal/service/metrics"
    "QuantDesk/internal/usecase"
    xhttp "QuantDesk/pkg/http"
    xlogger "QuantDesk/pkg/logger"

    "github.com/labstack/echo/v4"
)

// AnalysisHandler exposes the two strategy operations and the analyst
// preset listing.
type AnalysisHandler struct {
	logger *xlogger.Logger
	orch   *usecase.Orchestrator
}

func NewAnalysisHandler(logger *xlogger.Logger, orch *usecase.Orchestrator) *AnalysisHandler {
	metrics.Register()
	return &AnalysisHandler{logger: logger, orch: orch}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/backtest", h.Backtest)
	g.POST("/analysis", h.Analysis)
	g.GET("/analysts", h.Analysts)
}

// Backtest runs the full simulation operation.
func (h *AnalysisHandler) Backtest(c echo.Context) error {
	return h.run(c, "backtest", h.orch.RunBacktest)
}

// Analysis runs the analysis-only operation.
func (h *AnalysisHandler) Analysis(c echo.Context) error {
	return h.run(c, "analysis", h.orch.RunAnalysis)
}

// Analysts lists the available presets with the pinned flag.
func (h *AnalysisHandler) Analysts(c echo.Context) error {
	return xhttp.SuccessResponse(c, models.AnalystPresets())
}

type runFunc func(ctx context.Context, req *models.RunRequest) (*models.AnalysisResponse, error)

func (h *AnalysisHandler) run(c echo.Context, op string, invoke runFunc) error {
	start := time.Now()
	defer func() {
		metrics.APILatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	req := &models.RunRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := invoke(c.Request().Context(), req)
	if err != nil {
		metrics.APIErrors.WithLabelValues(op).Inc()
		h.logger.Error("strategy run error",
			xlogger.String("operation", op),
			xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
