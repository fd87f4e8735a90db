package usecase

import (
	"context"

	"QuantDesk/internal/domain/models"
	drepo "QuantDesk/internal/domain/repository"
	xhttp "QuantDesk/pkg/http"
	applogger "QuantDesk/pkg/logger"
	"QuantDesk/pkg/util"
)

const defaultInitialCapital = 100000

// Orchestrator composes strategy runs from a selection of tickers, an
// inclusive date range, and analyst presets, and forwards them to the
// remote strategy service.
type Orchestrator struct {
	runner        drepo.StrategyRunner
	logger        *applogger.Logger
	modelName     string
	modelProvider string
}

// NewOrchestrator creates the analysis orchestrator.
func NewOrchestrator(runner drepo.StrategyRunner, modelName, modelProvider string, logger *applogger.Logger) *Orchestrator {
	return &Orchestrator{
		runner:        runner,
		logger:        logger,
		modelName:     modelName,
		modelProvider: modelProvider,
	}
}

// Compose validates a run request and builds the remote payload.
// Messages are written for the person staring at the submit button, not
// for a log file.
func (o *Orchestrator) Compose(req *models.RunRequest) (*models.AnalysisRequest, error) {
	if len(req.Tickers) == 0 {
		return nil, xhttp.BadRequestError("select at least one instrument before running")
	}
	if req.StartDate == "" || req.EndDate == "" {
		return nil, xhttp.BadRequestError("please pick both a start and an end date")
	}
	if !util.ValidDayRange(req.StartDate, req.EndDate) {
		return nil, xhttp.BadRequestError("dates must be YYYY-MM-DD with start no later than end")
	}

	analysts, err := normalizeAnalysts(req.SelectedAnalysts)
	if err != nil {
		return nil, err
	}

	capital := req.InitialCapital
	if capital <= 0 {
		capital = defaultInitialCapital
	}

	portfolio := req.Portfolio
	if len(portfolio) == 0 {
		portfolio = equalWeights(req.Tickers)
	}

	out := &models.AnalysisRequest{
		Tickers:          req.Tickers,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		InitialCapital:   capital,
		Portfolio:        portfolio,
		SelectedAnalysts: analysts,
		ModelName:        req.ModelName,
		ModelProvider:    req.ModelProvider,
	}
	if out.ModelName == "" {
		out.ModelName = o.modelName
	}
	if out.ModelProvider == "" {
		out.ModelProvider = o.modelProvider
	}
	return out, nil
}

// RunBacktest composes the request and runs the simulation operation.
func (o *Orchestrator) RunBacktest(ctx context.Context, req *models.RunRequest) (*models.AnalysisResponse, error) {
	payload, err := o.Compose(req)
	if err != nil {
		return nil, err
	}
	o.logRun("backtest", payload)
	return o.runner.Backtest(ctx, payload)
}

// RunAnalysis composes the request and runs the analysis-only
// operation. The response carries null backtest metrics.
func (o *Orchestrator) RunAnalysis(ctx context.Context, req *models.RunRequest) (*models.AnalysisResponse, error) {
	payload, err := o.Compose(req)
	if err != nil {
		return nil, err
	}
	o.logRun("analysis", payload)
	return o.runner.Analyze(ctx, payload)
}

func (o *Orchestrator) logRun(op string, p *models.AnalysisRequest) {
	if o.logger == nil {
		return
	}
	o.logger.Info("strategy run",
		applogger.String("operation", op),
		applogger.Strings("tickers", p.Tickers),
		applogger.String("start", p.StartDate),
		applogger.String("end", p.EndDate),
		applogger.String("model", p.ModelName))
}

// normalizeAnalysts validates the preset IDs and forces the pinned
// analyst in, preserving the caller's order.
func normalizeAnalysts(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids)+1)
	seen := make(map[string]struct{}, len(ids)+1)
	for _, id := range ids {
		if !models.KnownAnalyst(id) {
			return nil, xhttp.BadRequestErrorf("unknown analyst %q", id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if _, ok := seen[models.PinnedAnalystID]; !ok {
		out = append(out, models.PinnedAnalystID)
	}
	return out, nil
}

// equalWeights splits the portfolio evenly across tickers.
func equalWeights(tickers []string) map[string]float64 {
	w := 1.0 / float64(len(tickers))
	out := make(map[string]float64, len(tickers))
	for _, t := range tickers {
		out[t] = w
	}
	return out
}
