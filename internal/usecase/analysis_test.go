package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"QuantDesk/internal/domain/models"
)

type fakeRunner struct {
	lastOp  string
	lastReq *models.AnalysisRequest
	resp    *models.AnalysisResponse
	err     error
}

func (f *fakeRunner) Backtest(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResponse, error) {
	f.lastOp, f.lastReq = "backtest", req
	return f.resp, f.err
}

func (f *fakeRunner) Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResponse, error) {
	f.lastOp, f.lastReq = "analysis", req
	return f.resp, f.err
}

func newTestOrchestrator(runner *fakeRunner) *Orchestrator {
	return NewOrchestrator(runner, "bot-20250329163710-8zcqm", "OpenAI", nil)
}

func validRun() *models.RunRequest {
	return &models.RunRequest{
		Tickers:   []string{"600519", "000858"},
		StartDate: "2025-01-01",
		EndDate:   "2025-06-30",
	}
}

func TestComposeRejectsEmptySelection(t *testing.T) {
	o := newTestOrchestrator(&fakeRunner{})

	req := validRun()
	req.Tickers = nil
	_, err := o.Compose(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select at least one instrument")
}

func TestComposeRejectsMissingDates(t *testing.T) {
	o := newTestOrchestrator(&fakeRunner{})

	req := validRun()
	req.EndDate = ""
	_, err := o.Compose(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start and an end date")
}

func TestComposeRejectsInvertedRange(t *testing.T) {
	o := newTestOrchestrator(&fakeRunner{})

	req := validRun()
	req.StartDate, req.EndDate = req.EndDate, req.StartDate
	_, err := o.Compose(req)
	assert.Error(t, err)
}

func TestComposeAcceptsSingleDayRange(t *testing.T) {
	o := newTestOrchestrator(&fakeRunner{})

	req := validRun()
	req.EndDate = req.StartDate
	_, err := o.Compose(req)
	assert.NoError(t, err)
}

func TestComposeRejectsUnknownAnalyst(t *testing.T) {
	o := newTestOrchestrator(&fakeRunner{})

	req := validRun()
	req.SelectedAnalysts = []string{"warren_buffett", "jim_cramer"}
	_, err := o.Compose(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jim_cramer")
}

func TestComposeForcesPinnedAnalyst(t *testing.T) {
	o := newTestOrchestrator(&fakeRunner{})

	req := validRun()
	req.SelectedAnalysts = []string{"warren_buffett", "ben_graham"}
	payload, err := o.Compose(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"warren_buffett", "ben_graham", models.PinnedAnalystID}, payload.SelectedAnalysts)

	// already selected: kept in place, not appended again
	req.SelectedAnalysts = []string{models.PinnedAnalystID, "valuation"}
	payload, err = o.Compose(req)
	require.NoError(t, err)
	assert.Equal(t, []string{models.PinnedAnalystID, "valuation"}, payload.SelectedAnalysts)
}

func TestComposeDefaults(t *testing.T) {
	o := newTestOrchestrator(&fakeRunner{})

	payload, err := o.Compose(validRun())
	require.NoError(t, err)

	assert.Equal(t, float64(100000), payload.InitialCapital)
	assert.Equal(t, "bot-20250329163710-8zcqm", payload.ModelName)
	assert.Equal(t, "OpenAI", payload.ModelProvider)
	assert.InDelta(t, 0.5, payload.Portfolio["600519"], 1e-9)
	assert.InDelta(t, 0.5, payload.Portfolio["000858"], 1e-9)
}

func TestComposeKeepsExplicitValues(t *testing.T) {
	o := newTestOrchestrator(&fakeRunner{})

	req := validRun()
	req.InitialCapital = 250000
	req.ModelName = "custom-model"
	req.ModelProvider = "Anthropic"
	req.Portfolio = map[string]float64{"600519": 0.7, "000858": 0.3}

	payload, err := o.Compose(req)
	require.NoError(t, err)
	assert.Equal(t, float64(250000), payload.InitialCapital)
	assert.Equal(t, "custom-model", payload.ModelName)
	assert.Equal(t, "Anthropic", payload.ModelProvider)
	assert.Equal(t, 0.7, payload.Portfolio["600519"])
}

func TestRunBacktestForwardsToRunner(t *testing.T) {
	runner := &fakeRunner{resp: &models.AnalysisResponse{}}
	o := newTestOrchestrator(runner)

	_, err := o.RunBacktest(context.Background(), validRun())
	require.NoError(t, err)
	assert.Equal(t, "backtest", runner.lastOp)
	require.NotNil(t, runner.lastReq)
	assert.Contains(t, runner.lastReq.SelectedAnalysts, models.PinnedAnalystID)
}

func TestRunAnalysisForwardsToRunner(t *testing.T) {
	runner := &fakeRunner{resp: &models.AnalysisResponse{}}
	o := newTestOrchestrator(runner)

	_, err := o.RunAnalysis(context.Background(), validRun())
	require.NoError(t, err)
	assert.Equal(t, "analysis", runner.lastOp)
}

func TestRunBacktestRejectsBadRequestBeforeRunner(t *testing.T) {
	runner := &fakeRunner{}
	o := newTestOrchestrator(runner)

	req := validRun()
	req.Tickers = nil
	_, err := o.RunBacktest(context.Background(), req)
	require.Error(t, err)
	assert.Empty(t, runner.lastOp)
}
