package strategy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"QuantDesk/internal/domain/models"
)

func analysisRequest() *models.AnalysisRequest {
	return &models.AnalysisRequest{
		Tickers:          []string{"600519"},
		StartDate:        "2025-01-01",
		EndDate:          "2025-06-30",
		InitialCapital:   100000,
		Portfolio:        map[string]float64{"600519": 1},
		SelectedAnalysts: []string{"portfolio_manager"},
		ModelName:        "bot-20250329163710-8zcqm",
		ModelProvider:    "OpenAI",
	}
}

func TestClientBacktestParsesResponse(t *testing.T) {
	var gotPath string
	var gotBody models.AnalysisRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		sharpe := 1.42
		_ = json.NewEncoder(w).Encode(models.AnalysisResponse{
			Analysis: models.AnalysisResult{
				Decisions: map[string]models.TickerDecision{
					"600519": {Action: "buy", Quantity: 10, Confidence: 0.8},
				},
			},
			Backtest: models.BacktestMetrics{SharpeRatio: &sharpe},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, nil)
	resp, err := c.Backtest(context.Background(), analysisRequest())
	require.NoError(t, err)

	assert.Equal(t, "/backtest", gotPath)
	assert.Equal(t, []string{"600519"}, gotBody.Tickers)
	assert.Equal(t, "buy", resp.Analysis.Decisions["600519"].Action)
	require.NotNil(t, resp.Backtest.SharpeRatio)
	assert.Equal(t, 1.42, *resp.Backtest.SharpeRatio)
}

func TestClientAnalyzeReturnsNullMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analysis", r.URL.Path)
		_, _ = w.Write([]byte(`{"analysis":{"decisions":{},"analyst_signals":{}},"backtest":{"sharpe_ratio":null,"sortino_ratio":null,"max_drawdown":null,"long_short_ratio":null,"gross_exposure":null,"net_exposure":null}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, nil)
	resp, err := c.Analyze(context.Background(), analysisRequest())
	require.NoError(t, err)

	assert.Nil(t, resp.Backtest.SharpeRatio)
	assert.Nil(t, resp.Backtest.MaxDrawdown)
	assert.Empty(t, resp.Backtest.EquityCurve)
}

func TestClientAttachesBearerToken(t *testing.T) {
	tokens := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, tokens.Set("secret-token"))

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"analysis":{},"backtest":{}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, tokens)
	_, err := c.Backtest(context.Background(), analysisRequest())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestClientClearsTokenOnUnauthorized(t *testing.T) {
	tokens := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, tokens.Set("expired-token"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, tokens)
	_, err := c.Backtest(context.Background(), analysisRequest())
	require.Error(t, err)

	token, terr := tokens.Token()
	require.NoError(t, terr)
	assert.Empty(t, token)
}

func TestClientKeepsTokenOnServerError(t *testing.T) {
	tokens := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, tokens.Set("good-token"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, tokens)
	_, err := c.Backtest(context.Background(), analysisRequest())
	require.Error(t, err)

	token, terr := tokens.Token()
	require.NoError(t, terr)
	assert.Equal(t, "good-token", token)
}

func TestFileTokenStoreMissingFile(t *testing.T) {
	tokens := NewFileTokenStore(filepath.Join(t.TempDir(), "absent"))

	token, err := tokens.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	// clearing an absent token is fine
	assert.NoError(t, tokens.Clear())
}
