package strategy

import (
	"context"
	"net/http"
	"time"

	"QuantDesk/internal/domain/models"
	drepo "QuantDesk/internal/domain/repository"
	xhttp "QuantDesk/pkg/http"
	applogger "QuantDesk/pkg/logger"
)

// Client calls the remote AI strategy service. Both operations share
// the request shape; the analysis operation returns null backtest
// metrics by contract.
type Client struct {
	baseURL string
	http    *xhttp.Client
	tokens  drepo.TokenStore
	logger  *applogger.Logger
	metrics drepo.Metrics
}

// Option configures Client.
type Option func(*Client)

// New creates a strategy service client.
func New(baseURL string, timeout time.Duration, tokens drepo.TokenStore, opts ...Option) drepo.StrategyRunner {
	c := &Client{
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithLogger sets the logger.
func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m drepo.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// Backtest runs the full simulation operation.
func (c *Client) Backtest(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResponse, error) {
	return c.post(ctx, "backtest", req)
}

// Analyze runs the analysis-only operation.
func (c *Client) Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResponse, error) {
	return c.post(ctx, "analysis", req)
}

func (c *Client) post(ctx context.Context, op string, req *models.AnalysisRequest) (*models.AnalysisResponse, error) {
	start := time.Now()

	headers := map[string]string{"Content-Type": "application/json"}
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil && c.logger != nil {
			c.logger.Warn("token read failed", applogger.Error(err))
		}
		if token != "" {
			headers["Authorization"] = "Bearer " + token
		}
	}

	var resp models.AnalysisResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     c.baseURL + "/" + op,
		Headers: headers,
		Body:    req,
	}, &resp)

	if c.metrics != nil {
		c.metrics.RecordRunLatency(op, time.Since(start).Seconds())
	}

	if err != nil {
		status := xhttp.StatusOf(err)
		if status == http.StatusUnauthorized && c.tokens != nil {
			// session token rejected; drop it so the next call starts clean
			if cerr := c.tokens.Clear(); cerr != nil && c.logger != nil {
				c.logger.Warn("token clear failed", applogger.Error(cerr))
			}
		}
		if c.metrics != nil {
			c.metrics.RecordError("strategy_" + xhttp.ClassifyStatus(status))
		}
		if c.logger != nil {
			c.logger.Error("strategy run failed",
				applogger.String("operation", op),
				applogger.String("kind", xhttp.ClassifyStatus(status)),
				applogger.Error(err))
		}
		return nil, err
	}

	return &resp, nil
}
