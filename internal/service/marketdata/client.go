package marketdata

import (
	"context"
	"fmt"
	"time"

	"QuantDesk/internal/domain/models"
	drepo "QuantDesk/internal/domain/repository"
	xhttp "QuantDesk/pkg/http"
	applogger "QuantDesk/pkg/logger"
	"QuantDesk/pkg/util"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Client implements MarketData against a tushare-style REST API: one
// endpoint, api_name dispatch, columnar {fields, items} payloads.
type Client struct {
	baseURL string
	token   string
	http    *xhttp.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	logger  *applogger.Logger
	metrics drepo.Metrics

	futureExchange string
	optionExchange string

	now func() time.Time
}

// Option configures Client.
type Option func(*Client)

// New creates a new market data client.
func New(baseURL, token string, timeout time.Duration, opts ...Option) drepo.MarketData {
	c := &Client{
		baseURL:        baseURL,
		token:          token,
		http:           xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter:        rate.NewLimiter(rate.Limit(8), 4),
		futureExchange: "CFFEX",
		optionExchange: "SSE",
		now:            time.Now,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "marketdata",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithRateLimit sets the upstream request budget.
func WithRateLimit(perSec float64, burst int) Option {
	return func(c *Client) {
		if perSec > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
		}
	}
}

// WithExchanges sets the default derivative exchanges.
func WithExchanges(future, option string) Option {
	return func(c *Client) {
		if future != "" {
			c.futureExchange = future
		}
		if option != "" {
			c.optionExchange = option
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m drepo.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

type apiRequest struct {
	APIName string            `json:"api_name"`
	Token   string            `json:"token"`
	Params  map[string]string `json:"params"`
	Fields  string            `json:"fields,omitempty"`
}

type apiResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Fields []string        `json:"fields"`
		Items  [][]interface{} `json:"items"`
	} `json:"data"`
}

// table is a columnar API payload with name-based cell access.
type table struct {
	cols  map[string]int
	items [][]interface{}
}

func (t *table) str(row int, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(t.items[row]) {
		return ""
	}
	if s, ok := t.items[row][i].(string); ok {
		return s
	}
	return ""
}

func (t *table) f64(row int, col string) float64 {
	i, ok := t.cols[col]
	if !ok || i >= len(t.items[row]) {
		return 0
	}
	if f, ok := t.items[row][i].(float64); ok {
		return f
	}
	return 0
}

func (t *table) len() int { return len(t.items) }

func (c *Client) call(ctx context.Context, apiName string, params map[string]string, fields string) (*table, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		var resp apiResponse
		err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodPost,
			URL:    c.baseURL,
			Body:   &apiRequest{APIName: apiName, Token: c.token, Params: params, Fields: fields},
		}, &resp)
		if err != nil {
			return nil, err
		}
		if resp.Code != 0 {
			return nil, fmt.Errorf("%s: upstream code %d: %s", apiName, resp.Code, resp.Msg)
		}
		return &resp, nil
	})
	if err != nil {
		kind := xhttp.ClassifyStatus(xhttp.StatusOf(err))
		if c.metrics != nil {
			c.metrics.RecordError("marketdata_" + kind)
		}
		if c.logger != nil {
			c.logger.Error("marketdata call failed",
				applogger.String("api", apiName),
				applogger.String("kind", kind),
				applogger.Error(err))
		}
		return nil, err
	}

	resp := res.(*apiResponse)
	cols := make(map[string]int, len(resp.Data.Fields))
	for i, f := range resp.Data.Fields {
		cols[f] = i
	}
	return &table{cols: cols, items: resp.Data.Items}, nil
}

// lastTradeDay steps back from today over weekends. Holidays are not
// tracked; the quote endpoints tolerate a non-trading date by returning
// the latest prior session.
func (c *Client) lastTradeDay() string {
	d := c.now()
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, -1)
	}
	return d.Format("20060102")
}

// quoteMap fetches a bulk end-of-day quote table keyed by ts_code.
func (c *Client) quoteMap(ctx context.Context, apiName string) (map[string][2]float64, error) {
	t, err := c.call(ctx, apiName, map[string]string{"trade_date": c.lastTradeDay()}, "ts_code,close,pct_chg,pre_settle,settle")
	if err != nil {
		return nil, err
	}
	quotes := make(map[string][2]float64, t.len())
	for i := 0; i < t.len(); i++ {
		code := t.str(i, "ts_code")
		close := t.f64(i, "close")
		change := t.f64(i, "pct_chg")
		if change == 0 {
			if pre := t.f64(i, "pre_settle"); pre != 0 {
				change = (close - pre) / pre * 100
			}
		}
		quotes[code] = [2]float64{close, change}
	}
	return quotes, nil
}

// Equities lists all listed stocks with their latest close and change.
func (c *Client) Equities(ctx context.Context) ([]models.Instrument, error) {
	t, err := c.call(ctx, "stock_basic",
		map[string]string{"list_status": "L"},
		"ts_code,symbol,name,area,industry,market,list_date")
	if err != nil {
		return nil, err
	}

	quotes, err := c.quoteMap(ctx, "daily")
	if err != nil {
		// serve the listing unpriced rather than fail the snapshot
		quotes = map[string][2]float64{}
		if c.logger != nil {
			c.logger.Warn("equity quotes unavailable", applogger.Error(err))
		}
	}

	out := make([]models.Instrument, 0, t.len())
	for i := 0; i < t.len(); i++ {
		code := t.str(i, "ts_code")
		industry := t.str(i, "industry")
		if industry == "" {
			industry = "unknown"
		}
		q := quotes[code]
		out = append(out, models.Instrument{
			Code:     code,
			Name:     t.str(i, "name"),
			Market:   t.str(i, "market"),
			Industry: industry,
			Price:    q[0],
			Change:   q[1],
		})
	}
	c.recordFetch(models.CategoryEquity, len(out))
	return out, nil
}

// Funds lists exchange-traded funds. Price and NAV come from the latest
// fund session close.
func (c *Client) Funds(ctx context.Context) ([]models.Fund, error) {
	t, err := c.call(ctx, "fund_basic",
		map[string]string{"market": "E", "status": "L"},
		"ts_code,name,fund_type,type,market")
	if err != nil {
		return nil, err
	}

	quotes, err := c.quoteMap(ctx, "fund_daily")
	if err != nil {
		quotes = map[string][2]float64{}
		if c.logger != nil {
			c.logger.Warn("fund quotes unavailable", applogger.Error(err))
		}
	}
	navDate := c.lastTradeDay()

	out := make([]models.Fund, 0, t.len())
	for i := 0; i < t.len(); i++ {
		code := t.str(i, "ts_code")
		fundType := t.str(i, "fund_type")
		category := t.str(i, "type")
		if category == "" {
			category = fundType
		}
		kind := "private"
		switch fundType {
		case "ETF", "LOF", "FOF":
			kind = "public"
		}
		q := quotes[code]
		out = append(out, models.Fund{
			Instrument: models.Instrument{
				Code:     code,
				Name:     t.str(i, "name"),
				Market:   "exchange",
				Industry: category,
				Price:    q[0],
				Change:   q[1],
			},
			FundType:     kind,
			FundCategory: category,
			NAV:          q[0],
			NAVDate:      navDate,
		})
	}
	c.recordFetch(models.CategoryFund, len(out))
	return out, nil
}

// Futures lists current-year contracts on the configured exchange.
func (c *Client) Futures(ctx context.Context) ([]models.Future, error) {
	t, err := c.call(ctx, "fut_basic",
		map[string]string{"exchange": c.futureExchange, "fut_type": "1"},
		"ts_code,symbol,name,exchange,fut_code,last_trade_date")
	if err != nil {
		return nil, err
	}

	quotes, err := c.quoteMap(ctx, "fut_daily")
	if err != nil {
		quotes = map[string][2]float64{}
		if c.logger != nil {
			c.logger.Warn("future quotes unavailable", applogger.Error(err))
		}
	}

	yy := util.CurrentYearSuffix(c.now())
	out := make([]models.Future, 0, t.len())
	for i := 0; i < t.len(); i++ {
		code := t.str(i, "ts_code")
		// second and third characters carry the contract year (e.g. T2606)
		if len(code) < 3 || code[1:3] != yy {
			continue
		}
		q := quotes[code]
		out = append(out, models.Future{
			Instrument: models.Instrument{
				Code:     code,
				Name:     t.str(i, "name"),
				Market:   t.str(i, "exchange"),
				Industry: t.str(i, "fut_code"),
				Price:    q[0],
				Change:   q[1],
			},
			Symbol:       t.str(i, "symbol"),
			DeliveryDate: t.str(i, "last_trade_date"),
			Exchange:     t.str(i, "exchange"),
		})
	}
	c.recordFetch(models.CategoryFuture, len(out))
	return out, nil
}

// Options lists current-year option contracts on the configured exchange.
func (c *Client) Options(ctx context.Context) ([]models.Option, error) {
	t, err := c.call(ctx, "opt_basic",
		map[string]string{"exchange": c.optionExchange},
		"ts_code,name,exchange,call_put,exercise_price,maturity_date,opt_code")
	if err != nil {
		return nil, err
	}

	quotes, err := c.quoteMap(ctx, "opt_daily")
	if err != nil {
		quotes = map[string][2]float64{}
		if c.logger != nil {
			c.logger.Warn("option quotes unavailable", applogger.Error(err))
		}
	}

	year := fmt.Sprintf("%04d", c.now().Year())
	out := make([]models.Option, 0, t.len())
	for i := 0; i < t.len(); i++ {
		code := t.str(i, "ts_code")
		maturity := t.str(i, "maturity_date") // YYYYMMDD
		if len(maturity) < 4 || maturity[:4] != year {
			continue
		}
		underlying := t.str(i, "opt_code")
		if underlying == "" && len(code) >= 6 {
			underlying = code[:6]
		}
		q := quotes[code]
		out = append(out, models.Option{
			Instrument: models.Instrument{
				Code:     code,
				Name:     t.str(i, "name"),
				Market:   t.str(i, "exchange"),
				Industry: "option",
				Price:    q[0],
				Change:   q[1],
			},
			Underlying:  underlying,
			ExpiryDate:  maturity,
			StrikePrice: t.f64(i, "exercise_price"),
			OptionType:  t.str(i, "call_put"),
			Exchange:    t.str(i, "exchange"),
		})
	}
	c.recordFetch(models.CategoryOption, len(out))
	return out, nil
}

// Quote returns the latest close and percent change for one code.
func (c *Client) Quote(ctx context.Context, code string) (float64, float64, error) {
	end := c.now()
	start := end.AddDate(0, 0, -7)
	t, err := c.call(ctx, "daily", map[string]string{
		"ts_code":    code,
		"start_date": start.Format("20060102"),
		"end_date":   end.Format("20060102"),
	}, "ts_code,trade_date,close,pct_chg")
	if err != nil {
		return 0, 0, err
	}
	if t.len() == 0 {
		return 0, 0, xhttp.NotFoundErrorf("no quote for %s", code)
	}
	return t.f64(0, "close"), t.f64(0, "pct_chg"), nil
}

func (c *Client) recordFetch(cat models.Category, rows int) {
	if c.metrics != nil {
		c.metrics.RecordCatalogFetch(cat.String(), rows)
	}
}
