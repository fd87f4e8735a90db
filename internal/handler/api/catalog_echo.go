package api

import (
    "encoding/json"
    "net/http"
    "time"

    models "QuantDesk/internal/domain/models"
    icache "QuantDesk/internal/service/cache"
    "QuantDesk/internal/service/metrics"
    "QuantDesk/internal/service/ratelimit"
    "QuantDesk/internal/usecase"
    xhttp "QuantDesk/pkg/http"
    xlogger "QuantDesk/pkg/logger"

    "github.com/labstack/echo/v4"
)

const listCacheTTL = 30 * time.Second

// CatalogHandler serves the per-category instrument listings and the
// single-instrument detail endpoint.
type CatalogHandler struct {
	logger  *xlogger.Logger
	catalog *usecase.Catalog
	cache   icache.BytesCache
	rl      *ratelimit.Limiter
}

func NewCatalogHandler(logger *xlogger.Logger, catalog *usecase.Catalog) *CatalogHandler {
	metrics.Register()
	return &CatalogHandler{logger: logger, catalog: catalog, rl: ratelimit.New()}
}

// SetCache enables short-lived response caching.
func (h *CatalogHandler) SetCache(c icache.BytesCache) { h.cache = c }

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/stocks", h.list(models.CategoryEquity))
	g.GET("/funds", h.list(models.CategoryFund))
	g.GET("/futures", h.list(models.CategoryFuture))
	g.GET("/options", h.list(models.CategoryOption))
	g.GET("/stock/:code", h.Detail)
}

func (h *CatalogHandler) list(cat models.Category) echo.HandlerFunc {
	endpoint := cat.String() + "s"
	return func(c echo.Context) error {
		start := time.Now()
		defer func() {
			metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		}()

		req := &models.ListQuery{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return xhttp.BadRequestResponse(c, verr)
		}

		if !h.rl.Allow(c.RealIP()+":catalog", 20, 10) {
			h.logger.Warn("catalog rate_limited",
				xlogger.String("endpoint", endpoint),
				xlogger.String("remote", c.RealIP()))
			return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
		}

		key := listCacheKey(endpoint, req)
		if h.cache != nil {
			if b, ok, err := h.cache.GetBytes(key); err == nil && ok {
				return xhttp.SuccessResponse(c, json.RawMessage(b))
			}
		}

		page, err := h.catalog.List(c.Request().Context(), cat, req)
		if err != nil {
			metrics.APIErrors.WithLabelValues(endpoint).Inc()
			h.logger.Error("catalog list error",
				xlogger.String("endpoint", endpoint),
				xlogger.Error(err))
			return xhttp.AppErrorResponse(c, err)
		}

		if h.cache != nil {
			if b, err := json.Marshal(page); err == nil {
				_ = h.cache.SetBytes(key, b, listCacheTTL)
			}
		}
		return xhttp.SuccessResponse(c, page)
	}
}

// Detail returns one instrument with a live quote.
func (h *CatalogHandler) Detail(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.APILatency.WithLabelValues("detail").Observe(time.Since(start).Seconds())
	}()

	code := c.Param("code")
	if code == "" {
		return xhttp.BadRequestResponse(c, "code required")
	}

	row, err := h.catalog.Detail(c.Request().Context(), code)
	if err != nil {
		metrics.APIErrors.WithLabelValues("detail").Inc()
		h.logger.Error("catalog detail error",
			xlogger.String("code", code),
			xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, row)
}

func listCacheKey(endpoint string, q *models.ListQuery) string {
	b, _ := json.Marshal(q)
	return "catalog:" + endpoint + ":" + string(b)
}
