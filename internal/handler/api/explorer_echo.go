package api

import (
    models "QuantDesk/internal/domain/models"
    "QuantDesk/internal/usecase"
    xhttp "QuantDesk/pkg/http"
    xlogger "QuantDesk/pkg/logger"

    "github.com/labstack/echo/v4"
)

// ExplorerHandler exposes the selection widget sessions: category tabs,
// filters, pagination, and the selection set.
type ExplorerHandler struct {
	logger   *xlogger.Logger
	sessions *usecase.ExplorerSessions
}

func NewExplorerHandler(logger *xlogger.Logger, sessions *usecase.ExplorerSessions) *ExplorerHandler {
	return &ExplorerHandler{logger: logger, sessions: sessions}
}

func (h *ExplorerHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/explorer")
	g.POST("", h.Create)
	g.GET("/:id", h.View)
	g.PUT("/:id/category", h.SwitchCategory)
	g.PUT("/:id/filters", h.SetFilters)
	g.POST("/:id/page/next", h.NextPage)
	g.POST("/:id/page/prev", h.PrevPage)
	g.POST("/:id/selection", h.Select)
	g.DELETE("/:id/selection/:code", h.Deselect)
	g.DELETE("/:id/selection", h.ClearSelection)
}

// Create starts a session and returns its first view.
func (h *ExplorerHandler) Create(c echo.Context) error {
	e := h.sessions.Create()
	return xhttp.CreatedResponse(c, e.View(c.Request().Context()))
}

// View renders the session's current page.
func (h *ExplorerHandler) View(c echo.Context) error {
	e, err := h.session(c)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, e.View(c.Request().Context()))
}

// SwitchCategory activates a tab, clearing filters and resetting the
// page.
func (h *ExplorerHandler) SwitchCategory(c echo.Context) error {
	e, err := h.session(c)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	req := &models.SwitchCategoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	cat, err := models.ParseCategory(req.Category)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}

	e.SwitchCategory(cat)
	return xhttp.SuccessResponse(c, e.View(c.Request().Context()))
}

// SetFilters replaces the active tab's filters.
func (h *ExplorerHandler) SetFilters(c echo.Context) error {
	e, err := h.session(c)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	req := &models.UpdateFiltersRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	e.SetFilters(models.FilterState{
		Search:       req.Search,
		Market:       req.Market,
		Industry:     req.Industry,
		FundType:     req.FundType,
		FundCategory: req.FundCategory,
		Exchange:     req.Exchange,
		Underlying:   req.Underlying,
		OptionType:   req.OptionType,
	})
	return xhttp.SuccessResponse(c, e.View(c.Request().Context()))
}

// NextPage advances the page when one exists.
func (h *ExplorerHandler) NextPage(c echo.Context) error {
	e, err := h.session(c)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	e.NextPage()
	return xhttp.SuccessResponse(c, e.View(c.Request().Context()))
}

// PrevPage steps the page back when not on page 1.
func (h *ExplorerHandler) PrevPage(c echo.Context) error {
	e, err := h.session(c)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	e.PrevPage()
	return xhttp.SuccessResponse(c, e.View(c.Request().Context()))
}

// Select adds a code to the session selection.
func (h *ExplorerHandler) Select(c echo.Context) error {
	e, err := h.session(c)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	req := &models.SelectRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	e.Select(req.Code)
	return xhttp.SuccessResponse(c, e.Selected())
}

// Deselect removes a code from the session selection.
func (h *ExplorerHandler) Deselect(c echo.Context) error {
	e, err := h.session(c)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	e.Deselect(c.Param("code"))
	return xhttp.SuccessResponse(c, e.Selected())
}

// ClearSelection empties the session selection.
func (h *ExplorerHandler) ClearSelection(c echo.Context) error {
	e, err := h.session(c)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	e.ClearSelection()
	return xhttp.SuccessResponse(c, e.Selected())
}

func (h *ExplorerHandler) session(c echo.Context) (*usecase.Explorer, error) {
	return h.sessions.Get(c.Param("id"))
}
