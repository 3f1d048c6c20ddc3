package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"projectledger/internal/delivery/http/helpers"
	"projectledger/internal/domain"
)

// DashboardSuccessResponse is the success response envelope for GET /dashboard (200).
type DashboardSuccessResponse struct {
	Data  *domain.DashboardSummary `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// DashboardController serves the dashboard summary.
type DashboardController struct {
	Logger  *slog.Logger
	Service domain.DashboardService
}

// NewDashboardController creates a DashboardController with the given logger and service.
func NewDashboardController(logger *slog.Logger, svc domain.DashboardService) *DashboardController {
	return &DashboardController{Logger: logger, Service: svc}
}

// Summary godoc
// @Summary Dashboard summary
// @Description Income, expense and balance for the period, open debt, active projects and expense by category.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Success 200 {object} controllers.DashboardSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /dashboard [get]
func (c *DashboardController) Summary(w http.ResponseWriter, r *http.Request) {
	from, to, problems := queryDates(r)
	if len(problems) > 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, strings.Join(problems, "; "))
		return
	}
	summary, err := c.Service.Summary(r.Context(), domain.Period{From: from, To: to})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, summary)
}
