package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"projectledger/internal/delivery/http/helpers"
	"projectledger/internal/delivery/http/middleware"
	"projectledger/internal/domain"
)

// ProjectRequest is the request body for POST /projects and PUT /projects/{id}.
// Amounts are decimal strings and dates are YYYY-MM-DD.
type ProjectRequest struct {
	Name        string `json:"name" example:"Warehouse refit"`
	Description string `json:"description"`
	CompanyID   string `json:"company_id"`
	Status      string `json:"status" example:"active"`
	Budget      string `json:"budget" example:"15000.00"`
	StartDate   string `json:"start_date" example:"2024-01-15"`
	EndDate     string `json:"end_date" example:"2024-06-30"`
}

// Validate implements Validator.
func (p ProjectRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "name is required")
	}
	_, e := parseAmount("budget", p.Budget, false)
	errs = append(errs, e...)
	_, e = parseDate("start_date", p.StartDate)
	errs = append(errs, e...)
	_, e = parseDate("end_date", p.EndDate)
	return append(errs, e...)
}

func (p ProjectRequest) applyTo(project *domain.Project) {
	project.Name = strings.TrimSpace(p.Name)
	project.Description = strings.TrimSpace(p.Description)
	project.CompanyID = helpers.OptionalString(p.CompanyID)
	if s := strings.TrimSpace(p.Status); s != "" {
		project.Status = domain.ProjectStatus(strings.ToLower(s))
	}
	project.BudgetCents, _ = parseAmount("budget", p.Budget, false)
	project.StartDate, _ = parseDate("start_date", p.StartDate)
	project.EndDate, _ = parseDate("end_date", p.EndDate)
}

// ProjectSuccessResponse is the success response envelope for endpoints returning one project.
type ProjectSuccessResponse struct {
	Data  *domain.Project   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ProjectListSuccessResponse is the success response envelope for GET /projects (200).
type ProjectListSuccessResponse struct {
	Data  helpers.ListResponse[*domain.Project] `json:"data"`
	Error *helpers.APIError                     `json:"error"`
}

// ProjectController handles project endpoints.
type ProjectController struct {
	Logger  *slog.Logger
	Service domain.ProjectService
	Pager   helpers.Pager
}

// NewProjectController creates a ProjectController with the given logger, service and page limits.
func NewProjectController(logger *slog.Logger, svc domain.ProjectService, pager helpers.Pager) *ProjectController {
	return &ProjectController{Logger: logger, Service: svc, Pager: pager}
}

// List godoc
// @Summary List projects
// @Description Paginated project list, newest first. Filters: search (name or description), status and company.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring of name or description"
// @Param status query string false "Project status" Enums(active, on_hold, completed)
// @Param company_id query string false "Company ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 10, max 100)"
// @Success 200 {object} controllers.ProjectListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects [get]
func (c *ProjectController) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.ProjectFilter{
		Search:    helpers.QueryString(r, "search"),
		Status:    domain.ProjectStatus(strings.ToLower(helpers.QueryString(r, "status"))),
		CompanyID: helpers.QueryString(r, "company_id"),
	}
	res, err := c.Service.List(r.Context(), filter, c.Pager.Parse(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListResponse(res))
}

// Get godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} controllers.ProjectSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects/{id} [get]
func (c *ProjectController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// Create godoc
// @Summary Create a project
// @Description The caller becomes the project owner. Status defaults to active. Admin or manager.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ProjectRequest true "Project"
// @Success 201 {object} controllers.ProjectSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects [post]
func (c *ProjectController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req ProjectRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p := &domain.Project{OwnerID: userID}
	req.applyTo(p)
	if err := c.Service.Create(r.Context(), p); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, p)
}

// Update godoc
// @Summary Update a project
// @Description Replaces the editable fields. A blank status keeps the current one. Admin or manager.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param body body ProjectRequest true "Project"
// @Success 200 {object} controllers.ProjectSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects/{id} [put]
func (c *ProjectController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req ProjectRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	req.applyTo(p)
	if err := c.Service.Update(r.Context(), p); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// Delete godoc
// @Summary Delete a project
// @Description Fails with conflict while transactions or debts reference the project. Admin or manager.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} controllers.DeletedSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects/{id} [delete]
func (c *ProjectController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeletedResponse{ID: id, Deleted: true})
}
