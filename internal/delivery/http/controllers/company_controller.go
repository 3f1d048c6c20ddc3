package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"projectledger/internal/delivery/http/helpers"
	"projectledger/internal/domain"
)

// CompanyRequest is the request body for POST /companies and PUT /companies/{id}.
type CompanyRequest struct {
	Name  string `json:"name" example:"Acme S.p.A."`
	TaxID string `json:"tax_id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate implements Validator.
func (c CompanyRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(c.Email) != "" {
		errs = append(errs, validateEmail(c.Email, false)...)
	}
	return errs
}

func (c CompanyRequest) applyTo(co *domain.Company) {
	co.Name = c.Name
	co.TaxID = c.TaxID
	co.Email = strings.ToLower(c.Email)
	co.Phone = c.Phone
}

// CompanySuccessResponse is the success response envelope for endpoints returning one company.
type CompanySuccessResponse struct {
	Data  *domain.Company   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CompanyListSuccessResponse is the success response envelope for GET /companies (200).
type CompanyListSuccessResponse struct {
	Data  helpers.ListResponse[*domain.Company] `json:"data"`
	Error *helpers.APIError                     `json:"error"`
}

// CompanyController handles company endpoints.
type CompanyController struct {
	Logger  *slog.Logger
	Service domain.CompanyService
	Pager   helpers.Pager
}

// NewCompanyController creates a CompanyController.
func NewCompanyController(logger *slog.Logger, svc domain.CompanyService, pager helpers.Pager) *CompanyController {
	return &CompanyController{Logger: logger, Service: svc, Pager: pager}
}

// List godoc
// @Summary List companies
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring of the name or tax ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 10, max 100)"
// @Success 200 {object} controllers.CompanyListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /companies [get]
func (c *CompanyController) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.SearchFilter{Search: helpers.QueryString(r, "search")}
	res, err := c.Service.List(r.Context(), filter, c.Pager.Parse(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListResponse(res))
}

// Get godoc
// @Summary Get a company
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Success 200 {object} controllers.CompanySuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /companies/{id} [get]
func (c *CompanyController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	co, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, co)
}

// Create godoc
// @Summary Create a company
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CompanyRequest true "Company"
// @Success 201 {object} controllers.CompanySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /companies [post]
func (c *CompanyController) Create(w http.ResponseWriter, r *http.Request) {
	var req CompanyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	co := &domain.Company{}
	req.applyTo(co)
	if err := c.Service.Create(r.Context(), co); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, co)
}

// Update godoc
// @Summary Update a company
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Param body body CompanyRequest true "Company"
// @Success 200 {object} controllers.CompanySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /companies/{id} [put]
func (c *CompanyController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req CompanyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	co, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	req.applyTo(co)
	if err := c.Service.Update(r.Context(), co); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, co)
}

// Delete godoc
// @Summary Delete a company
// @Description Fails with conflict while projects or debts reference the company.
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Success 200 {object} controllers.DeletedSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /companies/{id} [delete]
func (c *CompanyController) Delete(w http.ResponseWriter, r *http.Request) {
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
