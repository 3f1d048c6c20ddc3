package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"projectledger/internal/delivery/http/helpers"
	"projectledger/internal/domain"
)

// DebtRequest is the request body for POST /debts and PUT /debts/{id}.
// Paid is only read on create; later payments go through POST /debts/{id}/payments.
type DebtRequest struct {
	CompanyID   string `json:"company_id"`
	ProjectID   string `json:"project_id"`
	Description string `json:"description"`
	Amount      string `json:"amount" example:"1200.00"`
	Paid        string `json:"paid" example:"200.00"`
	DueDate     string `json:"due_date" example:"2024-09-30"`
}

// Validate implements Validator.
func (d DebtRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(d.Description) == "" {
		errs = append(errs, "description is required")
	}
	_, e := parseAmount("amount", d.Amount, true)
	errs = append(errs, e...)
	_, e = parsePaidAmount("paid", d.Paid)
	errs = append(errs, e...)
	_, e = parseDate("due_date", d.DueDate)
	return append(errs, e...)
}

func (d DebtRequest) applyTo(debt *domain.Debt) {
	debt.CompanyID = helpers.OptionalString(d.CompanyID)
	debt.ProjectID = helpers.OptionalString(d.ProjectID)
	debt.Description = strings.TrimSpace(d.Description)
	debt.AmountCents, _ = parseAmount("amount", d.Amount, true)
	debt.DueDate, _ = parseDate("due_date", d.DueDate)
}

// PaymentRequest is the request body for POST /debts/{id}/payments.
type PaymentRequest struct {
	Amount string `json:"amount" example:"150.00"`
}

// Validate implements Validator.
func (p PaymentRequest) Validate() []string {
	_, errs := parseAmount("amount", p.Amount, true)
	return errs
}

// DebtSuccessResponse is the success response envelope for endpoints returning one debt.
type DebtSuccessResponse struct {
	Data  *domain.Debt      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// DebtListSuccessResponse is the success response envelope for GET /debts (200).
type DebtListSuccessResponse struct {
	Data  helpers.ListResponse[*domain.Debt] `json:"data"`
	Error *helpers.APIError                  `json:"error"`
}

// DebtController handles debt endpoints.
type DebtController struct {
	Logger  *slog.Logger
	Service domain.DebtService
	Pager   helpers.Pager
}

// NewDebtController creates a DebtController with the given logger, service and page limits.
func NewDebtController(logger *slog.Logger, svc domain.DebtService, pager helpers.Pager) *DebtController {
	return &DebtController{Logger: logger, Service: svc, Pager: pager}
}

// List godoc
// @Summary List debts
// @Description Paginated debt list, open debts first and then by due date. Filters: status, company and project.
// @Tags debts
// @Produce json
// @Security BearerAuth
// @Param status query string false "Debt status" Enums(open, paid)
// @Param company_id query string false "Company ID"
// @Param project_id query string false "Project ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 10, max 100)"
// @Success 200 {object} controllers.DebtListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /debts [get]
func (c *DebtController) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.DebtFilter{
		Status:    domain.DebtStatus(strings.ToLower(helpers.QueryString(r, "status"))),
		CompanyID: helpers.QueryString(r, "company_id"),
		ProjectID: helpers.QueryString(r, "project_id"),
	}
	res, err := c.Service.List(r.Context(), filter, c.Pager.Parse(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListResponse(res))
}

// Get godoc
// @Summary Get a debt
// @Tags debts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Debt ID"
// @Success 200 {object} controllers.DebtSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /debts/{id} [get]
func (c *DebtController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	d, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, d)
}

// Create godoc
// @Summary Create a debt
// @Description Status is derived: a debt whose paid amount equals its amount is paid.
// @Tags debts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body DebtRequest true "Debt"
// @Success 201 {object} controllers.DebtSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /debts [post]
func (c *DebtController) Create(w http.ResponseWriter, r *http.Request) {
	var req DebtRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	d := &domain.Debt{}
	req.applyTo(d)
	d.PaidCents, _ = parsePaidAmount("paid", req.Paid)
	if err := c.Service.Create(r.Context(), d); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, d)
}

// Update godoc
// @Summary Update a debt
// @Description The paid amount is kept; a paid field in the body is ignored.
// @Tags debts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Debt ID"
// @Param body body DebtRequest true "Debt"
// @Success 200 {object} controllers.DebtSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /debts/{id} [put]
func (c *DebtController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req DebtRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	d, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	req.applyTo(d)
	if err := c.Service.Update(r.Context(), d); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, d)
}

// Delete godoc
// @Summary Delete a debt
// @Tags debts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Debt ID"
// @Success 200 {object} controllers.DeletedSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /debts/{id} [delete]
func (c *DebtController) Delete(w http.ResponseWriter, r *http.Request) {
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

// RecordPayment godoc
// @Summary Record a payment against a debt
// @Description Partial payments keep the debt open; paying the remaining amount marks it paid. Overpaying is rejected.
// @Tags debts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Debt ID"
// @Param body body PaymentRequest true "Payment"
// @Success 200 {object} controllers.DebtSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /debts/{id}/payments [post]
func (c *DebtController) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req PaymentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	cents, _ := parseAmount("amount", req.Amount, true)
	d, err := c.Service.RecordPayment(r.Context(), id, cents)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, d)
}
