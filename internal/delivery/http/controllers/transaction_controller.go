package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"projectledger/internal/delivery/http/helpers"
	"projectledger/internal/delivery/http/middleware"
	"projectledger/internal/domain"
)

// TransactionRequest is the request body for POST /transactions and PUT /transactions/{id}.
type TransactionRequest struct {
	ProjectID   string `json:"project_id"`
	CategoryID  string `json:"category_id"`
	Type        string `json:"type" example:"expense"`
	Amount      string `json:"amount" example:"249.90"`
	Description string `json:"description"`
	OccurredOn  string `json:"occurred_on" example:"2024-03-01"`
}

// Validate implements Validator.
func (t TransactionRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(t.ProjectID) == "" {
		errs = append(errs, "project_id is required")
	}
	_, e := parseAmount("amount", t.Amount, true)
	errs = append(errs, e...)
	if strings.TrimSpace(t.OccurredOn) == "" {
		return append(errs, "occurred_on is required")
	}
	_, e = parseDate("occurred_on", t.OccurredOn)
	return append(errs, e...)
}

func (t TransactionRequest) applyTo(tx *domain.Transaction) {
	tx.ProjectID = strings.TrimSpace(t.ProjectID)
	tx.CategoryID = helpers.OptionalString(t.CategoryID)
	tx.Type = domain.TransactionType(strings.ToLower(strings.TrimSpace(t.Type)))
	tx.AmountCents, _ = parseAmount("amount", t.Amount, true)
	tx.Description = strings.TrimSpace(t.Description)
	if d, _ := parseDate("occurred_on", t.OccurredOn); d != nil {
		tx.OccurredOn = *d
	}
}

// TransactionSuccessResponse is the success response envelope for endpoints returning one transaction.
type TransactionSuccessResponse struct {
	Data  *domain.Transaction `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// TransactionListSuccessResponse is the success response envelope for GET /transactions (200).
type TransactionListSuccessResponse struct {
	Data  helpers.ListResponse[*domain.Transaction] `json:"data"`
	Error *helpers.APIError                         `json:"error"`
}

// TransactionController handles transaction endpoints.
type TransactionController struct {
	Logger  *slog.Logger
	Service domain.TransactionService
	Pager   helpers.Pager
}

// NewTransactionController creates a TransactionController with the given logger, service and page limits.
func NewTransactionController(logger *slog.Logger, svc domain.TransactionService, pager helpers.Pager) *TransactionController {
	return &TransactionController{Logger: logger, Service: svc, Pager: pager}
}

// List godoc
// @Summary List transactions
// @Description Paginated transaction list, most recent first. Filters: project, category, type and an inclusive date range.
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param project_id query string false "Project ID"
// @Param category_id query string false "Category ID"
// @Param type query string false "Transaction type" Enums(income, expense)
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 10, max 100)"
// @Success 200 {object} controllers.TransactionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /transactions [get]
func (c *TransactionController) List(w http.ResponseWriter, r *http.Request) {
	from, to, problems := queryDates(r)
	if len(problems) > 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, strings.Join(problems, "; "))
		return
	}
	filter := domain.TransactionFilter{
		ProjectID:  helpers.QueryString(r, "project_id"),
		CategoryID: helpers.QueryString(r, "category_id"),
		Type:       domain.TransactionType(strings.ToLower(helpers.QueryString(r, "type"))),
		From:       from,
		To:         to,
	}
	res, err := c.Service.List(r.Context(), filter, c.Pager.Parse(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListResponse(res))
}

// Get godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} controllers.TransactionSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /transactions/{id} [get]
func (c *TransactionController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	tx, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tx)
}

// Create godoc
// @Summary Record a transaction
// @Description The category, when given, must have the same type as the transaction. Admin or manager.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body TransactionRequest true "Transaction"
// @Success 201 {object} controllers.TransactionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /transactions [post]
func (c *TransactionController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req TransactionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	tx := &domain.Transaction{CreatedBy: userID}
	req.applyTo(tx)
	if err := c.Service.Create(r.Context(), tx); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, tx)
}

// Update godoc
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Param body body TransactionRequest true "Transaction"
// @Success 200 {object} controllers.TransactionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /transactions/{id} [put]
func (c *TransactionController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req TransactionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	tx, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	req.applyTo(tx)
	if err := c.Service.Update(r.Context(), tx); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tx)
}

// Delete godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} controllers.DeletedSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /transactions/{id} [delete]
func (c *TransactionController) Delete(w http.ResponseWriter, r *http.Request) {
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
