package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"projectledger/internal/delivery/http/helpers"
	"projectledger/internal/domain"
)

// CategoryRequest is the request body for POST /categories and PUT /categories/{id}.
type CategoryRequest struct {
	Name string `json:"name" example:"Materials"`
	Type string `json:"type" example:"expense"`
}

// Validate implements Validator.
func (c CategoryRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if !domain.TransactionType(strings.ToLower(strings.TrimSpace(c.Type))).Valid() {
		errs = append(errs, "type must be income or expense")
	}
	return errs
}

func (c CategoryRequest) applyTo(cat *domain.Category) {
	cat.Name = strings.TrimSpace(c.Name)
	cat.Type = domain.TransactionType(strings.ToLower(strings.TrimSpace(c.Type)))
}

// CategorySuccessResponse is the success response envelope for endpoints returning one category.
type CategorySuccessResponse struct {
	Data  *domain.Category  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CategoryListSuccessResponse is the success response envelope for GET /categories (200).
type CategoryListSuccessResponse struct {
	Data  helpers.ListResponse[*domain.Category] `json:"data"`
	Error *helpers.APIError                      `json:"error"`
}

// CategoryController handles transaction category endpoints.
type CategoryController struct {
	Logger  *slog.Logger
	Service domain.CategoryService
	Pager   helpers.Pager
}

// NewCategoryController creates a CategoryController.
func NewCategoryController(logger *slog.Logger, svc domain.CategoryService, pager helpers.Pager) *CategoryController {
	return &CategoryController{Logger: logger, Service: svc, Pager: pager}
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring of the name"
// @Param type query string false "Category type" Enums(income, expense)
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 10, max 100)"
// @Success 200 {object} controllers.CategoryListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories [get]
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.CategoryFilter{
		Search: helpers.QueryString(r, "search"),
		Type:   domain.TransactionType(strings.ToLower(helpers.QueryString(r, "type"))),
	}
	res, err := c.Service.List(r.Context(), filter, c.Pager.Parse(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListResponse(res))
}

// Get godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} controllers.CategorySuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /categories/{id} [get]
func (c *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	cat, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, cat)
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CategoryRequest true "Category"
// @Success 201 {object} controllers.CategorySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /categories [post]
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	cat := &domain.Category{}
	req.applyTo(cat)
	if err := c.Service.Create(r.Context(), cat); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, cat)
}

// Update godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param body body CategoryRequest true "Category"
// @Success 200 {object} controllers.CategorySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /categories/{id} [put]
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req CategoryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	cat, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	req.applyTo(cat)
	if err := c.Service.Update(r.Context(), cat); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, cat)
}

// Delete godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} controllers.DeletedSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /categories/{id} [delete]
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
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
