package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"projectledger/internal/delivery/http/helpers"
	"projectledger/internal/domain"
)

// PositionRequest is the request body for POST /positions and PUT /positions/{id}.
type PositionRequest struct {
	Title       string `json:"title" example:"Site manager"`
	Description string `json:"description"`
}

// Validate implements Validator.
func (p PositionRequest) Validate() []string {
	if strings.TrimSpace(p.Title) == "" {
		return []string{"title is required"}
	}
	return nil
}

// PositionSuccessResponse is the success response envelope for endpoints returning one position.
type PositionSuccessResponse struct {
	Data  *domain.Position  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PositionListSuccessResponse is the success response envelope for GET /positions (200).
type PositionListSuccessResponse struct {
	Data  helpers.ListResponse[*domain.Position] `json:"data"`
	Error *helpers.APIError                      `json:"error"`
}

// PositionController handles job position endpoints.
type PositionController struct {
	Logger  *slog.Logger
	Service domain.PositionService
	Pager   helpers.Pager
}

func NewPositionController(logger *slog.Logger, svc domain.PositionService, pager helpers.Pager) *PositionController {
	return &PositionController{Logger: logger, Service: svc, Pager: pager}
}

// List godoc
// @Summary List positions
// @Tags positions
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring of the title"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 10, max 100)"
// @Success 200 {object} controllers.PositionListSuccessResponse
// @Router /positions [get]
func (c *PositionController) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.SearchFilter{Search: helpers.QueryString(r, "search")}
	res, err := c.Service.List(r.Context(), filter, c.Pager.Parse(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListResponse(res))
}

// Get godoc
// @Summary Get a position
// @Tags positions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Position ID"
// @Success 200 {object} controllers.PositionSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /positions/{id} [get]
func (c *PositionController) Get(w http.ResponseWriter, r *http.Request) {
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
// @Summary Create a position
// @Tags positions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PositionRequest true "Position"
// @Success 201 {object} controllers.PositionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /positions [post]
func (c *PositionController) Create(w http.ResponseWriter, r *http.Request) {
	var req PositionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p := &domain.Position{Title: strings.TrimSpace(req.Title), Description: strings.TrimSpace(req.Description)}
	if err := c.Service.Create(r.Context(), p); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, p)
}

// Update godoc
// @Summary Update a position
// @Tags positions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Position ID"
// @Param body body PositionRequest true "Position"
// @Success 200 {object} controllers.PositionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /positions/{id} [put]
func (c *PositionController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req PositionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	p.Title = strings.TrimSpace(req.Title)
	p.Description = strings.TrimSpace(req.Description)
	if err := c.Service.Update(r.Context(), p); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// Delete godoc
// @Summary Delete a position
// @Tags positions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Position ID"
// @Success 200 {object} controllers.DeletedSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /positions/{id} [delete]
func (c *PositionController) Delete(w http.ResponseWriter, r *http.Request) {
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
