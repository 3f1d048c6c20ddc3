package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"projectledger/internal/delivery/http/helpers"
	"projectledger/internal/delivery/http/middleware"
	"projectledger/internal/domain"
)

// UpdateUserRequest is the request body for PATCH /users/me and PATCH /users/{id}. Every field is optional.
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	LastName   *string `json:"last_name"`
	Email      *string `json:"email"`
	PositionID *string `json:"position_id"`
}

// Validate implements Validator.
func (u UpdateUserRequest) Validate() []string {
	var errs []string
	if u.Email != nil {
		errs = append(errs, validateEmail(*u.Email, false)...)
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	return errs
}

func (u UpdateUserRequest) applyTo(user *domain.User) {
	if u.Name != nil {
		user.Name = strings.TrimSpace(*u.Name)
	}
	if u.LastName != nil {
		user.LastName = strings.TrimSpace(*u.LastName)
	}
	if u.Email != nil {
		user.Email = strings.TrimSpace(strings.ToLower(*u.Email))
	}
	if u.PositionID != nil {
		user.PositionID = helpers.OptionalString(*u.PositionID)
	}
}

// CreateUserRequest is the request body for POST /users.
type CreateUserRequest struct {
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Name       string   `json:"name"`
	LastName   string   `json:"last_name"`
	PositionID string   `json:"position_id"`
	Roles      []string `json:"roles"`
}

// Validate implements Validator.
func (c CreateUserRequest) Validate() []string {
	errs := validateEmail(c.Email, true)
	errs = append(errs, validatePassword(c.Password)...)
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	return append(errs, validateRoles(c.Roles)...)
}

// SetRolesRequest is the request body for PUT /users/{id}/roles.
type SetRolesRequest struct {
	Roles []string `json:"roles"`
}

// Validate implements Validator.
func (s SetRolesRequest) Validate() []string {
	if len(s.Roles) == 0 {
		return []string{"roles must not be empty"}
	}
	return validateRoles(s.Roles)
}

func validateRoles(roles []string) []string {
	var errs []string
	for _, r := range roles {
		if !domain.IsValidRole(strings.TrimSpace(strings.ToLower(r))) {
			errs = append(errs, fmt.Sprintf("unknown role %q", r))
		}
	}
	return errs
}

// UserSuccessResponse is the success response envelope for endpoints returning one user.
type UserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserListSuccessResponse is the success response envelope for GET /users (200).
type UserListSuccessResponse struct {
	Data  helpers.ListResponse[*domain.User] `json:"data"`
	Error *helpers.APIError                  `json:"error"`
}

// NavigationSuccessResponse is the success response envelope for GET /navigation (200).
type NavigationSuccessResponse struct {
	Data  []domain.NavItem  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// DeletedResponse is the data of every delete endpoint.
type DeletedResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// DeletedSuccessResponse is the success response envelope for delete endpoints (200).
type DeletedSuccessResponse struct {
	Data  DeletedResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserController handles the user's own profile and user administration.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
	Pager   helpers.Pager
}

// NewUserController creates a UserController with the given logger, service and page limits.
func NewUserController(logger *slog.Logger, svc domain.UserService, pager helpers.Pager) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
		Pager:   pager,
	}
}

// GetMe godoc
// @Summary Get current user
// @Description Returns the authenticated user's profile and roles. Requires Bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.UserSuccessResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update current user
// @Description Update the authenticated user's profile. Every field is optional. Email must be unique. Requires Bearer token.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateUserRequest true "Fields to update"
// @Success 200 {object} controllers.UserSuccessResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [patch]
func (c *UserController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	c.update(w, r, userID)
}

// Navigation godoc
// @Summary Navigation for the current user
// @Description Lists the dashboard sections the authenticated user's roles give access to, in display order.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.NavigationSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /navigation [get]
func (c *UserController) Navigation(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, domain.NavigationFor(middleware.RolesFromContext(r.Context())))
}

// List godoc
// @Summary List users
// @Description Paginated user list ordered by last name. Filters: search (name, last name or email) and role. Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring of name, last name or email"
// @Param role query string false "Role code" Enums(admin, manager, member)
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 10, max 100)"
// @Success 200 {object} controllers.UserListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users [get]
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.UserFilter{
		Search: helpers.QueryString(r, "search"),
		Role:   strings.ToLower(helpers.QueryString(r, "role")),
	}
	res, err := c.Service.List(r.Context(), filter, c.Pager.Parse(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListResponse(res))
}

// Get godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{id} [get]
func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// Create godoc
// @Summary Create a user
// @Description Create an account on someone's behalf. Roles default to member. A welcome email is sent when email is configured. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateUserRequest true "New user"
// @Success 201 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users [post]
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.Create(r.Context(), domain.CreateUserInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		LastName:   req.LastName,
		PositionID: helpers.OptionalString(req.PositionID),
		Roles:      req.Roles,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// Update godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body UpdateUserRequest true "Fields to update"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{id} [patch]
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c.update(w, r, id)
}

func (c *UserController) update(w http.ResponseWriter, r *http.Request, id string) {
	var req UpdateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	req.applyTo(user)
	if err := c.Service.Update(r.Context(), user); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// Delete godoc
// @Summary Delete a user
// @Description Admins cannot delete their own account. Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} controllers.DeletedSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{id} [delete]
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id, callerID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeletedResponse{ID: id, Deleted: true})
}

// SetRoles godoc
// @Summary Replace a user's roles
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body SetRolesRequest true "New role set"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{id}/roles [put]
func (c *UserController) SetRoles(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req SetRolesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.SetRoles(r.Context(), id, req.Roles)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// pathID reads the {id} path value, writing a 400 when it is blank.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return "", false
	}
	return id, true
}
