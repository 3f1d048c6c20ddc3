package controllers

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"projectledger/internal/delivery/http/helpers"
	"projectledger/internal/delivery/http/middleware"
	"projectledger/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLen = 8

// SignUpRequest is the request body for POST /auth/signup
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
}

// Validate implements Validator.
func (s SignUpRequest) Validate() []string {
	errs := validateEmail(s.Email, true)
	errs = append(errs, validatePassword(s.Password)...)
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// LoginRequest is the request body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the response body for POST /auth/login
type LoginResponse struct {
	Token      string           `json:"token"`
	TokenType  string           `json:"token_type"`
	User       *domain.User     `json:"user"`
	Navigation []domain.NavItem `json:"navigation"`
}

// LogoutResponse is the response body for POST /auth/logout
type LogoutResponse struct {
	LoggedOut bool `json:"logged_out"`
}

// SignUpSuccessResponse is the success response envelope for POST /auth/signup (201).
type SignUpSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// LoginSuccessResponse is the success response envelope for POST /auth/login (200).
type LoginSuccessResponse struct {
	Data  LoginResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// LogoutSuccessResponse is the success response envelope for POST /auth/logout (200).
type LogoutSuccessResponse struct {
	Data  LogoutResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AuthController handles sign-up, login and logout.
type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

// NewAuthController creates an AuthController with the given logger and service.
func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// SignUp godoc
// @Summary Sign up a new user
// @Description Create an account with email, password and name. The first account ever created becomes admin; later ones are members.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} controllers.SignUpSuccessResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.SignUp(r.Context(), domain.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		LastName: req.LastName,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password. Returns a JWT carrying the user id, email and roles, plus the navigation the user may see.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} controllers.LoginSuccessResponse "data contains token, token_type, user and navigation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{
		Token:      token,
		TokenType:  "Bearer",
		User:       user,
		Navigation: domain.NavigationFor(user.Roles),
	})
}

// Logout godoc
// @Summary Log out
// @Description Revoke the bearer token until it would have expired. Without a revocation store this only acknowledges the request.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.LogoutSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	claims, hasClaims := middleware.ClaimsFromContext(r.Context())
	if !ok || !hasClaims {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	expiresAt := claims.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = time.Now()
	}
	if err := c.Service.Logout(r.Context(), token, expiresAt); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LogoutResponse{LoggedOut: true})
}

func validateEmail(email string, required bool) []string {
	email = strings.TrimSpace(strings.ToLower(email))
	switch {
	case email == "" && required:
		return []string{"email is required"}
	case email == "":
		return []string{"email cannot be empty"}
	case !emailRegexp.MatchString(email):
		return []string{"invalid email format"}
	}
	return nil
}

func validatePassword(password string) []string {
	if password == "" {
		return []string{"password is required"}
	}
	if len(password) < minPasswordLen {
		return []string{"password must be at least 8 characters"}
	}
	return nil
}
