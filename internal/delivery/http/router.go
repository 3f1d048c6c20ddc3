package http

import (
	"net/http"

	"projectledger/internal/delivery/http/controllers"
	"projectledger/internal/delivery/http/helpers"
	"projectledger/internal/delivery/http/middleware"
	"projectledger/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups every controller the router dispatches to.
type Controllers struct {
	Auth        *controllers.AuthController
	User        *controllers.UserController
	Project     *controllers.ProjectController
	Transaction *controllers.TransactionController
	Debt        *controllers.DebtController
	Category    *controllers.CategoryController
	Company     *controllers.CompanyController
	Position    *controllers.PositionController
	Dashboard   *controllers.DashboardController
}

// NewRouter initializes the HTTP router with all application routes.
// requireAuth authenticates a request; role checks are layered on top of it.
func NewRouter(c Controllers, requireAuth func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	authed := requireAuth
	staff := func(h http.HandlerFunc) http.HandlerFunc {
		return requireAuth(middleware.RequireRole(domain.RoleAdmin, domain.RoleManager)(h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return requireAuth(middleware.RequireRole(domain.RoleAdmin)(h))
	}

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("POST /auth/logout", authed(c.Auth.Logout))

	// Current user
	mux.HandleFunc("GET /users/me", authed(c.User.GetMe))
	mux.HandleFunc("PATCH /users/me", authed(c.User.UpdateMe))
	mux.HandleFunc("GET /navigation", authed(c.User.Navigation))

	// User administration
	mux.HandleFunc("GET /users", admin(c.User.List))
	mux.HandleFunc("POST /users", admin(c.User.Create))
	mux.HandleFunc("GET /users/{id}", admin(c.User.Get))
	mux.HandleFunc("PATCH /users/{id}", admin(c.User.Update))
	mux.HandleFunc("DELETE /users/{id}", admin(c.User.Delete))
	mux.HandleFunc("PUT /users/{id}/roles", admin(c.User.SetRoles))

	// Dashboard
	mux.HandleFunc("GET /dashboard", authed(c.Dashboard.Summary))

	// Projects
	mux.HandleFunc("GET /projects", authed(c.Project.List))
	mux.HandleFunc("GET /projects/{id}", authed(c.Project.Get))
	mux.HandleFunc("POST /projects", staff(c.Project.Create))
	mux.HandleFunc("PUT /projects/{id}", staff(c.Project.Update))
	mux.HandleFunc("DELETE /projects/{id}", staff(c.Project.Delete))

	// Transactions
	mux.HandleFunc("GET /transactions", authed(c.Transaction.List))
	mux.HandleFunc("GET /transactions/{id}", authed(c.Transaction.Get))
	mux.HandleFunc("POST /transactions", staff(c.Transaction.Create))
	mux.HandleFunc("PUT /transactions/{id}", staff(c.Transaction.Update))
	mux.HandleFunc("DELETE /transactions/{id}", staff(c.Transaction.Delete))

	// Debts
	mux.HandleFunc("GET /debts", staff(c.Debt.List))
	mux.HandleFunc("GET /debts/{id}", staff(c.Debt.Get))
	mux.HandleFunc("POST /debts", staff(c.Debt.Create))
	mux.HandleFunc("PUT /debts/{id}", staff(c.Debt.Update))
	mux.HandleFunc("DELETE /debts/{id}", staff(c.Debt.Delete))
	mux.HandleFunc("POST /debts/{id}/payments", staff(c.Debt.RecordPayment))

	// Reference data
	mux.HandleFunc("GET /categories", authed(c.Category.List))
	mux.HandleFunc("GET /categories/{id}", authed(c.Category.Get))
	mux.HandleFunc("POST /categories", admin(c.Category.Create))
	mux.HandleFunc("PUT /categories/{id}", admin(c.Category.Update))
	mux.HandleFunc("DELETE /categories/{id}", admin(c.Category.Delete))

	mux.HandleFunc("GET /companies", authed(c.Company.List))
	mux.HandleFunc("GET /companies/{id}", authed(c.Company.Get))
	mux.HandleFunc("POST /companies", admin(c.Company.Create))
	mux.HandleFunc("PUT /companies/{id}", admin(c.Company.Update))
	mux.HandleFunc("DELETE /companies/{id}", admin(c.Company.Delete))

	mux.HandleFunc("GET /positions", authed(c.Position.List))
	mux.HandleFunc("GET /positions/{id}", authed(c.Position.Get))
	mux.HandleFunc("POST /positions", admin(c.Position.Create))
	mux.HandleFunc("PUT /positions/{id}", admin(c.Position.Update))
	mux.HandleFunc("DELETE /positions/{id}", admin(c.Position.Delete))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
