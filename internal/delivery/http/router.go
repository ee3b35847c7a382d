package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventsexpress/internal/delivery/http/controllers"
	"eventsexpress/internal/delivery/http/middleware"
	"eventsexpress/internal/domain"
)

// Controllers bundles the controllers the router mounts.
type Controllers struct {
	Events     *controllers.EventController
	Visitors   *controllers.VisitorController
	Auth       *controllers.AuthController
	Users      *controllers.UserController
	Categories *controllers.CategoryController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Events
	mux.HandleFunc("POST /events", auth(c.Events.Create))
	mux.HandleFunc("GET /events", c.Events.ListUpcoming)
	mux.HandleFunc("GET /events/{eventID}", c.Events.GetByID)
	mux.HandleFunc("PUT /events/{eventID}", auth(c.Events.Edit))
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Events.Delete))
	mux.HandleFunc("POST /events/{eventID}/next", auth(c.Events.CreateNext))
	mux.HandleFunc("PUT /events/{eventID}/next", auth(c.Events.EditNext))
	mux.HandleFunc("POST /events/{eventID}/block", auth(c.Events.Block))
	mux.HandleFunc("POST /events/{eventID}/unblock", auth(c.Events.Unblock))
	mux.HandleFunc("POST /events/{eventID}/rates", auth(c.Events.SetRate))
	mux.HandleFunc("GET /events/{eventID}/rates", c.Events.GetRate)

	// Visitors
	mux.HandleFunc("POST /events/{eventID}/visitors", auth(c.Visitors.Join))
	mux.HandleFunc("DELETE /events/{eventID}/visitors", auth(c.Visitors.Withdraw))
	mux.HandleFunc("GET /events/{eventID}/visitors", auth(c.Visitors.List))
	mux.HandleFunc("PATCH /events/{eventID}/visitors/{userID}", auth(c.Visitors.Decide))

	// Auth
	mux.HandleFunc("POST /auth/register", c.Auth.Register)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("GET /auth/confirm/{userID}/{token}", c.Auth.ConfirmEmail)

	// Users
	mux.HandleFunc("GET /users/me", auth(c.Users.Me))
	mux.HandleFunc("GET /users/me/events", auth(c.Events.ListOwned))
	mux.HandleFunc("PUT /users/me/categories", auth(c.Users.SetCategories))

	// Categories
	mux.HandleFunc("GET /categories", c.Categories.List)
	mux.HandleFunc("POST /categories", auth(c.Categories.Create))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
