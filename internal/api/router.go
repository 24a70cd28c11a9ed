package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/dormshop-backend/internal/api/handlers"
	"github.com/baharkarakas/dormshop-backend/internal/api/httpx"
	"github.com/baharkarakas/dormshop-backend/internal/apperr"
	"github.com/baharkarakas/dormshop-backend/internal/metrics"
	"github.com/baharkarakas/dormshop-backend/internal/middleware"
)

// RouterDeps is everything the HTTP surface needs. Uploads is nil when
// uploads live in object storage rather than on local disk.
type RouterDeps struct {
	Auth         *middleware.AuthMiddleware
	RateLimiter  *middleware.RateLimiter
	Metrics      *metrics.Metrics
	DB           handlers.Pinger
	AuthH        *handlers.AuthHandler
	Users        *handlers.UserHandler
	Items        *handlers.ItemHandler
	Posts        *handlers.PostHandler
	Locations    *handlers.LocationHandler
	Transactions *handlers.TransactionHandler
	Uploads      *handlers.UploadHandler
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover)
	if d.Metrics != nil {
		r.Use(middleware.HTTPMetrics(d.Metrics))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(d.Auth.Authenticate)
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.Handler)
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, r, apperr.NotFound("no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusMethodNotAllowed, httpx.APIError{Error: httpx.ErrorBody{
			Message: r.Method + " is not allowed on " + r.URL.Path,
			Status:  http.StatusMethodNotAllowed,
		}})
	})

	// health & metrics
	r.Get("/health", handlers.Health(d.DB))
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler())
	}
	if d.Uploads != nil {
		r.Get("/uploads/{filename}", d.Uploads.Serve)
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/token", d.AuthH.Token)
		r.Post("/register", d.AuthH.Register)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", d.Users.List)
		r.Patch("/", d.Users.UpdateSelf)
		r.Get("/{username}", d.Users.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSelfOrAdmin("username"))
			r.Patch("/{username}", d.Users.Update)
			r.Delete("/{username}", d.Users.Delete)
			r.Patch("/{username}/rating/{seller}", d.Users.Rate)
		})
	})

	r.Route("/items", func(r chi.Router) {
		r.Get("/{id}", d.Items.Get)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Post("/", d.Items.Create)
			r.Patch("/{id}", d.Items.Update)
			r.Delete("/{id}", d.Items.Delete)
		})
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", d.Posts.List)
		r.Get("/{id}", d.Posts.Get)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Post("/", d.Posts.Create)
			r.Patch("/{id}", d.Posts.Update)
			r.Delete("/{id}", d.Posts.Delete)
		})
	})

	r.Route("/locations", func(r chi.Router) {
		r.Get("/", d.Locations.List)
		r.Get("/{id}", d.Locations.Get)
		r.Get("/{id}/map", d.Locations.Map)
		r.With(middleware.RequireUser).Post("/", d.Locations.Create)
		r.With(middleware.RequireUser).Post("/geocode", d.Locations.Geocode)
		r.With(middleware.RequireAdmin).Delete("/{id}", d.Locations.Delete)
	})

	r.Route("/transactions", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Post("/", d.Transactions.Create)
		r.Get("/", d.Transactions.List)
		r.Get("/{id}", d.Transactions.Get)
		r.Patch("/{id}", d.Transactions.Update)
	})

	return r
}
