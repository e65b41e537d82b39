package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/mercata/storefront/services/user-service/internal/application/auth"
	"github.com/mercata/storefront/services/user-service/internal/infrastructure/redis"
	"github.com/mercata/storefront/services/user-service/internal/transport/http/handlers"
	"github.com/mercata/storefront/services/user-service/internal/transport/http/middleware"
)

type Deps struct {
	Users  *handlers.UserHandler
	Health *handlers.HealthHandler

	Signer   auth.TokenSigner
	UserRepo auth.UserRepo

	// Limiter may be nil; the credential routes then run unthrottled.
	Limiter     *redis.FixedWindowLimiter
	CORSOrigins []string
}

// New assembles the HTTP surface. Everything user-facing lives under /api;
// /healthz stays outside for load balancers.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.BodyLimit(0))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: true, // session cookie
		MaxAge:           300,
	}))

	sessionMW := middleware.Session(d.Signer)
	adminMW := middleware.AdminOnly(d.UserRepo)

	r.Get("/healthz", d.Health.Healthz)

	r.Route("/api", func(r chi.Router) {
		// Credential routes take the brunt of brute-force traffic.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(d.Limiter, 30, time.Minute))
			r.Post("/users", d.Users.Register)
			r.Post("/auth", d.Users.Login)
		})

		r.Post("/logout", d.Users.Logout)

		r.Group(func(r chi.Router) {
			r.Use(sessionMW)
			r.Get("/users/profile", d.Users.Profile)
			r.Put("/users/profile", d.Users.UpdateProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(sessionMW, adminMW)
			r.Get("/users", d.Users.ListUsers)
			r.Get("/users/{id}", d.Users.GetUser)
			r.Put("/users/{id}", d.Users.UpdateUser)
			r.Delete("/users/{id}", d.Users.DeleteUser)
		})
	})

	return r
}
