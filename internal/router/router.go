package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"matelog-backend/internal/handlers"
	"matelog-backend/internal/middleware"
)

func New(
	sessionAuth *middleware.SessionAuth,
	userHandler *handlers.UserHandler,
	trackingHandler *handlers.TrackingHandler,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Requested-With", "X-CSRFToken"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// ──── Identity Routes ────
	r.Route("/users", func(r chi.Router) {
		r.Get("/csrf", userHandler.CSRFToken)
		r.Get("/choices", userHandler.Choices)

		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(sessionAuth.Require)
			r.Post("/logout", userHandler.Logout)
			r.Get("/profile", userHandler.GetProfile)
			r.Put("/profile", userHandler.UpdateProfile)
		})
	})

	// ──── Tracking Routes ────
	r.Route("/tracking", func(r chi.Router) {
		// Screen activities tolerate anonymous callers
		r.Group(func(r chi.Router) {
			r.Use(sessionAuth.Optional)
			r.Post("/iniciar", trackingHandler.StartActivity)
			r.Post("/finalizar", trackingHandler.FinishActivity)
		})

		r.Group(func(r chi.Router) {
			r.Use(sessionAuth.Require)
			r.Post("/sesion/iniciar", trackingHandler.StartSession)
			r.Post("/sesion/finalizar", trackingHandler.FinishSession)
			r.Post("/volver-contenido", trackingHandler.ReturnToContent)
		})
	})

	return r
}
