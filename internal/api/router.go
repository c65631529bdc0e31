package api

import (
	"net/http"

	"github.com/avelasquez/entertainment-api/internal/api/handlers"
	"github.com/avelasquez/entertainment-api/internal/auth"
	"github.com/avelasquez/entertainment-api/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tokens *auth.TokenManager,
	userService services.UserServiceProvider,
	entertainmentService services.EntertainmentServiceProvider,
	staticDir string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS allows any origin; the API carries no cookie auth.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	entertainmentHandler := handlers.NewEntertainmentHandler(entertainmentService)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Welcome to the Entertainment CRUD API!"))
	})

	r.Post("/register", userHandler.Register)
	r.Post("/login", userHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(tokens.Middleware)
		r.Get("/me", userHandler.GetMe)
	})

	// The catalog endpoints are public; the auth middleware only gates /me.
	r.Route("/entertainment", func(r chi.Router) {
		r.Get("/", entertainmentHandler.GetAll)
		r.Post("/", entertainmentHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", entertainmentHandler.Get)
			r.Put("/", entertainmentHandler.Update)
			r.Delete("/", entertainmentHandler.Delete)
		})
	})

	// Anything unmatched falls through to the static assets directory.
	if staticDir != "" {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.NotFound(fileServer.ServeHTTP)
	}

	return r
}
