package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Rechidesigns/RechiGPT/internal/server/service"
)

type Router struct {
	services *service.Services
	logger   *log.Logger
}

func NewRouter(services *service.Services, logger *log.Logger) http.Handler {
	r := &Router{services: services, logger: logger}
	mux := chi.NewRouter()

	mux.Use(middleware.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	mux.Get("/health", r.handleHealth)
	mux.Get("/swagger.yaml", r.handleSwagger)
	mux.Post("/register", r.handleRegister)
	mux.Post("/login", r.handleLogin)

	mux.Group(func(pr chi.Router) {
		pr.Use(r.authMiddleware)
		pr.Post("/chat", r.handleChat)
		pr.Get("/chat/history", r.handleHistory)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (r *Router) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}
