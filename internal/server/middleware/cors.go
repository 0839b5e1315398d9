package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/pipelinescope/core/internal/config"
)

// Cors allows the configured front-end origins to call the API from a browser.
// Preflight requests are answered here and never reach the wrapped handler.
func Cors(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
