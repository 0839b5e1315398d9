package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pipelinescope/core/internal/config"
)

func TestCors(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	cors := Cors(config.CORSConfig{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowCredentials: true,
		MaxAge:           600,
	})

	t.Run("answers preflight from the allowed origin", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodOptions, "/pipelines/parse", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		rec := httptest.NewRecorder()

		cors(handler).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK && rec.Code != http.StatusNoContent {
			t.Errorf("expected 200 or 204, got %d", rec.Code)
		}
		if called {
			t.Error("preflight must not reach the wrapped handler")
		}
		if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "http://localhost:5173" {
			t.Errorf("expected allowed origin header, got %q", origin)
		}
		if methods := rec.Header().Get("Access-Control-Allow-Methods"); methods == "" {
			t.Error("expected Access-Control-Allow-Methods header to be set")
		}
		if creds := rec.Header().Get("Access-Control-Allow-Credentials"); creds != "true" {
			t.Errorf("expected credentials to be allowed, got %q", creds)
		}
		if maxAge := rec.Header().Get("Access-Control-Max-Age"); maxAge != "600" {
			t.Errorf("expected max age 600, got %q", maxAge)
		}
	})

	t.Run("passes POST request to next handler", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/pipelines/parse", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()

		cors(handler).ServeHTTP(rec, req)

		if !called {
			t.Error("expected wrapped handler to be called")
		}
		if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "http://localhost:5173" {
			t.Errorf("expected allowed origin header, got %q", origin)
		}
	})

	t.Run("does not allow unknown origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/pipelines/parse", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()

		cors(handler).ServeHTTP(rec, req)

		if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "" {
			t.Errorf("expected no allowed origin header, got %q", origin)
		}
	})

	t.Run("requests without origin are served", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		cors(handler).ServeHTTP(rec, req)

		if !called || rec.Code != http.StatusOK {
			t.Errorf("expected request to reach handler, got status %d", rec.Code)
		}
	})
}
