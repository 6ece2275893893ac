package router

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"todo/internal/http/handlers"
)

// New builds the API mux. A non-empty token requires
// "Authorization: Bearer <token>" on every route except /healthz.
func New(handler *handlers.TaskHandler, token string, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handler.Health)

	api := http.NewServeMux()
	api.HandleFunc("GET /tasks", handler.List)
	api.HandleFunc("POST /tasks", handler.Create)
	api.HandleFunc("POST /tasks/clear-completed", handler.ClearCompleted)
	api.HandleFunc("GET /tasks/{id}", handler.Get)
	api.HandleFunc("PATCH /tasks/{id}", handler.Edit)
	api.HandleFunc("DELETE /tasks/{id}", handler.Delete)
	api.HandleFunc("POST /tasks/{id}/toggle", handler.Toggle)

	var h http.Handler = api
	if token != "" {
		h = requireBearer(token, h)
	}
	mux.Handle("/tasks", h)
	mux.Handle("/tasks/", h)

	return logRequests(log, mux)
}

func requireBearer(token string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			w.Header().Set("WWW-Authenticate", "Bearer")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}` + "\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
