// Package server is the HTTP layer. It translates component results and
// errors into JSON responses; nothing below it knows about status codes.
package server

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/proofpal/internal/tutor"
)

// Handler holds the request handlers' dependencies.
type Handler struct {
	svc    *tutor.Service
	static http.Handler
}

// New builds the router. staticFS is the directory served at / (the
// embedded UI unless an override directory is configured).
func New(svc *tutor.Service, staticFS fs.FS) http.Handler {
	h := &Handler{
		svc:    svc,
		static: http.FileServerFS(staticFS),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Post("/api/generate-problem", h.GenerateProblem)
	r.Post("/api/grade-conditions", h.GradeConditions)
	r.Post("/api/hint", h.Hint)

	r.Get("/healthz", h.HealthCheck)

	// Everything else is a static asset; the file server returns 404
	// for paths that don't exist.
	r.Get("/*", h.static.ServeHTTP)

	return r
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
