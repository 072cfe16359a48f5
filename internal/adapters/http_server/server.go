package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"hotelos_gateway/internal/i18n"
)

// Server is the gateway router. Routes are added by MountHandlers and Mount.
type Server struct{ mux *chi.Mux }

// New installs the shared middleware chain: proxy-aware client IP, request
// ids, panic recovery, a whole-request timeout, language resolution,
// metrics and the access log.
func New(b *i18n.Bundle, timeout time.Duration) *Server {
	m := chi.NewRouter()

	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(timeout))
	m.Use(Localize(b))
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	m.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, problem{Status: http.StatusNotFound, Detail: i18n.FromContext(r.Context()).T("common.notFound")})
	})
	m.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, problem{Status: http.StatusMethodNotAllowed, Detail: i18n.FromContext(r.Context()).T("common.badRequest")})
	})

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches an extra handler such as /metrics.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
