package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"focustrack/internal/config"
)

// Server exposes the read-only dashboard API.
type Server struct {
	handler *Handler
	server  *http.Server
}

// NewServer builds the router and the underlying HTTP server.
func NewServer(cfg *config.Config, handler *Handler) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.Health)
		r.Get("/apps", handler.Apps)
		r.Get("/status", handler.Status)
		r.Get("/report", handler.Report)
		r.Get("/calendar/{date}", handler.CalendarDay)
		r.Route("/focus", func(r chi.Router) {
			r.Get("/", handler.FocusStatus)
			r.Post("/start", handler.FocusStart)
			r.Post("/stop", handler.FocusStop)
		})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{handler: handler, server: httpServer}
}

func (s *Server) Start() error {
	log.Info().Str("addr", s.server.Addr).Msg("starting web server")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("shutting down web server")
	return s.server.Shutdown(ctx)
}

func (s *Server) Address() string {
	return s.server.Addr
}
