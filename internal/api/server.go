package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pixelveil/pixelveil/internal/config"
	"github.com/pixelveil/pixelveil/internal/history"
)

// Server wires the steganography operations, analysis, and history log
// into an HTTP API.
type Server struct {
	cfg     *config.Config
	history *history.Log
	metrics *Metrics
}

// NewServer creates a server. The history log may be nil, in which case
// operations are not recorded and /history reports the feature as
// disabled.
func NewServer(cfg *config.Config, hist *history.Log) *Server {
	return &Server{
		cfg:     cfg,
		history: hist,
		metrics: NewMetrics(),
	}
}

// Router builds the HTTP handler: middleware, routes, metrics, and
// transparent response compression.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Stego-Truncated", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(apiKeyMiddleware(s.cfg.APIKey))
		}

		r.Post("/inject", s.metrics.InstrumentHandler("POST", "/api/v1/inject", s.handleInject))
		r.Post("/detect", s.metrics.InstrumentHandler("POST", "/api/v1/detect", s.handleDetect))
		r.Get("/history", s.metrics.InstrumentHandler("GET", "/api/v1/history", s.handleHistory))
	})

	return gzhttp.GzipHandler(r)
}

// Start runs the server until the listener fails.
func (s *Server) Start() error {
	addr := s.cfg.Addr()
	log.Printf("pixelveil API listening on %s", addr)
	return http.ListenAndServe(addr, s.Router())
}
