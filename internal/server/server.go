// Package server exposes the timeline engine over HTTP.
//
// A graphical host that cannot embed Go posts its items, settings and
// viewport to POST /v1/frame on every scroll or fold and draws the returned
// frame. The server holds no per-client state: collapsed keys and scroll
// offsets arrive with each request, exactly as they do for the CLI.
//
// Routes:
//
//	GET  /healthz             liveness
//	GET  /v1/version          build information
//	POST /v1/frame            compute one frame
//	GET  /v1/frames           list stored frames
//	GET  /v1/frames/{name}    fetch a stored frame
package server

import (
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/roadmap/pkg/frame"
	"github.com/matzehuels/roadmap/pkg/pipeline"
	"github.com/matzehuels/roadmap/pkg/source"
)

// MaxRequestBody caps the size of a POST /v1/frame body.
const MaxRequestBody = 16 << 20

// Config wires the server's collaborators.
type Config struct {
	// Runner computes frames. Required.
	Runner *pipeline.Runner

	// Source supplies items for requests that carry none. Optional.
	Source source.Source

	// Store holds named frames. Optional; without it the frame routes
	// answer 404 and saving is rejected.
	Store frame.Store

	Logger *log.Logger
}

// Server is the HTTP host.
type Server struct {
	cfg    Config
	logger *log.Logger
}

// New returns a server for cfg.
func New(cfg Config) (*Server, error) {
	if cfg.Runner == nil {
		return nil, errMissingRunner
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{cfg: cfg, logger: logger}, nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(observe)
	r.Use(securityHeaders)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Post("/frame", s.handleFrame)
		r.Get("/frames", s.handleListFrames)
		r.Get("/frames/{name}", s.handleGetFrame)
	})
	return r
}
