package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/country-outline/pkg/config"
	"github.com/Sriram-PR/country-outline/pkg/models"
)

// Outliner produces the outline for a country
type Outliner interface {
	Outline(ctx context.Context, country string) (*models.OutlineResult, error)
}

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	outliner Outliner
	log      *logrus.Entry
	cfg      config.AppConfig
}

// NewServer creates and configures the HTTP server. cfg is expected to be
// validated already.
func NewServer(outliner Outliner, cfg config.AppConfig, log *logrus.Entry) *Server {
	s := &Server{
		outliner: outliner,
		log:      log.WithField("component", "api"),
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORS.AllowedOrigins,
		AllowedMethods:   s.cfg.CORS.AllowedMethods,
		AllowedHeaders:   s.cfg.CORS.AllowedHeaders,
		AllowCredentials: config.GetEffectiveAllowCredentials(s.cfg.CORS),
	}))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/api/outline", s.handleOutline)

	s.router = r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.DefaultServiceInfo())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}
