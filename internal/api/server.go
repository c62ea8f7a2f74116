// Package api serves the knowledge base over HTTP: the question list with its
// order, search and paging controls, question threads, the answer form, tags
// and ranked search.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/listenupapp/stackqa/internal/logger"
	"github.com/listenupapp/stackqa/internal/metrics"
	"github.com/listenupapp/stackqa/internal/ratelimit"
)

// Options configures optional server collaborators. The zero value is usable.
type Options struct {
	// Metrics records request and domain metrics and serves /metrics. Nil disables both.
	Metrics *metrics.Metrics
	// WriteLimiter throttles POST operations per client IP. Nil disables throttling.
	WriteLimiter *ratelimit.KeyedRateLimiter
	// CORSOrigins lists allowed origins; empty allows any.
	CORSOrigins []string
	// TrustProxy takes the client IP from X-Forwarded-For / X-Real-IP. Only
	// enable it behind a reverse proxy that overwrites those headers.
	TrustProxy bool
	// Now stamps relative ages in responses (default time.Now).
	Now func() time.Time
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services     *Services
	router       *chi.Mux
	api          huma.API
	metrics      *metrics.Metrics
	writeLimiter *ratelimit.KeyedRateLimiter
	now          func() time.Time
	logger       *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, opts Options, log *slog.Logger) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		services:     services,
		router:       chi.NewRouter(),
		metrics:      opts.Metrics,
		writeLimiter: opts.WriteLimiter,
		now:          opts.Now,
		logger:       log,
	}

	s.setupMiddleware(opts.CORSOrigins, opts.TrustProxy)

	humaConfig := huma.DefaultConfig("StackQA API", "1.0.0")
	humaConfig.Info.Description = "Questions, answers and tags of the knowledge base."
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()
	s.api.UseMiddleware(s.rateLimitWrites)

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

func (s *Server) setupMiddleware(origins []string, trustProxy bool) {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(middleware.RequestID)
	if trustProxy {
		s.router.Use(middleware.RealIP)
	}
	s.router.Use(logger.Middleware(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	s.router.Use(s.metrics.Middleware)
}

func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerQuestionRoutes()
	s.registerAnswerRoutes()
	s.registerTagRoutes()
	s.registerSearchRoutes()

	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler())
	}
}
