package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/MixOptimizer_Go/internal/config"
	"github.com/osse101/MixOptimizer_Go/internal/handler"
	"github.com/osse101/MixOptimizer_Go/internal/logger"
	"github.com/osse101/MixOptimizer_Go/internal/metrics"
	"github.com/osse101/MixOptimizer_Go/internal/search"
	"github.com/osse101/MixOptimizer_Go/internal/sse"
)

type Server struct {
	httpServer *http.Server
}

// NewServer wires the HTTP API around svc. A nil events hub leaves the
// event stream unmounted.
func NewServer(cfg *config.Config, svc search.Service, profiles handler.ProfileSource, events *sse.Hub) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           NewRouter(cfg, svc, profiles, events),
			ReadHeaderTimeout: ReadHeaderTimeout,
			ReadTimeout:       ReadTimeout,
			IdleTimeout:       IdleTimeout,
		},
	}
}

// NewRouter builds the route tree. Middleware runs in the order it is added.
func NewRouter(cfg *config.Config, svc search.Service, profiles handler.ProfileSource, events *sse.Hub) http.Handler {
	r := chi.NewRouter()

	detector := NewSuspiciousActivityDetector(RateWindow, RateLimitPerWindow)

	r.Use(chimiddleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(catalogReady(svc.Catalog())))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", handler.HandleGetCatalog(svc))
		r.Post("/mix", handler.HandleEvaluateMix(svc))
		r.Post("/search", handler.HandleSearch(svc))

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", handler.HandleListProfiles(profiles))
			r.Post("/{name}/search", handler.HandleProfileSearch(svc, profiles))
		})

		if events != nil {
			r.Get("/events", sse.Handler(events))
		}
	})

	return r
}

// catalogReady fails while the catalog offers nothing to search
func catalogReady(c search.Catalog) handler.HealthChecker {
	return handler.HealthCheckFunc(func(context.Context) error {
		if len(c.BaseItems()) == 0 || len(c.Modifiers()) == 0 {
			return errors.New(handler.HealthMsgCatalogEmpty)
		}
		return nil
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// FlushError flushes the underlying writer. A successful flush sends the
// headers, so later writes must not send them again.
func (rw *responseWriter) FlushError() error {
	if err := http.NewResponseController(rw.ResponseWriter).Flush(); err != nil {
		return err
	}
	rw.written = true
	return nil
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// loggingMiddleware gives every request an id, logs it under that id and
// echoes the id in X-Request-ID
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slices.ContainsFunc(quietPaths, func(p string) bool { return strings.HasPrefix(r.URL.Path, p) }) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitized := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitized[k] = []string{RedactedValue}
			} else {
				sanitized[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitized)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start serves until Stop is called. It returns nil after a graceful stop.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
