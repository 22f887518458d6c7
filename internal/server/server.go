package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/osse101/FerretBot_Go/docs"

	"github.com/osse101/FerretBot_Go/internal/database"
	"github.com/osse101/FerretBot_Go/internal/handler"
	"github.com/osse101/FerretBot_Go/internal/logger"
	"github.com/osse101/FerretBot_Go/internal/loots"
	"github.com/osse101/FerretBot_Go/internal/metrics"
	"github.com/osse101/FerretBot_Go/internal/prizepool"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Limits         RateLimits
}

// Services are the application services exposed over HTTP
type Services struct {
	Prizes   prizepool.Service
	Crediter loots.UnpaidCrediter
	Unpaid   handler.UnpaidLister
	Linker   handler.NameLinker
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, dbPool database.Pool, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, dbPool, svc),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the chi router with the middleware stack and every route
func NewRouter(opts Options, dbPool database.Pool, svc Services) http.Handler {
	r := chi.NewRouter()
	monitor := NewActivityMonitor(opts.Limits)

	// Outermost first
	r.Use(SecureHeaders)
	r.Use(RateLimit(opts.TrustedProxies, monitor))
	r.Use(RequireAPIKey(opts.APIKey, opts.TrustedProxies, monitor))
	r.Use(LimitBody(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	prizeHandler := handler.NewPrizeHandler(svc.Prizes)
	lootsHandler := handler.NewLootsHandler(svc.Crediter, svc.Unpaid, svc.Linker)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/prizes", func(r chi.Router) {
			r.Get("/", prizeHandler.HandleListPools)
			r.Post("/roll", prizeHandler.HandleRoll)
			r.Post("/chance", prizeHandler.HandleSetChance)
			r.Post("/consume", prizeHandler.HandleConsume)
		})

		r.Route("/loots", func(r chi.Router) {
			r.Post("/credit", lootsHandler.HandleCredit)
			r.Get("/unpaid", lootsHandler.HandleListUnpaid)
			r.Post("/link", lootsHandler.HandleLink)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
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

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hasPathPrefix(r.URL.Path, quietPaths) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

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

// redactHeaders copies h with credentials replaced
func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
			continue
		}
		out[k] = v
	}
	return out
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
