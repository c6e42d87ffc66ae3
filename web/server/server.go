// Package server is the bot's status HTTP server, exposing a health check and Prometheus metrics.
package server

import (
	"context"
	"net/http"
	"time"

	"emperror.dev/errors"
	"github.com/devguild/devlin/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Status is what the server knows about the running bot.
type Status interface {
	Latency() time.Duration
}

type Server struct {
	Version string
	Start   time.Time

	status   Status
	registry *prometheus.Registry
	log      *zap.SugaredLogger

	router chi.Router
}

// New returns a Server. registry may be nil, in which case /metrics is not served.
func New(status Status, registry *prometheus.Registry, version string, start time.Time, log *zap.SugaredLogger) *Server {
	s := &Server{
		Version:  version,
		Start:    start,
		status:   status,
		registry: registry,
		log:      log,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", s.health)
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type healthResponse struct {
	Status    string  `json:"status"`
	Version   string  `json:"version"`
	Uptime    string  `json:"uptime"`
	StartedAt string  `json:"started_at"`
	LatencyMS float64 `json:"latency_ms"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Version:   s.Version,
		Uptime:    common.FormatDuration(time.Since(s.Start)),
		StartedAt: s.Start.UTC().Format(time.RFC3339),
	}

	if s.status != nil {
		resp.LatencyMS = float64(s.status.Latency()) / float64(time.Millisecond)
	}

	render.JSON(w, r, resp)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(sctx); err != nil {
			s.log.Errorf("shutting down status server: %v", err)
		}
	}()

	s.log.Infof("Status server listening on %v", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return errors.Wrap(err, "serving status server")
}
