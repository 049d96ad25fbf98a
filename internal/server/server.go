// Package server is the HTTP surface of usercards.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/h2hsecure/usercards/internal/domain"
	"github.com/h2hsecure/usercards/internal/metrics"
	"github.com/h2hsecure/usercards/internal/view"
)

type Server struct {
	svc     domain.IService
	cfg     *domain.Config
	metrics *metrics.Provider
	server  *http.Server
	closing atomic.Bool
}

// NewServer wires the routes. provider may be nil when metrics are disabled.
func NewServer(cfg *domain.Config, svc domain.IService, provider *metrics.Provider) *Server {
	s := &Server{
		svc:     svc,
		cfg:     cfg,
		metrics: provider,
	}

	s.server = &http.Server{
		Addr:         cfg.Listen,
		Handler:      s.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(LoggerMiddleware())

	if s.metrics != nil {
		router.Use(metrics.HTTPMetricsMiddleware(s.metrics.MeterProvider(), s.cfg.Metrics.Namespace))
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	router.SetHTMLTemplate(view.Templates())

	router.GET("/", s.mountHandler)
	router.GET("/views/:id", s.viewHandler)
	router.DELETE("/views/:id", s.unmountHandler)
	router.GET("/api/views/:id", s.stateHandler)

	router.GET("/healthz", s.healthHandler)
	router.GET("/readyz", s.readinessHandler)

	return router
}

// Handler returns the http.Handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start blocks serving until Shutdown.
func (s *Server) Start(ctx context.Context) error {
	log.Info().Str("addr", s.server.Addr).Msg("starting http server")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.closing.Store(true)
	log.Info().Msg("shutting down http server")
	return s.server.Shutdown(ctx)
}
