package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rgehrsitz/rrspgo/internal/calculation"
)

// Server exposes the calculation engine over JSON HTTP.
type Server struct {
	Engine   *calculation.CalculationEngine
	Metrics  *Metrics
	Registry *prometheus.Registry
	Logger   *slog.Logger

	router *gin.Engine
}

// NewServer builds a server around engine with its own metrics registry.
func NewServer(engine *calculation.CalculationEngine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &Server{
		Engine:   engine,
		Metrics:  NewMetrics(reg),
		Registry: reg,
		Logger:   logger,
	}
	s.router = s.setupRoutes()
	return s
}

// Router returns the gin engine serving all routes.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) setupRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.instrument())

	router.GET("/health", HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	{
		v1.POST("/tax", s.HandleTax)
		v1.POST("/brackets", s.HandleBrackets)
		v1.POST("/projection", s.HandleProjection)
		v1.POST("/split", s.HandleSplit)
		v1.POST("/spread", s.HandleSpread)
		v1.POST("/benefits", s.HandleBenefits)
		v1.POST("/credits", s.HandleCredits)
		v1.POST("/scenarios", s.HandleScenarios)
	}
	return router
}

// instrument records request counts and latency per matched route.
func (s *Server) instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		elapsed := time.Since(start)

		s.Metrics.RequestsTotal.WithLabelValues(route, status).Inc()
		s.Metrics.RequestDurationSeconds.WithLabelValues(route).Observe(elapsed.Seconds())
		s.Logger.Debug("request served", "method", c.Request.Method, "route", route, "status", status, "duration", elapsed)
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
