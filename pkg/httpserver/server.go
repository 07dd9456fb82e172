// Package httpserver exposes an admin HTTP surface over a running queue
// engine: queue listing/attributes for operators, and a Prometheus scrape
// endpoint.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/julesChu12/rsmq"
	"github.com/julesChu12/rsmq/pkg/logger"
	"github.com/julesChu12/rsmq/pkg/metrics"
)

// QueueLister is the subset of rsmq.Client[T] the admin server reads.
type QueueLister interface {
	ListQueues(ctx context.Context) ([]string, error)
	GetQueueAttributes(ctx context.Context, qname string) (*rsmq.QueueAttributes, error)
}

// Server wraps a gin.Engine exposing /queues, /queues/:name and /metrics.
type Server struct {
	engine *gin.Engine
	log    *logger.Logger
}

// New builds the admin server. serviceName tags the OpenTelemetry spans it
// emits for each request.
func New(source QueueLister, serviceName string, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewDefault()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(tracingMiddleware(serviceName))

	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.NewCollector(source, metrics.Options{Namespace: "rsmq"}))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/queues", func(c *gin.Context) {
		names, err := source.ListQueues(c.Request.Context())
		if err != nil {
			log.WithContext(c.Request.Context()).Errorw("list queues failed", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"queues": names})
	})

	r.GET("/queues/:name", func(c *gin.Context) {
		name := c.Param("name")
		attrs, err := source.GetQueueAttributes(c.Request.Context(), name)
		if err != nil {
			if errors.Is(err, rsmq.ErrQueueNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "queue not found"})
				return
			}
			log.WithContext(c.Request.Context()).Errorw("get queue attributes failed", "queue", name, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, attrs)
	})

	return &Server{engine: r, log: log}
}

// Handler returns the underlying http.Handler, for use with a custom
// *http.Server or in tests via httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe blocks serving on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
