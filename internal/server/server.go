// Package server exposes a workbook Store over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ukaji3/tablecalc-go/internal/logging"
	"github.com/ukaji3/tablecalc-go/pkg/tablecalc"
)

// Server is the HTTP front end of a Store.
type Server struct {
	store  *tablecalc.Store
	logger *slog.Logger
	router *gin.Engine
}

// NewServer builds the router. mode is a gin mode ("release", "debug", "test").
func NewServer(store *tablecalc.Store, logger *slog.Logger, mode string) *Server {
	if mode != "" {
		gin.SetMode(mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{store: store, logger: logger, router: router}
	router.Use(s.requestLogger())
	s.registerRoutes(router)
	return s
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/health", s.Health)

	router.GET("/tables", s.ListTables)
	router.GET("/tables/:name", s.GetTable)
	router.GET("/tables/:name/calc", s.CalcTable)
	router.GET("/names", s.ListNames)
	router.GET("/names/:name/calc", s.CalcName)
	router.GET("/calc", s.CalcRange)
	router.POST("/reload", s.Reload)

	// Legacy query-parameter routes, kept for existing clients.
	router.GET("/list_tables", s.ListTableNames)
	router.GET("/get_table_details", s.GetTableDetails)
	router.GET("/row_sum", s.RowSum)
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "address", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger attaches a per-request logger to the request context and logs
// one line when the request completes.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		logger := s.logger.With("request_id", uuid.New().String())
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), logger))

		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"remote_addr", c.ClientIP())
	}
}
