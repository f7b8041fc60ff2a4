package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	authHTTP "github.com/allisson/employees/internal/auth/http"
	employeeHTTP "github.com/allisson/employees/internal/employee/http"
	"github.com/allisson/employees/internal/metrics"
)

// APIRoutes holds the handlers and middleware for the /api/v1 route group.
//
// The group splits into three zones:
//   - register and login are open, optionally behind the login rate limiter
//   - refresh and logout sit behind the refresh cookie gate
//   - the employee record routes sit behind the access token gate
type APIRoutes struct {
	SessionHandler  *authHTTP.SessionHandler
	EmployeeHandler *employeeHTTP.EmployeeHandler

	AccessTokenMiddleware  gin.HandlerFunc
	RefreshTokenMiddleware gin.HandlerFunc

	// LoginRateLimitMiddleware is optional; nil disables rate limiting.
	LoginRateLimitMiddleware gin.HandlerFunc
}

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	logger *slog.Logger

	routes           *APIRoutes
	corsEnabled      bool
	corsAllowOrigins string
	meterProvider    metric.MeterProvider
	metricsNamespace string
}

// NewServer creates a new HTTP server. The database handle is used by the
// readiness endpoint; passing nil reports the database component as down.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// WithAPIRoutes attaches the /api/v1 route group to the server.
func (s *Server) WithAPIRoutes(routes *APIRoutes) *Server {
	s.routes = routes
	return s
}

// WithCORS enables CORS for the given comma-separated origin list.
func (s *Server) WithCORS(enabled bool, allowOrigins string) *Server {
	s.corsEnabled = enabled
	s.corsAllowOrigins = allowOrigins
	return s
}

// WithHTTPMetrics enables per-request metrics recording.
func (s *Server) WithHTTPMetrics(meterProvider metric.MeterProvider, namespace string) *Server {
	s.meterProvider = meterProvider
	s.metricsNamespace = namespace
	return s
}

// buildRouter assembles the Gin engine with middleware and routes.
func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(s.corsEnabled, s.corsAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if s.meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(s.meterProvider, s.metricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	if s.routes != nil {
		s.registerAPIRoutes(router)
	}

	return router
}

// registerAPIRoutes wires the /api/v1 route group.
func (s *Server) registerAPIRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")

	// Open session routes
	open := api.Group("")
	if s.routes.LoginRateLimitMiddleware != nil {
		open.Use(s.routes.LoginRateLimitMiddleware)
	}
	open.POST("/register", s.routes.SessionHandler.RegisterHandler)
	open.POST("/login", s.routes.SessionHandler.LoginHandler)

	// Refresh cookie gated routes
	session := api.Group("")
	session.Use(s.routes.RefreshTokenMiddleware)
	session.POST("/refresh", s.routes.SessionHandler.RefreshHandler)
	session.POST("/logout", s.routes.SessionHandler.LogoutHandler)

	// Access token gated routes
	protected := api.Group("")
	protected.Use(s.routes.AccessTokenMiddleware)
	protected.POST("/save", s.routes.EmployeeHandler.CreateHandler)
	protected.GET("/employees", s.routes.EmployeeHandler.ListHandler)
	protected.GET("/employees/:id", s.routes.EmployeeHandler.GetHandler)
	protected.PUT("/employees", s.routes.EmployeeHandler.UpdateHandler)
	protected.DELETE("/employees/:id", s.routes.EmployeeHandler.DeleteHandler)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic.
// The database connection is pinged with a short timeout.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Error("readiness check failed", slog.Any("error", err))
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	if s.server.Handler == nil {
		s.server.Handler = s.buildRouter()
	}
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.buildRouter()

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
