package api

import (
	"net/http"

	"tableside/internal/config"
	"tableside/internal/monitoring"
	"tableside/internal/reporting"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// Server is the HTTP API for the ordering platform
type Server struct {
	router    *gin.Engine
	db        *gorm.DB
	cfg       *config.Config
	monitor   *monitoring.Monitor
	reporting *reporting.Service
}

// NewServer creates a new API server instance
func NewServer(cfg *config.Config, db *gorm.DB, monitor *monitoring.Monitor) *Server {
	server := &Server{
		router:    gin.Default(),
		db:        db,
		cfg:       cfg,
		monitor:   monitor,
		reporting: reporting.NewService(db),
	}

	server.setupRoutes()
	return server
}

// Router returns the Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.router.Use(RequestID())
	s.router.Use(Metrics())
	s.router.Use(TrackVisitor(s.db, s.monitor))

	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Tableside API is running"})
	})

	api := s.router.Group("/api")
	{
		// Customer surface
		api.GET("/menu", s.ListMenu)
		api.GET("/menu/:id", s.GetMenuItem)
		api.GET("/menu/:id/image", s.GetMenuItemImage)

		api.POST("/orders", s.PlaceOrder)
		api.GET("/orders", s.ListOrders)
		api.GET("/orders/:id", s.GetOrder)
	}

	// Admin surface, guarded by tokens from the identity provider
	protected := api.Group("")
	protected.Use(AuthRequired(s.cfg.Auth.JWTSecret))
	{
		protected.PATCH("/orders/:id/status", s.UpdateOrderStatus)
		protected.PUT("/orders/:id", s.UpdateOrder)
		protected.DELETE("/orders/:id", s.DeleteOrder)

		protected.POST("/menu", s.CreateMenuItem)
		protected.PUT("/menu/:id", s.UpdateMenuItem)
		protected.DELETE("/menu/:id", s.DeleteMenuItem)

		admin := protected.Group("/admin")
		admin.GET("/stats", s.GetStats)
		admin.GET("/users", s.GetUsers)
		admin.GET("/metrics", s.GetMetrics)
	}
}
