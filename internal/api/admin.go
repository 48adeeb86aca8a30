package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStats returns the dashboard snapshot. Every call is a fresh full
// scan of the order and user stores; there is no caching, so a status
// change is visible to the immediately following stats call.
func (s *Server) GetStats(c *gin.Context) {
	stats, err := s.reporting.Stats()
	if err != nil {
		log.Printf("Failed to compute stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetUsers returns every user with their order history and completed
// spend for the admin users page.
func (s *Server) GetUsers(c *gin.Context) {
	reports, err := s.reporting.UserReports()
	if err != nil {
		log.Printf("Failed to build user reports: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": reports})
}

// GetMetrics returns the in-process monitor snapshot
func (s *Server) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.GetMetrics())
}
