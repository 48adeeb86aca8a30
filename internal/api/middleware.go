package api

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"tableside/internal/models"
	"tableside/internal/monitoring"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// RequestID attaches a request ID to every request and echoes it in
// the X-Request-ID response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// Metrics records per-request Prometheus counters.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		monitoring.HTTPRequests.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}

// AuthRequired handles JWT authentication for admin routes. Tokens
// are issued by the external identity provider; we only verify the
// signature and pull the principal's email claim.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if email, ok := claims["email"].(string); ok {
				c.Set("principal_email", email)
			}
		}

		c.Next()
	}
}

// TrackVisitor counts qualifying page visits against the singleton
// visitor counter. Admin, health, and metrics traffic is not counted.
// The increment is a single SQL expression, atomic at the storage
// layer. A tracking failure never blocks the request.
func TrackVisitor(db *gorm.DB, monitor *monitoring.Monitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/admin") || path == "/health" || path == "/metrics" {
			c.Next()
			return
		}

		res := db.Model(&models.Visitor{}).UpdateColumn("count", gorm.Expr("count + ?", 1))
		if res.Error != nil {
			log.Printf("Visitor tracking error: %v", res.Error)
		} else if res.RowsAffected == 0 {
			if err := db.Create(&models.Visitor{Count: 1}).Error; err != nil {
				log.Printf("Visitor tracking error: %v", err)
			}
		}

		monitor.IncrMetric("visits")
		monitoring.VisitsTracked.Inc()

		c.Next()
	}
}
