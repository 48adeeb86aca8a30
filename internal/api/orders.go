package api

import (
	"log"
	"net/http"
	"time"

	"tableside/internal/models"
	"tableside/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// PlaceOrder accepts a submitted cart and persists it as a pending
// order. The service boundary owns its invariants: required fields,
// the mobile-number pattern, and the total matching the sum of item
// subtotals are all checked here. Submitted items are stored as-is;
// prices are snapshots, never recomputed from the live menu.
func (s *Server) PlaceOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	order.Status = string(models.OrderStatusPending)
	if order.OrderTime.IsZero() {
		order.OrderTime = time.Now()
	}

	if err := models.ValidateOrder(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := s.db.Create(&order).Error; err != nil {
		log.Printf("Failed to create order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save order"})
		return
	}

	// The user upsert is a secondary effect: its failure is logged
	// and never rolls back the saved order.
	s.ensureUser(&order)

	s.monitor.IncrMetric("orders_placed")
	monitoring.OrdersPlaced.Inc()

	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

// ListOrders retrieves orders sorted by order time, newest first.
// Supports ?user=email and ?table=id filters.
func (s *Server) ListOrders(c *gin.Context) {
	query := s.db.Preload("Items").Order("order_time desc")

	if email := c.Query("user"); email != "" {
		query = query.Where("user_email = ?", email)
	}
	if tableID := c.Query("table"); tableID != "" {
		query = query.Where("table_id = ?", tableID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		log.Printf("Failed to list orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// loadOrder fetches the order named by the path ID, writing the 404
// or 500 response itself on failure. A missing record and a storage
// failure are distinct outcomes. The bool reports whether the caller
// may proceed.
func (s *Server) loadOrder(c *gin.Context) (models.Order, bool) {
	var order models.Order
	err := s.db.Preload("Items").Where("id = ?", c.Param("id")).First(&order).Error
	if gorm.IsRecordNotFoundError(err) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return order, false
	}
	if err != nil {
		log.Printf("Failed to load order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load order"})
		return order, false
	}
	return order, true
}

// GetOrder retrieves one order by ID. Returns 404 if order not found.
func (s *Server) GetOrder(c *gin.Context) {
	order, ok := s.loadOrder(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// UpdateOrderStatus updates the status field only. Only the pending
// state may transition; completed and cancelled are terminal, and an
// illegal transition is rejected with a conflict.
func (s *Server) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if !models.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid status: " + req.Status})
		return
	}

	order, ok := s.loadOrder(c)
	if !ok {
		return
	}

	if !models.CanTransition(order.Status, req.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   "cannot transition order from " + order.Status + " to " + req.Status,
		})
		return
	}

	if err := s.db.Model(&order).Update("status", req.Status).Error; err != nil {
		log.Printf("Failed to update order status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update order status"})
		return
	}

	monitoring.OrderStatusChanges.WithLabelValues(req.Status).Inc()
	s.monitor.IncrMetric("orders_" + req.Status)

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// orderUpdate is the PUT payload for admin corrections. Pointer
// fields distinguish absent from zero, so a total can legitimately be
// corrected to 0.
type orderUpdate struct {
	TableID      string             `json:"tableId"`
	CustomerName string             `json:"customerName"`
	PhoneNumber  string             `json:"phoneNumber"`
	UserEmail    string             `json:"userEmail"`
	Items        []models.OrderItem `json:"items"`
	Status       string             `json:"status"`
	Total        *float64           `json:"total"`
	OrderTime    *time.Time         `json:"orderTime"`
}

// UpdateOrder handles PUT requests for admin corrections. Submitted
// fields replace the stored ones and the result is revalidated. The
// status lifecycle holds here too: terminal orders reject status
// changes with a conflict, same as the status endpoint.
func (s *Server) UpdateOrder(c *gin.Context) {
	order, ok := s.loadOrder(c)
	if !ok {
		return
	}

	var updateData orderUpdate
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if updateData.TableID != "" {
		order.TableID = updateData.TableID
	}
	if updateData.CustomerName != "" {
		order.CustomerName = updateData.CustomerName
	}
	if updateData.PhoneNumber != "" {
		order.PhoneNumber = updateData.PhoneNumber
	}
	if updateData.UserEmail != "" {
		order.UserEmail = updateData.UserEmail
	}
	if updateData.Status != "" {
		if !models.ValidOrderStatus(updateData.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid status: " + updateData.Status})
			return
		}
		if !models.CanTransition(order.Status, updateData.Status) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   "cannot transition order from " + order.Status + " to " + updateData.Status,
			})
			return
		}
		order.Status = updateData.Status
	}
	if updateData.Total != nil {
		order.Total = *updateData.Total
	}
	if updateData.OrderTime != nil {
		order.OrderTime = *updateData.OrderTime
	}

	// Replace items if provided
	if len(updateData.Items) > 0 {
		if err := s.db.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			log.Printf("Failed to replace order items: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update order"})
			return
		}
		for i := range updateData.Items {
			updateData.Items[i].OrderID = order.ID
		}
		order.Items = updateData.Items
	}

	if err := models.ValidateOrder(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := s.db.Save(&order).Error; err != nil {
		log.Printf("Failed to update order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// DeleteOrder handles DELETE requests to remove an order. Deleting an
// already-deleted order returns a plain 404.
func (s *Server) DeleteOrder(c *gin.Context) {
	order, ok := s.loadOrder(c)
	if !ok {
		return
	}

	if err := s.db.Delete(&order).Error; err != nil {
		log.Printf("Failed to delete order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to delete order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order deleted successfully"})
}

// ensureUser creates or backfills the user record linked to an order
// by email. Profiles are populated progressively: the name and phone
// captured with an order fill empty fields on an existing record.
func (s *Server) ensureUser(order *models.Order) {
	var user models.User
	err := s.db.Where("email = ?", order.UserEmail).First(&user).Error
	if gorm.IsRecordNotFoundError(err) {
		user = models.User{
			Email: order.UserEmail,
			Name:  order.CustomerName,
			Phone: order.PhoneNumber,
		}
		if err := s.db.Create(&user).Error; err != nil {
			log.Printf("Failed to create user %s: %v", order.UserEmail, err)
		}
		return
	}
	if err != nil {
		log.Printf("Failed to look up user %s: %v", order.UserEmail, err)
		return
	}

	changed := false
	if user.Name == "" && order.CustomerName != "" {
		user.Name = order.CustomerName
		changed = true
	}
	if user.Phone == "" && order.PhoneNumber != "" {
		user.Phone = order.PhoneNumber
		changed = true
	}
	if changed {
		if err := s.db.Save(&user).Error; err != nil {
			log.Printf("Failed to backfill user %s: %v", order.UserEmail, err)
		}
	}
}
