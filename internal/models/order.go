package models

import (
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/jinzhu/gorm"
)

// Order represents a customer order placed from a table link
type Order struct {
	gorm.Model
	TableID      string      `json:"tableId"`
	CustomerName string      `json:"customerName"`
	PhoneNumber  string      `json:"phoneNumber"`
	UserEmail    string      `json:"userEmail"`
	Items        []OrderItem `gorm:"foreignkey:OrderID" json:"items"`
	Status       string      `json:"status"`
	Total        float64     `json:"total"`
	OrderTime    time.Time   `json:"orderTime"`
}

// OrderItem is a line item snapshot captured at order time.
// Name and price are copied from the menu when the order is placed;
// later menu edits never alter stored orders.
type OrderItem struct {
	gorm.Model
	OrderID  uint    `json:"-"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderStatus represents the possible states of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// totalTolerance absorbs float rounding when comparing a submitted
// total against the sum of item subtotals.
const totalTolerance = 0.005

// phonePattern matches a regional 10-digit mobile number.
var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to
// another. Completed and cancelled are terminal; a same-status update
// is treated as a no-op and allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	return from == string(OrderStatusPending)
}

// ItemsTotal returns the sum of item subtotals.
func (o *Order) ItemsTotal() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// ValidateOrder validates an order at the service boundary
func ValidateOrder(o *Order) error {
	if o.TableID == "" {
		return fmt.Errorf("tableId is required")
	}
	if o.CustomerName == "" {
		return fmt.Errorf("customerName is required")
	}
	if o.PhoneNumber == "" {
		return fmt.Errorf("phoneNumber is required")
	}
	if !phonePattern.MatchString(o.PhoneNumber) {
		return fmt.Errorf("phoneNumber must be a valid 10-digit mobile number")
	}
	if o.UserEmail == "" {
		return fmt.Errorf("userEmail is required")
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("order must have at least one item")
	}
	for _, item := range o.Items {
		if item.Name == "" {
			return fmt.Errorf("item name is required")
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item quantity must be greater than 0")
		}
		if item.Price < 0 {
			return fmt.Errorf("item price must not be negative")
		}
	}
	if math.Abs(o.Total-o.ItemsTotal()) > totalTolerance {
		return fmt.Errorf("total does not match the sum of item subtotals")
	}
	return nil
}
