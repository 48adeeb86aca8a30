package reporting

import (
	"fmt"

	"tableside/internal/models"

	"github.com/jinzhu/gorm"
)

// Stats is the admin dashboard snapshot, recomputed from a full scan
// of the order and user stores on every call.
type Stats struct {
	TotalOrders   int     `json:"totalOrders"`
	PendingOrders int     `json:"pendingOrders"`
	Revenue       float64 `json:"revenue"`
	ActiveUsers   int     `json:"activeUsers"`
	VisitorCount  int64   `json:"visitorCount"`
}

// UserReport is a user with their order history and completed spend,
// as shown on the admin users page.
type UserReport struct {
	models.User
	Orders     []models.Order `json:"orders"`
	TotalSpent float64        `json:"totalSpent"`
}

// Revenue sums order totals over every non-cancelled order. Pending
// orders count: money on the table is still expected money.
func Revenue(orders []models.Order) float64 {
	var sum float64
	for _, o := range orders {
		if o.Status != string(models.OrderStatusCancelled) {
			sum += o.Total
		}
	}
	return sum
}

// TotalSpent sums order totals over completed orders only. A user has
// spent only what was actually fulfilled.
func TotalSpent(orders []models.Order) float64 {
	var sum float64
	for _, o := range orders {
		if o.Status == string(models.OrderStatusCompleted) {
			sum += o.Total
		}
	}
	return sum
}

// ComputeStats builds the dashboard snapshot from loaded records.
func ComputeStats(orders []models.Order, users []models.User, visitorCount int64) Stats {
	stats := Stats{
		TotalOrders:  len(orders),
		Revenue:      Revenue(orders),
		ActiveUsers:  len(users),
		VisitorCount: visitorCount,
	}
	for _, o := range orders {
		if o.Status == string(models.OrderStatusPending) {
			stats.PendingOrders++
		}
	}
	return stats
}

// Service computes reports by scanning the backing store.
type Service struct {
	db *gorm.DB
}

// NewService creates a reporting service over the given database.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Stats scans all orders and users and returns a fresh snapshot.
// A missing visitor counter reads as zero.
func (s *Service) Stats() (Stats, error) {
	var orders []models.Order
	if err := s.db.Find(&orders).Error; err != nil {
		return Stats{}, fmt.Errorf("failed to load orders: %w", err)
	}

	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return Stats{}, fmt.Errorf("failed to load users: %w", err)
	}

	var visitorCount int64
	var visitor models.Visitor
	if err := s.db.First(&visitor).Error; err == nil {
		visitorCount = visitor.Count
	}

	return ComputeStats(orders, users, visitorCount), nil
}

// UserReports returns every user, newest first, with their order
// history sorted newest first and their completed spend.
func (s *Service) UserReports() ([]UserReport, error) {
	var users []models.User
	if err := s.db.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	reports := make([]UserReport, 0, len(users))
	for _, user := range users {
		var orders []models.Order
		err := s.db.Preload("Items").
			Where("user_email = ?", user.Email).
			Order("order_time desc").
			Find(&orders).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load orders for %s: %w", user.Email, err)
		}

		reports = append(reports, UserReport{
			User:       user,
			Orders:     orders,
			TotalSpent: TotalSpent(orders),
		})
	}

	return reports, nil
}
