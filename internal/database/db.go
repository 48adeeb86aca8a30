package database

import (
	"fmt"
	"log"
	"time"

	"tableside/internal/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect
	_ "github.com/mattn/go-sqlite3"              // SQLite driver
)

var db *gorm.DB

// InitDB initializes the database connection for the configured driver.
// Supported drivers are "sqlite3" and "postgres".
func InitDB(driver, dsn string) error {
	var err error
	db, err = gorm.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.DB().SetConnMaxLifetime(time.Hour)

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}

// CloseDB closes the database connection
func CloseDB() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// Migrate creates and updates all required tables.
func Migrate(db *gorm.DB) {
	db.AutoMigrate(
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.User{},
		&models.Visitor{},
	)
}

// Seed ensures essential data exists in the database
func Seed(db *gorm.DB) {
	// Create the visitor counter row if it doesn't exist
	var visitorCount int64
	db.Model(&models.Visitor{}).Count(&visitorCount)
	if visitorCount == 0 {
		if err := db.Create(&models.Visitor{Count: 0}).Error; err != nil {
			log.Printf("Failed to create visitor counter: %v", err)
		}
	}

	// Create a starter menu if none exists
	var menuCount int64
	db.Model(&models.MenuItem{}).Count(&menuCount)
	if menuCount == 0 {
		defaultMenu := []models.MenuItem{
			{Name: "Masala Chai", Price: 30, Category: string(models.MenuCategoryDrinks)},
			{Name: "Paneer Tikka", Price: 220, Category: string(models.MenuCategoryStarters)},
			{Name: "Butter Chicken", Price: 340, Category: string(models.MenuCategoryMainCourse)},
			{Name: "Garlic Naan", Price: 60, Category: string(models.MenuCategoryMainCourse)},
			{Name: "Gulab Jamun", Price: 90, Category: string(models.MenuCategoryDesserts)},
		}
		for _, item := range defaultMenu {
			if err := db.Create(&item).Error; err != nil {
				log.Printf("Failed to create menu item %q: %v", item.Name, err)
			}
		}
	}
}
