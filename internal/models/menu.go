package models

import (
	"fmt"

	"github.com/jinzhu/gorm"
)

// MenuItem represents a dish on the menu
type MenuItem struct {
	gorm.Model
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	ImageData []byte  `json:"-"`
	ImageType string  `json:"imageType,omitempty"`
}

// MenuCategory represents the category of a menu item
type MenuCategory string

const (
	// Menu categories
	MenuCategoryDrinks     MenuCategory = "drinks"
	MenuCategoryStarters   MenuCategory = "starters"
	MenuCategoryMainCourse MenuCategory = "main_course"
	MenuCategoryDesserts   MenuCategory = "desserts"
	MenuCategoryOthers     MenuCategory = "others"
)

// ValidateMenuItem validates a menu item
func ValidateMenuItem(item *MenuItem) error {
	if item.Name == "" {
		return fmt.Errorf("menu item name is required")
	}
	if item.Price < 0 {
		return fmt.Errorf("menu item price must not be negative")
	}
	return nil
}

// HasImage reports whether the item has stored image data.
func (mi *MenuItem) HasImage() bool {
	return len(mi.ImageData) > 0
}

// IsInCategory checks if the item belongs to a specific category
func (mi *MenuItem) IsInCategory(category MenuCategory) bool {
	return mi.Category == string(category)
}
