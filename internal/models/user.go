package models

import "github.com/jinzhu/gorm"

// User holds the minimal profile linked to orders by email. Records
// are created implicitly on a user's first order and filled in
// progressively; the phone number is backfilled from orders.
type User struct {
	gorm.Model
	Email string `gorm:"unique_index" json:"email"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Visitor is the singleton page-visit counter.
type Visitor struct {
	gorm.Model
	Count int64 `json:"count"`
}
