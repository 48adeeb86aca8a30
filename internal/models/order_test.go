package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validOrder() Order {
	return Order{
		TableID:      "T1",
		CustomerName: "Asha",
		PhoneNumber:  "9876543210",
		UserEmail:    "asha@example.com",
		Items: []OrderItem{
			{Name: "Butter Chicken", Quantity: 2, Price: 340},
			{Name: "Garlic Naan", Quantity: 1, Price: 60},
		},
		Total:     740,
		OrderTime: time.Now(),
	}
}

func TestValidateOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Order)
		wantErr string
	}{
		{
			name:   "valid order",
			mutate: func(o *Order) {},
		},
		{
			name:    "missing tableId",
			mutate:  func(o *Order) { o.TableID = "" },
			wantErr: "tableId is required",
		},
		{
			name:    "missing customerName",
			mutate:  func(o *Order) { o.CustomerName = "" },
			wantErr: "customerName is required",
		},
		{
			name:    "missing phoneNumber",
			mutate:  func(o *Order) { o.PhoneNumber = "" },
			wantErr: "phoneNumber is required",
		},
		{
			name:    "phone too short",
			mutate:  func(o *Order) { o.PhoneNumber = "98765" },
			wantErr: "valid 10-digit mobile number",
		},
		{
			name:    "phone with bad leading digit",
			mutate:  func(o *Order) { o.PhoneNumber = "1234567890" },
			wantErr: "valid 10-digit mobile number",
		},
		{
			name:    "missing userEmail",
			mutate:  func(o *Order) { o.UserEmail = "" },
			wantErr: "userEmail is required",
		},
		{
			name:    "no items",
			mutate:  func(o *Order) { o.Items = nil; o.Total = 0 },
			wantErr: "at least one item",
		},
		{
			name:    "item without name",
			mutate:  func(o *Order) { o.Items[0].Name = "" },
			wantErr: "item name is required",
		},
		{
			name:    "zero quantity",
			mutate:  func(o *Order) { o.Items[0].Quantity = 0 },
			wantErr: "quantity must be greater than 0",
		},
		{
			name:    "negative price",
			mutate:  func(o *Order) { o.Items[0].Price = -5 },
			wantErr: "price must not be negative",
		},
		{
			name:    "total mismatch",
			mutate:  func(o *Order) { o.Total = 100 },
			wantErr: "total does not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := validOrder()
			tt.mutate(&order)

			err := ValidateOrder(&order)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestItemsTotal(t *testing.T) {
	order := validOrder()
	assert.InDelta(t, 740, order.ItemsTotal(), 0.001)

	order.Items = nil
	assert.Zero(t, order.ItemsTotal())
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		allowed  bool
	}{
		{"pending", "completed", true},
		{"pending", "cancelled", true},
		{"pending", "pending", true},
		{"completed", "pending", false},
		{"completed", "cancelled", false},
		{"completed", "completed", true},
		{"cancelled", "pending", false},
		{"cancelled", "completed", false},
		{"cancelled", "cancelled", true},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.allowed, CanTransition(tt.from, tt.to),
			"transition %s -> %s", tt.from, tt.to)
	}
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus("pending"))
	assert.True(t, ValidOrderStatus("completed"))
	assert.True(t, ValidOrderStatus("cancelled"))
	assert.False(t, ValidOrderStatus("shipped"))
	assert.False(t, ValidOrderStatus(""))
}
