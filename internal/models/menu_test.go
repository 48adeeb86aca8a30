package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMenuItem(t *testing.T) {
	item := &MenuItem{Name: "Masala Chai", Price: 30, Category: string(MenuCategoryDrinks)}
	assert.NoError(t, ValidateMenuItem(item))

	assert.ErrorContains(t, ValidateMenuItem(&MenuItem{Price: 30}), "name is required")
	assert.ErrorContains(t, ValidateMenuItem(&MenuItem{Name: "Chai", Price: -1}), "must not be negative")

	// Free items are allowed
	assert.NoError(t, ValidateMenuItem(&MenuItem{Name: "Water", Price: 0}))
}

func TestMenuItemHelpers(t *testing.T) {
	item := &MenuItem{Name: "Gulab Jamun", Price: 90, Category: string(MenuCategoryDesserts)}

	assert.True(t, item.IsInCategory(MenuCategoryDesserts))
	assert.False(t, item.IsInCategory(MenuCategoryDrinks))
	assert.False(t, item.HasImage())

	item.ImageData = []byte{0xff, 0xd8}
	assert.True(t, item.HasImage())
}
