package api

import (
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"tableside/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// ListMenu retrieves all menu items
func (s *Server) ListMenu(c *gin.Context) {
	var items []models.MenuItem
	if err := s.db.Find(&items).Error; err != nil {
		log.Printf("Failed to list menu: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load menu"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// loadMenuItem fetches the menu item named by the path ID, writing
// the 404 or 500 response itself on failure. The bool reports whether
// the caller may proceed.
func (s *Server) loadMenuItem(c *gin.Context) (models.MenuItem, bool) {
	var item models.MenuItem
	err := s.db.Where("id = ?", c.Param("id")).First(&item).Error
	if gorm.IsRecordNotFoundError(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return item, false
	}
	if err != nil {
		log.Printf("Failed to load menu item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load menu item"})
		return item, false
	}
	return item, true
}

// GetMenuItem retrieves a single menu item by ID
func (s *Server) GetMenuItem(c *gin.Context) {
	item, ok := s.loadMenuItem(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, item)
}

// GetMenuItemImage serves the stored image bytes for a menu item
func (s *Server) GetMenuItemImage(c *gin.Context) {
	item, ok := s.loadMenuItem(c)
	if !ok {
		return
	}
	if !item.HasImage() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item has no image"})
		return
	}
	c.Data(http.StatusOK, item.ImageType, item.ImageData)
}

// CreateMenuItem adds a menu item. Accepts JSON or a multipart form
// with an optional image file.
func (s *Server) CreateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := s.bindMenuItem(c, &item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if item.Category == "" {
		item.Category = string(models.MenuCategoryOthers)
	}

	if err := models.ValidateMenuItem(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.db.Create(&item).Error; err != nil {
		log.Printf("Failed to create menu item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save menu item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem edits a menu item in place. Edits overwrite; there
// is no versioning. The stored image is kept unless a new file is
// uploaded.
func (s *Server) UpdateMenuItem(c *gin.Context) {
	item, ok := s.loadMenuItem(c)
	if !ok {
		return
	}

	if err := s.bindMenuItem(c, &item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if item.Category == "" {
		item.Category = string(models.MenuCategoryOthers)
	}

	if err := models.ValidateMenuItem(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.db.Save(&item).Error; err != nil {
		log.Printf("Failed to update menu item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update menu item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem removes a menu item. Stored orders keep their item
// snapshots regardless.
func (s *Server) DeleteMenuItem(c *gin.Context) {
	item, ok := s.loadMenuItem(c)
	if !ok {
		return
	}

	if err := s.db.Delete(&item).Error; err != nil {
		log.Printf("Failed to delete menu item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete menu item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}

// bindMenuItem fills a menu item from either a JSON body or a
// multipart form (fields: name, price, category; file: image).
func (s *Server) bindMenuItem(c *gin.Context, item *models.MenuItem) error {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		item.Name = c.PostForm("name")
		item.Category = c.PostForm("category")

		price, err := strconv.ParseFloat(c.PostForm("price"), 64)
		if err != nil {
			return err
		}
		item.Price = price

		if file, err := c.FormFile("image"); err == nil {
			f, err := file.Open()
			if err != nil {
				return err
			}
			defer f.Close()

			data, err := io.ReadAll(f)
			if err != nil {
				return err
			}
			item.ImageData = data
			item.ImageType = file.Header.Get("Content-Type")
		}
		return nil
	}

	var payload struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Category string  `json:"category"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		return err
	}

	item.Name = payload.Name
	item.Price = payload.Price
	item.Category = payload.Category
	return nil
}
