package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"asset_manager/internal/models"
)

func ListTypes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var types []models.AssetType
		if err := db.Find(&types).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, types)
	}
}

func GetType(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var t models.AssetType
		if err := db.First(&t, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "type not found"})
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

func CreateType(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name        string `json:"name" binding:"required"`
			Category    string `json:"category" binding:"required"`
			Description string `json:"description"`
			ParentID    *uint  `json:"parent_id"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		t := models.AssetType{
			Name:        input.Name,
			Category:    input.Category,
			Description: input.Description,
			ParentID:    input.ParentID,
		}
		if err := db.Create(&t).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"type": t, "message": "Type created successfully"})
	}
}

func UpdateType(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var t models.AssetType
		if err := db.First(&t, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "type not found"})
			return
		}

		var input struct {
			Name        *string `json:"name"`
			Category    *string `json:"category"`
			Description *string `json:"description"`
			ParentID    *uint   `json:"parent_id"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Name != nil {
			t.Name = *input.Name
		}
		if input.Category != nil {
			t.Category = *input.Category
		}
		if input.Description != nil {
			t.Description = *input.Description
		}
		if input.ParentID != nil {
			t.ParentID = input.ParentID
		}

		if err := db.Save(&t).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"type": t, "message": "Type updated successfully"})
	}
}

// DeleteType refuses to remove a type while assets are classified under it.
func DeleteType(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var t models.AssetType
		if err := db.First(&t, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "type not found"})
			return
		}

		var assigned int64
		if err := db.Model(&models.Asset{}).Where("type_id = ?", t.ID).Count(&assigned).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if assigned > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type still has assets assigned"})
			return
		}

		if err := db.Delete(&t).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Type deleted successfully"})
	}
}
