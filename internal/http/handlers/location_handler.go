package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"asset_manager/internal/models"
)

func ListLocations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var locations []models.Location
		if err := db.Find(&locations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, locations)
	}
}

func GetLocation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var location models.Location
		if err := db.First(&location, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		c.JSON(http.StatusOK, location)
	}
}

func CreateLocation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name        string `json:"name" binding:"required"`
			Description string `json:"description"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		location := models.Location{Name: input.Name, Description: input.Description}
		if err := db.Create(&location).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"location": location, "message": "Location created successfully"})
	}
}

func UpdateLocation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var location models.Location
		if err := db.First(&location, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}

		var input struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Name != nil {
			location.Name = *input.Name
		}
		if input.Description != nil {
			location.Description = *input.Description
		}

		if err := db.Save(&location).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"location": location, "message": "Location updated successfully"})
	}
}

// DeleteLocation refuses to remove a location while assets are assigned to it.
func DeleteLocation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var location models.Location
		if err := db.First(&location, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}

		var assigned int64
		if err := db.Model(&models.Asset{}).Where("location_id = ?", location.ID).Count(&assigned).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if assigned > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "location still has assets assigned"})
			return
		}

		if err := db.Delete(&location).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
	}
}
