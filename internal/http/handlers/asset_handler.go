package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"asset_manager/internal/assets"
	"asset_manager/internal/auth"
	"asset_manager/internal/models"
)

// assetFilters applies the optional list/export query filters onto a query.
func assetFilters(c *gin.Context, query *gorm.DB) *gorm.DB {
	if name := c.Query("name"); name != "" {
		query = query.Where("name ILIKE ?", "%"+name+"%")
	}
	if serial := c.Query("serial_number"); serial != "" {
		query = query.Where("serial_number = ?", serial)
	}
	if typeID := c.Query("type_id"); typeID != "" {
		query = query.Where("type_id = ?", typeID)
	}
	if description := c.Query("description"); description != "" {
		query = query.Where("description ILIKE ?", "%"+description+"%")
	}
	if responsibleID := c.Query("responsible_id"); responsibleID != "" {
		query = query.Where("responsible_id = ?", responsibleID)
	}
	if locationID := c.Query("location_id"); locationID != "" {
		query = query.Where("location_id = ?", locationID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if cost := c.Query("cost"); cost != "" {
		query = query.Where("cost = ?", cost)
	}
	if date := c.Query("acquisition_date"); date != "" {
		query = query.Where("acquisition_date = ?", date)
	}
	return query
}

func preloadAssetRefs(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Location", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Preload("Type", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "category")
		}).
		Preload("Responsible", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name")
		})
}

// ListAssets returns a filtered, paginated asset page plus per-status counts.
func ListAssets(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if limit < 1 || limit > 100 {
			limit = 10
		}

		query := assetFilters(c, db.Model(&models.Asset{}))

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var list []models.Asset
		err := preloadAssetRefs(assetFilters(c, db.Model(&models.Asset{}))).
			Order("id DESC").
			Limit(limit).
			Offset((page - 1) * limit).
			Find(&list).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		counts := map[models.AssetStatus]int64{}
		for _, status := range []models.AssetStatus{models.StatusActive, models.StatusInactive, models.StatusDecommissioned} {
			var n int64
			if err := db.Model(&models.Asset{}).Where("status = ?", status).Count(&n).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			counts[status] = n
		}

		c.JSON(http.StatusOK, gin.H{
			"assets":               list,
			"total":                total,
			"activeAssets":         counts[models.StatusActive],
			"inactiveAssets":       counts[models.StatusInactive],
			"decommissionedAssets": counts[models.StatusDecommissioned],
		})
	}
}

// AssetStats returns active/inactive counts and the summed cost of assets
// still in service.
func AssetStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var active, inactive int64
		if err := db.Model(&models.Asset{}).Where("status = ?", models.StatusActive).Count(&active).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := db.Model(&models.Asset{}).Where("status = ?", models.StatusInactive).Count(&inactive).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var cost float64
		err := db.Model(&models.Asset{}).
			Where("status IN ?", []models.AssetStatus{models.StatusActive, models.StatusInactive}).
			Select("COALESCE(SUM(cost), 0)").
			Scan(&cost).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"active":   active,
			"inactive": inactive,
			"cost":     cost,
		})
	}
}

// CreateAsset inserts a new asset. Creation is not audited; the change log
// starts with the first update.
func CreateAsset(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.CurrentActor(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var input struct {
			Name            string             `json:"name" binding:"required"`
			SerialNumber    int                `json:"serial_number" binding:"required"`
			TypeID          uint               `json:"type_id" binding:"required"`
			Description     string             `json:"description"`
			ResponsibleID   uint               `json:"responsible_id" binding:"required"`
			LocationID      uint               `json:"location_id" binding:"required"`
			Status          models.AssetStatus `json:"status"`
			Cost            float64            `json:"cost" binding:"required"`
			AcquisitionDate time.Time          `json:"acquisition_date" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Status == "" {
			input.Status = models.StatusActive
		}

		asset := models.Asset{
			Name:            input.Name,
			SerialNumber:    input.SerialNumber,
			TypeID:          input.TypeID,
			Description:     input.Description,
			ResponsibleID:   input.ResponsibleID,
			LocationID:      input.LocationID,
			Status:          input.Status,
			Cost:            input.Cost,
			AcquisitionDate: input.AcquisitionDate,
			CreatedBy:       claims.UserID,
		}
		if err := db.Create(&asset).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := preloadAssetRefs(db).First(&asset, asset.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"asset": asset, "message": "Asset created successfully"})
	}
}

// UpdateAsset applies an audited partial update through the mutation service.
func UpdateAsset(svc *assets.Service, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.CurrentActor(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset id"})
			return
		}

		var input struct {
			assets.UpdatePatch
			ChangeReason string `json:"change_reason"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		actor := assets.Actor{ID: claims.UserID, Role: claims.Role}
		asset, err := svc.Update(c.Request.Context(), uint(id), actor, input.UpdatePatch, input.ChangeReason)
		if err != nil {
			writeMutationError(c, err)
			return
		}

		if err := preloadAssetRefs(db).First(asset, asset.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"asset": asset, "message": "Asset updated successfully"})
	}
}

// DeleteAsset soft-deletes an asset through the mutation service.
func DeleteAsset(svc *assets.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.CurrentActor(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset id"})
			return
		}

		var input struct {
			ChangeReason string `json:"change_reason"`
		}
		_ = c.ShouldBindJSON(&input)

		actor := assets.Actor{ID: claims.UserID, Role: claims.Role}
		if err := svc.Delete(c.Request.Context(), uint(id), actor, input.ChangeReason); err != nil {
			writeMutationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
	}
}

// GetAssetChangelog returns the audit trail for one asset, newest first.
func GetAssetChangelog(svc *assets.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid asset id"})
			return
		}

		entries, err := svc.Changelog(c.Request.Context(), uint(id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"changelog": entries})
	}
}

func writeMutationError(c *gin.Context, err error) {
	var forbidden *assets.ForbiddenTransitionError
	switch {
	case errors.Is(err, assets.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
	case errors.Is(err, assets.ErrNoChanges):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no changes were made to the asset"})
	case errors.Is(err, assets.ErrMissingAuditContext):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": forbidden.Error(), "field": forbidden.Field})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
