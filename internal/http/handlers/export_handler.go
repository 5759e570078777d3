package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"asset_manager/internal/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportAssets streams the filtered asset inventory as an XLSX workbook.
func ExportAssets(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var list []models.Asset
		err := preloadAssetRefs(assetFilters(c, db.Model(&models.Asset{}))).
			Order("id ASC").
			Find(&list).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Asset Inventory"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{
			"ID", "Name", "Serial Number", "Type", "Description",
			"Responsible", "Location", "Status", "Cost", "Acquisition Date",
		}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, asset := range list {
			typeName, locationName, responsible := "", "", ""
			if asset.Type != nil {
				typeName = asset.Type.Name
			}
			if asset.Location != nil {
				locationName = asset.Location.Name
			}
			if asset.Responsible != nil {
				responsible = asset.Responsible.FirstName + " " + asset.Responsible.LastName
			}

			values := []interface{}{
				asset.ID, asset.Name, asset.SerialNumber, typeName, asset.Description,
				responsible, locationName, string(asset.Status), asset.Cost,
				asset.AcquisitionDate.Format("2006-01-02"),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		filename := fmt.Sprintf("asset_inventory_%d.xlsx", time.Now().Unix())
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Header("Content-Type", xlsxContentType)
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}
