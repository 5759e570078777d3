package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"asset_manager/internal/assets"
	"asset_manager/internal/auth"
	"asset_manager/internal/http/handlers"
	"asset_manager/internal/models"
)

func NewRouter(db *gorm.DB, jwtSecret string) *gin.Engine {
	r := gin.Default()

	svc := assets.NewService(db)
	authMW := auth.JWT(db, jwtSecret)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.POST("/api/v1/auth/login", handlers.LoginHandler(db, jwtSecret))

	api := r.Group("/api/v1", authMW)
	{
		// Assets. Update stays open to admin and manager at the route level;
		// the mutation service decides per field which role may change what.
		api.GET("/assets", handlers.ListAssets(db))
		api.GET("/assets/stats", handlers.AssetStats(db))
		api.GET("/assets/export",
			auth.RequireRole(models.RoleAdmin, models.RoleManager),
			handlers.ExportAssets(db))
		api.GET("/assets/:id/changelog",
			auth.RequireRole(models.RoleAdmin),
			handlers.GetAssetChangelog(svc))
		api.POST("/assets",
			auth.RequireRole(models.RoleAdmin),
			handlers.CreateAsset(db))
		api.PATCH("/assets/:id",
			auth.RequireRole(models.RoleAdmin, models.RoleManager),
			handlers.UpdateAsset(svc, db))
		api.DELETE("/assets/:id",
			auth.RequireRole(models.RoleAdmin),
			handlers.DeleteAsset(svc))

		// Users
		api.GET("/users", handlers.ListUsers(db))
		api.GET("/users/:id", handlers.GetUser(db))
		api.POST("/users", auth.RequireRole(models.RoleAdmin), handlers.CreateUser(db))
		api.PATCH("/users/:id", auth.RequireRole(models.RoleAdmin), handlers.UpdateUser(db))
		api.DELETE("/users/:id", auth.RequireRole(models.RoleAdmin), handlers.DeleteUser(db))

		// Locations
		api.GET("/locations", handlers.ListLocations(db))
		api.GET("/locations/:id", handlers.GetLocation(db))
		api.POST("/locations", auth.RequireRole(models.RoleAdmin), handlers.CreateLocation(db))
		api.PATCH("/locations/:id", auth.RequireRole(models.RoleAdmin), handlers.UpdateLocation(db))
		api.DELETE("/locations/:id", auth.RequireRole(models.RoleAdmin), handlers.DeleteLocation(db))

		// Types
		api.GET("/types", handlers.ListTypes(db))
		api.GET("/types/:id", handlers.GetType(db))
		api.POST("/types", auth.RequireRole(models.RoleAdmin), handlers.CreateType(db))
		api.PATCH("/types/:id", auth.RequireRole(models.RoleAdmin), handlers.UpdateType(db))
		api.DELETE("/types/:id", auth.RequireRole(models.RoleAdmin), handlers.DeleteType(db))
	}

	return r
}
