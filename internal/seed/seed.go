package seed

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"asset_manager/internal/models"
)

// FirstSetup ensures the base roles and a default admin account exist.
// Safe to run on every startup.
func FirstSetup(db *gorm.DB) error {
	roles := map[models.RoleName]*models.Role{}
	for _, name := range []models.RoleName{models.RoleAdmin, models.RoleManager, models.RoleViewer} {
		role := models.Role{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return err
		}
		roles[name] = &role
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123" // change after first login
	}

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Default",
		LastName:     "Admin",
		PasswordHash: string(hash),
		RoleID:       &roles[models.RoleAdmin].ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("seeded default admin user %q", username)
	return nil
}
