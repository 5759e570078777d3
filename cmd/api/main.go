package main

import (
	"fmt"
	"log"

	"asset_manager/internal/config"
	"asset_manager/internal/db"
	httpserver "asset_manager/internal/http"
	"asset_manager/internal/models"
	"asset_manager/internal/seed"
)

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DatabaseURL)
	db.AutoMigrate(gdb,
		&models.Role{},
		&models.User{},
		&models.Location{},
		&models.AssetType{},
		&models.Asset{},
		&models.ChangeLog{},
	)

	if err := seed.FirstSetup(gdb); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	r := httpserver.NewRouter(gdb, cfg.JWTSecret)
	log.Printf("server listening on :%s", cfg.AppPort)
	if err := r.Run(fmt.Sprintf(":%s", cfg.AppPort)); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
