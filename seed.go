package main

import (
	"errors"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/songurtechnology/wafelinvest/models"
)

// seedAdmin ensures the administrative account exists. Controlled by
// ADMIN_USERNAME / ADMIN_EMAIL / ADMIN_PASSWORD; skipped when unset.
func seedAdmin(db *gorm.DB) error {
	username := os.Getenv("ADMIN_USERNAME")
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Println("[seed] ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := models.User{
		Username: username,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	}
	if err := admin.HashPassword(); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		profile := models.Profile{UserID: admin.ID}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		log.Printf("[seed] created admin account %s", username)
		return nil
	})
}
