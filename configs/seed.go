package configs

import (
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/n4mp3un9/car-rental-sub001/entity"
)

// SeedShop creates a bootstrap shop account on first start.
func SeedShop(db *gorm.DB, cfg *Config) error {
	email := strings.ToLower(strings.TrimSpace(cfg.SeedShopEmail))
	if email == "" || cfg.SeedShopPassword == "" {
		slog.Info("skip seeding shop: missing SEED_SHOP_EMAIL/SEED_SHOP_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		slog.Info("seed shop already exists", "email", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedShopPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	shop := entity.User{
		Username: strings.SplitN(email, "@", 2)[0],
		Email:    email,
		Password: string(hash),
		Role:     entity.RoleShop,
		Status:   entity.UserActive,
		ShopName: "Demo Car Rental",
	}
	if err := db.Create(&shop).Error; err != nil {
		return err
	}
	slog.Info("seed shop created", "email", email)
	return nil
}
