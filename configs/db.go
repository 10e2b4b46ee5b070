package configs

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/n4mp3un9/car-rental-sub001/entity"
)

// ConnectionDB opens the database selected by DB_DRIVER. The handle is
// returned to the caller and passed down explicitly.
func ConnectionDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite", "sqlite3":
		dialector = sqlite.Open(cfg.DBSource)
	case "postgres", "postgresql":
		dialector = postgres.Open(cfg.DBSource)
	case "mysql":
		dialector = mysql.Open(cfg.DBSource)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	gormLog := logger.Default.LogMode(logger.Warn)
	if cfg.Env == "dev" {
		gormLog = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)

	slog.Info("database connected", "driver", cfg.DBDriver)
	return db, nil
}

// SetupDatabase migrates the schema.
func SetupDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Car{}, &entity.CarImage{},
		&entity.Rental{}, &entity.Payment{},
		&entity.Review{},
		&entity.Blacklist{},
	)
}
