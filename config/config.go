package config

import (
	"log"
	"os"

	"storefront-order-api/models"
	"storefront-order-api/store"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// LoadEnv reads an optional .env file into the environment.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}
}

// GetEnv returns the environment value for key, or fallback when unset.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the sqlite database and migrates the catalog and snapshot
// tables.
func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.MenuItem{},
		&store.StateSnapshot{},
	); err != nil {
		return nil, err
	}

	log.Println("Database connected and migrated")
	return db, nil
}

// SeedMenu inserts a small starter catalog when the menu table is empty, so
// a fresh deployment has something to browse.
func SeedMenu(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := []models.MenuItem{
		{
			Names:    datatypes.JSONMap{"en": "Margherita Pizza", "ru": "Пицца Маргарита"},
			Price:    12.99,
			Discount: 10,
			Category: "pizza",
			IsActive: true,
		},
		{
			Names:    datatypes.JSONMap{"en": "Caesar Salad", "ru": "Салат Цезарь"},
			Price:    8.50,
			Category: "salads",
			IsActive: true,
		},
		{
			Names:    datatypes.JSONMap{"en": "Lemonade", "ru": "Лимонад"},
			Price:    3.25,
			Category: "drinks",
			IsActive: true,
		},
	}
	if err := db.Create(&items).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d menu items", len(items))
	return nil
}
