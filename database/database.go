package database

import (
	"fmt"
	"log"

	"github.com/Soufianejami/coworkingcaisse/config"
	"github.com/Soufianejami/coworkingcaisse/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the MySQL connection, migrates the schema and seeds the
// bootstrap admin account plus the default café catalogue.
func Init(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	logMode := logger.Warn
	if cfg.Server.Mode == "debug" {
		logMode = logger.Info
	}

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Transaction{},
		&models.DailyStats{},
		&models.Expense{},
		&models.Inventory{},
		&models.StockMovement{},
		&models.PasswordReset{},
	); err != nil {
		return err
	}

	if err := seed(cfg); err != nil {
		return err
	}

	log.Println("database initialized")
	return nil
}

// seed creates the bootstrap admin and a starter catalogue on first run.
func seed(cfg *config.Config) error {
	var userCount int64
	DB.Model(&models.User{}).Count(&userCount)
	if userCount == 0 && cfg.Admin.Username != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.User{
			Username: cfg.Admin.Username,
			Password: string(hash),
			Email:    cfg.Admin.Email,
			IsAdmin:  true,
			Status:   models.UserStatusActive,
		}
		if err := DB.Create(&admin).Error; err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}
		log.Printf("seeded admin user %q", admin.Username)
	}

	var productCount int64
	DB.Model(&models.Product{}).Count(&productCount)
	if productCount == 0 {
		defaults := []models.Product{
			{Name: "Espresso", Category: models.ProductCategoryDrink, Price: 12, IsActive: true},
			{Name: "Cappuccino", Category: models.ProductCategoryDrink, Price: 18, IsActive: true},
			{Name: "Mint Tea", Category: models.ProductCategoryDrink, Price: 10, IsActive: true},
			{Name: "Orange Juice", Category: models.ProductCategoryDrink, Price: 15, IsActive: true},
			{Name: "Croissant", Category: models.ProductCategoryFood, Price: 8, IsActive: true},
			{Name: "Sandwich", Category: models.ProductCategoryFood, Price: 25, IsActive: true},
		}
		if err := DB.Create(&defaults).Error; err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
	}

	return nil
}

// GetDB returns the database handle.
func GetDB() *gorm.DB {
	return DB
}
