package database

import (
	log "github.com/sirupsen/logrus"

	"stonecrm-backend/internal/config"
	"stonecrm-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Product{},
		&models.Slab{},
		&models.Cart{},
		&models.CartItem{},
		&models.Quote{},
		&models.QuoteLineItem{},
		&models.PipelineItem{},
		&models.Activity{},
		&models.SalesRepProfile{},
		&models.StorefrontSession{},
		&models.Report{},
	)
	if err != nil {
		log.Fatalf("auto-migrate failed: %v", err)
	}

	log.Info("database connected, migration complete")
}
