package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort    string `envconfig:"HTTP_PORT" default:"8080"`
	DatabaseDSN string `envconfig:"DATABASE_DSN" default:"host=localhost user=postgres password=postgres dbname=stonecrm port=5432 sslmode=disable"`
	JWTSecret   string `envconfig:"JWT_SECRET"`
	CORSOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`

	// Pricing parameters. Business configuration, not per-quote negotiation.
	DefaultTaxRate string `envconfig:"DEFAULT_TAX_RATE" default:"0.085"`
	CardFeeRate    string `envconfig:"CARD_FEE_RATE" default:"0.035"`

	taxRate decimal.Decimal
	feeRate decimal.Decimal
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set; it is required")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("JWT_SECRET must be at least 32 characters")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Warn("CORS_ALLOWED_ORIGINS is the development default; set your own domain for production")
	}

	var err error
	cfg.taxRate, err = decimal.NewFromString(cfg.DefaultTaxRate)
	if err != nil {
		log.Fatalf("DEFAULT_TAX_RATE is not a valid decimal: %v", err)
	}
	cfg.feeRate, err = decimal.NewFromString(cfg.CardFeeRate)
	if err != nil {
		log.Fatalf("CARD_FEE_RATE is not a valid decimal: %v", err)
	}

	return &cfg
}

func (c *Config) TaxRate() decimal.Decimal { return c.taxRate }
func (c *Config) FeeRate() decimal.Decimal { return c.feeRate }
