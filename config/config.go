package config

import (
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"moul.io/zapgorm2"
)

var DB *gorm.DB

// ConnectDatabase opens the Postgres connection from DATABASE_URL, routing
// gorm's logging through zap.
func ConnectDatabase(logger *zap.Logger) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL is not set; create a .env file based on .env.example")
	}

	gormLogger := zapgorm2.New(logger)
	gormLogger.SetAsDefault()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	DB = db
	logger.Info("Database connected")
}
