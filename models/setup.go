package models

import (
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase opens the MySQL connection and migrates the schema.
func ConnectDatabase(dsn string, logger *zap.Logger) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	if err := db.AutoMigrate(&User{}, &Location{}, &UserProfile{}, &Punch{}); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	logger.Info("database connected")
	DB = db
}
