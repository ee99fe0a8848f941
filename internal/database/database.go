package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the database. A non-empty databaseURL means postgres,
// otherwise a local sqlite file is used.
func Connect(databaseURL, sqlitePath string) error {
	var dialector gorm.Dialector
	if databaseURL != "" {
		dialector = postgres.New(postgres.Config{
			DSN:                  databaseURL,
			PreferSimpleProtocol: true,
		})
	} else {
		dialector = sqlite.Open(sqlitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	DB = db
	return nil
}

// Migrate creates missing tables for the given models. The models are
// passed in by the caller so this package does not import them.
func Migrate(models ...interface{}) error {
	return DB.AutoMigrate(models...)
}
