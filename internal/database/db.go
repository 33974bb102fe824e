package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/SenoussiAl/movie-catalog/internal/model"
)

// Open connects to MySQL through GORM and verifies the connection.
func Open(user, pass, host, port, name string) (*gorm.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the catalog tables. Join tables are
// listed after the entities they link so foreign keys resolve.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Genre{},
		&model.Actor{},
		&model.Director{},
		&model.User{},
		&model.Profile{},
		&model.Movie{},
		&model.GenreOnMovie{},
		&model.ActorOnMovie{},
		&model.DirectorOnMovie{},
		&model.Comment{},
		&model.Rating{},
	)
}
