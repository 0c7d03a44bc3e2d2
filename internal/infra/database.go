package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/FredesVirginia/captus-back/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// to create / update all tables. The schema is owned by the models; there is no
// separate SQL migration tree.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}

// RunMigrations applies the model schema. Shared with integration tests so
// they can migrate a scratch database the same way the server does.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Oferta{},
		&model.Floor{},
		&model.Combo{},
		&model.ComboItem{},
		&model.Favorito{},
		&model.Pago{},
		&model.Orden{},
		&model.OrdenItem{},
	)
}
