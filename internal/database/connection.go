package database

import (
	"github.com/adrg/xdg"
	"github.com/pkg/errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"focustrack/internal/models"
)

const defaultDBRelPath = "focustrack/focustrack.db"

type DB struct {
	*gorm.DB
}

// GetDefaultDBPath resolves the database file under the XDG data directory,
// creating parent directories as needed.
func GetDefaultDBPath() (string, error) {
	path, err := xdg.DataFile(defaultDBRelPath)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve data directory")
	}
	return path, nil
}

func Connect(dbPath string) (*DB, error) {
	if dbPath == "" {
		var err error
		dbPath, err = GetDefaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	return &DB{db}, nil
}

func (db *DB) Initialize() error {
	err := db.AutoMigrate(&models.FocusEvent{}, &models.FocusSession{}, &models.ErrorLog{})
	if err != nil {
		return errors.Wrap(err, "failed to initialize database schema")
	}

	return nil
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get underlying sql.DB")
	}
	return sqlDB.Close()
}
