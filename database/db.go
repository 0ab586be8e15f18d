// Package database owns the gorm connection used by every service.
package database

import (
	"errors"
	"log"

	"github.com/careerconnect/careerconnect/config"
	"github.com/careerconnect/careerconnect/database/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func initModels() error {
	models := []any{
		&model.User{},
		&model.Job{},
		&model.Application{},
		&model.PasswordResetRedemption{},
		&model.AuditLog{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// InitDB opens the configured database and migrates the schema. References
// between tables are resolved by the services, so no foreign keys are
// created and deleting a user leaves their jobs and applications in place.
func InitDB(cfg *config.DatabaseConfig) error {
	if err := cfg.ValidateConfig(); err != nil {
		return err
	}

	var gormLogger logger.Interface
	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                                   gormLogger,
		SkipDefaultTransaction:                   true,
		PrepareStmt:                              true,
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	var err error
	switch cfg.Type {
	case config.DatabaseTypePostgreSQL:
		db, err = gorm.Open(postgres.Open(cfg.GetDSN()), c)
		if err != nil {
			return err
		}
	default:
		if err = cfg.EnsureDirectoryExists(); err != nil {
			return err
		}
		dsn := cfg.GetDSN() + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
		db, err = gorm.Open(sqlite.Open(dsn), c)
		if err != nil {
			return err
		}
		if err = tuneSQLite(); err != nil {
			return err
		}
	}

	return initModels()
}

func tuneSQLite() error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	// WAL allows concurrent readers but only one writer.
	sqlDB.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA cache_size = -64000;",
		"PRAGMA temp_store = MEMORY;",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			return err
		}
	}
	return nil
}

func CloseDB() error {
	if db == nil {
		return nil
	}
	if db.Dialector.Name() == "sqlite" {
		if err := db.Exec("PRAGMA wal_checkpoint;").Error; err != nil {
			log.Printf("error executing checkpoint: %v", err)
		}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	db = nil
	return sqlDB.Close()
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
