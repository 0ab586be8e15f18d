package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type DatabaseType string

const (
	DatabaseTypeSQLite     DatabaseType = "sqlite"
	DatabaseTypePostgreSQL DatabaseType = "postgres"
)

// DatabaseConfig selects the store backing users, jobs and applications.
type DatabaseConfig struct {
	Type     DatabaseType   `json:"type"`
	SQLite   SQLiteConfig   `json:"sqlite"`
	Postgres PostgresConfig `json:"postgres"`
}

type SQLiteConfig struct {
	Path string `json:"path"`
}

// PostgresConfig carries a libpq connection URL or keyword/value string.
type PostgresConfig struct {
	URL string `json:"url"`
}

// GetDSN returns the string handed to the gorm driver.
func (c *DatabaseConfig) GetDSN() string {
	if c.Type == DatabaseTypePostgreSQL {
		return c.Postgres.URL
	}
	return c.SQLite.Path
}

func isPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}

// GetDatabaseConfig builds the configuration from DATABASE_URL and
// CC_DB_TYPE. A postgres:// or postgresql:// URL selects PostgreSQL, any
// other non-empty value is taken as a SQLite file path. Without DATABASE_URL
// the SQLite file lives in GetDBPath().
func GetDatabaseConfig() *DatabaseConfig {
	c := &DatabaseConfig{
		Type:   DatabaseTypeSQLite,
		SQLite: SQLiteConfig{Path: GetDBPath()},
	}
	url := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	dbType := DatabaseType(strings.ToLower(strings.TrimSpace(os.Getenv("CC_DB_TYPE"))))

	if dbType == "" && isPostgresURL(url) {
		dbType = DatabaseTypePostgreSQL
	}
	if dbType != "" {
		c.Type = dbType
	}

	switch c.Type {
	case DatabaseTypePostgreSQL:
		c.Postgres.URL = url
	case DatabaseTypeSQLite:
		if url != "" {
			c.SQLite.Path = url
		}
	}
	return c
}

func (c *DatabaseConfig) ValidateConfig() error {
	switch c.Type {
	case DatabaseTypeSQLite:
		if c.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty")
		}
	case DatabaseTypePostgreSQL:
		if c.Postgres.URL == "" {
			return errors.New("DATABASE_URL is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Type)
	}
	return nil
}

// EnsureDirectoryExists creates the parent directory of the SQLite file.
func (c *DatabaseConfig) EnsureDirectoryExists() error {
	if c.Type != DatabaseTypeSQLite {
		return nil
	}
	return os.MkdirAll(filepath.Dir(c.SQLite.Path), 0o755)
}
