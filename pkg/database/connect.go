package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// ConnectionConfig holds the settings needed to open the connection pool.
type ConnectionConfig struct {
	Driver          string
	Host            string
	Port            string
	Username        string
	Password        string
	DatabaseName    string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (c ConnectionConfig) dsn() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.DatabaseName, c.SSLMode,
	)
}

// Connect opens and pings the connection pool.
func Connect(config ConnectionConfig) (*sqlx.DB, error) {
	driver := config.Driver
	if driver == "" {
		driver = "postgres"
	}

	db, err := sqlx.Connect(driver, config.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %q: %w", config.DatabaseName, err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	return db, nil
}
