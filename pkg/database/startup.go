package database

import (
	"context"

	"github.com/Gobusters/ectologger"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jmoiron/sqlx"
)

// Dependency opens the connection pool and applies pending migrations during
// application startup.
type Dependency struct {
	logger     ectologger.Logger
	connection ConnectionConfig
	migration  *MigrationConfig
	db         *sqlx.DB
}

func NewDependency(logger ectologger.Logger, connection ConnectionConfig, migration *MigrationConfig) *Dependency {
	return &Dependency{
		logger:     logger,
		connection: connection,
		migration:  migration,
	}
}

func (d *Dependency) GetName() string {
	return "database"
}

func (d *Dependency) DependsOn() []string {
	return nil
}

func (d *Dependency) Start(ctx context.Context) error {
	db, err := Connect(d.connection)
	if err != nil {
		return err
	}

	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return err
	}

	if err := NewMigrationService(d.logger, d.migration).Migrate(d.connection.DatabaseName, driver); err != nil {
		_ = db.Close()
		return err
	}

	d.db = db
	return nil
}

func (d *Dependency) Stop(ctx context.Context) error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// DB returns the connected instance. Call only after Start has succeeded.
func (d *Dependency) DB() DB {
	return NewDatabaseInstance(d.db, d.logger)
}
