// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// vending repositories bound to either the pool or a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"moviecatalog/internal/database"
	"moviecatalog/internal/dbx"
	"moviecatalog/internal/repositories/movies"
	"moviecatalog/internal/repositories/users"
)

type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Movies returns a movies.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Movies(db dbx.DBTX) movies.Repository {
	return movies.NewPostgresRepository(db)
}

// migrate is a seam for tests.
var migrate = database.Migrate

// RunMigrations applies the embedded schema migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db)
}
