package repomanager

import (
	"context"
	"database/sql"

	"moviecatalog/internal/dbx"
	"moviecatalog/internal/repositories/movies"
	"moviecatalog/internal/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Movies(db dbx.DBTX) movies.Repository
}
