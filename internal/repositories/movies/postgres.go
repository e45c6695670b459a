package movies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"moviecatalog/internal/common"
	"moviecatalog/internal/dbx"
	"moviecatalog/internal/models"
)

const movieColumns = `movie_id, movie_name, movie_type, movie_language, movie_genre, movie_runtime, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the movie unless the name is taken (common.ErrorConflict).
// Values PostgreSQL cannot store yield common.ErrorValidation.
func (r *PostgresRepository) Create(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	query :=
		`INSERT INTO movies (movie_name, movie_type, movie_language, movie_genre, movie_runtime)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (movie_name) DO NOTHING
		 RETURNING movie_id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		movie.Name, movie.Type, movie.Language, movie.Genre, movie.Runtime).Scan(&movie.ID, &movie.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorConflict
		}
		if dbx.IsDataException(err) {
			return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return movie, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE movie_id = $1`

	movie := &models.Movie{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&movie.ID, &movie.Name, &movie.Type, &movie.Language, &movie.Genre, &movie.Runtime, &movie.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsDataException(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return movie, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY movie_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Movie, 0)
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.ID, &m.Name, &m.Type, &m.Language, &m.Genre, &m.Runtime, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
