package services

import (
	"context"
	"database/sql"
	"errors"

	"moviecatalog/internal/common"
	"moviecatalog/internal/dbx"
	"moviecatalog/internal/logging"
	"moviecatalog/internal/models"
	"moviecatalog/internal/repositories/repomanager"
)

// ImportResult counts the outcome of AddMovies. Invalid counts rows the
// store rejected as data it cannot hold.
type ImportResult struct {
	Added   int
	Skipped int
	Invalid int
}

type MovieService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewMovieService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *MovieService {
	return &MovieService{db: db, repomanager: m, logger: logger}
}

func (s *MovieService) ListMovies(ctx context.Context) ([]models.Movie, error) {
	movies, err := s.repomanager.Movies(s.db).List(ctx)
	if err != nil {
		s.logger.Error(ctx, "movie list failed", "error", err)
		return nil, common.ErrorInternal
	}
	return movies, nil
}

func (s *MovieService) GetMovie(ctx context.Context, id int) (*models.Movie, error) {
	movie, err := s.repomanager.Movies(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "movie lookup failed", "movie_id", id, "error", err)
		return nil, common.ErrorInternal
	}
	return movie, nil
}

// AddMovie inserts one movie. A movie with the same name yields
// common.ErrorConflict.
func (s *MovieService) AddMovie(ctx context.Context, movie models.Movie) (*models.Movie, error) {
	created, err := s.repomanager.Movies(s.db).Create(ctx, &movie)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		if errors.Is(err, common.ErrorValidation) {
			return nil, common.ErrorValidation
		}
		s.logger.Error(ctx, "movie create failed", "movie_name", movie.Name, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "movie added", "movie_id", created.ID)
	return created, nil
}

// AddMovies inserts the batch in one transaction. Names already present, in
// the table or earlier in the batch, are skipped. Each row runs under a
// savepoint, so a row the store rejects as bad data is undone and counted as
// invalid. Any other failure rolls the whole batch back.
func (s *MovieService) AddMovies(ctx context.Context, batch []models.Movie) (ImportResult, error) {
	var result ImportResult

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Movies(tx)
		for i := range batch {
			if _, err := tx.ExecContext(ctx, `SAVEPOINT movie_row`); err != nil {
				return err
			}

			movie := batch[i]
			_, err := repo.Create(ctx, &movie)
			switch {
			case err == nil:
				result.Added++
			case errors.Is(err, common.ErrorConflict):
				result.Skipped++
			case errors.Is(err, common.ErrorValidation):
				if _, rbErr := tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT movie_row`); rbErr != nil {
					return rbErr
				}
				s.logger.Warn(ctx, "movie row rejected", "movie_name", movie.Name, "error", err)
				result.Invalid++
			default:
				return err
			}

			if _, err := tx.ExecContext(ctx, `RELEASE SAVEPOINT movie_row`); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "movie batch failed", "rows", len(batch), "error", err)
		return ImportResult{}, common.ErrorInternal
	}

	return result, nil
}
