// Package importer loads movies from CSV files with a header row and the
// columns name, type, language, genre, runtime.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"moviecatalog/internal/common"
	"moviecatalog/internal/logging"
	"moviecatalog/internal/models"
	"moviecatalog/internal/monitoring"
	"moviecatalog/internal/services"
)

const movieFields = 5

// MovieCreator stores a batch of movies, skipping names that already exist.
type MovieCreator interface {
	AddMovies(ctx context.Context, batch []models.Movie) (services.ImportResult, error)
}

// Result summarizes one import run. Rows counts data rows, header excluded.
type Result struct {
	Rows    int `json:"rows"`
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
	Invalid int `json:"invalid"`
}

type Importer struct {
	movies MovieCreator
	path   string
	logger logging.Logger
}

func New(movies MovieCreator, path string, logger logging.Logger) *Importer {
	return &Importer{movies: movies, path: path, logger: logger}
}

func (i *Importer) Path() string {
	return i.path
}

// ImportFile imports the configured CSV file. A missing file yields
// common.ErrorNotFound.
func (i *Importer) ImportFile(ctx context.Context) (Result, error) {
	return i.ImportPath(ctx, i.path)
}

// ImportPath imports the CSV file at path.
func (i *Importer) ImportPath(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: import file %s", common.ErrorNotFound, path)
		}
		i.logger.Error(ctx, "open import file failed", "path", path, "error", err)
		return Result{}, common.ErrorInternal
	}
	defer f.Close()

	return i.Import(ctx, f)
}

// Import reads movies from r and stores them in one batch.
func (i *Importer) Import(ctx context.Context, r io.Reader) (result Result, err error) {
	start := time.Now()
	defer func() {
		monitoring.RecordImport(result.Rows, result.Added, result.Skipped, time.Since(start), err == nil)
	}()

	batch, rows, invalid, err := ParseMovies(r)
	if err != nil {
		return Result{}, err
	}

	stored, err := i.movies.AddMovies(ctx, batch)
	if err != nil {
		return Result{Rows: rows, Invalid: invalid}, err
	}

	result = Result{
		Rows:    rows,
		Added:   stored.Added,
		Skipped: stored.Skipped,
		Invalid: invalid + stored.Invalid,
	}
	i.logger.Info(ctx, "movies imported",
		"rows", result.Rows, "added", result.Added, "skipped", result.Skipped, "invalid", result.Invalid)

	return result, nil
}

// ParseMovies reads CSV records from r, dropping the header row. Rows with
// fewer than five fields or an empty name are counted as invalid. Malformed
// CSV yields common.ErrorValidation.
func ParseMovies(r io.Reader) (movies []models.Movie, rows int, invalid int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header := true
	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, 0, 0, fmt.Errorf("%w: %v", common.ErrorValidation, readErr)
		}
		if header {
			header = false
			continue
		}

		rows++
		if len(record) < movieFields {
			invalid++
			continue
		}

		movie := models.Movie{
			Name:     strings.TrimSpace(record[0]),
			Type:     strings.TrimSpace(record[1]),
			Language: strings.TrimSpace(record[2]),
			Genre:    strings.TrimSpace(record[3]),
			Runtime:  strings.TrimSpace(record[4]),
		}
		if movie.Name == "" {
			invalid++
			continue
		}
		movies = append(movies, movie)
	}

	return movies, rows, invalid, nil
}
