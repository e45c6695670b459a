package movies

import (
	"context"

	"moviecatalog/internal/models"
)

type Repository interface {
	Create(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	GetByID(ctx context.Context, id int) (*models.Movie, error)
	List(ctx context.Context) ([]models.Movie, error)
}
