package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moviecatalog/internal/common"
	"moviecatalog/internal/middleware"
	"moviecatalog/internal/models"
)

const movieNotFoundMessage = "That movie does not exist."

type addMovieRequest struct {
	Name     string `json:"movie_name" form:"movie_name" binding:"required"`
	Type     string `json:"movie_type" form:"movie_type" binding:"required"`
	Language string `json:"movie_language" form:"movie_language" binding:"required"`
	Genre    string `json:"movie_genre" form:"movie_genre" binding:"required"`
	Runtime  string `json:"movie_runtime" form:"movie_runtime" binding:"required"`
}

func (h *Handler) ListMovies(c *gin.Context) {
	movies, err := h.movies.ListMovies(c.Request.Context())
	if err != nil {
		h.respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, models.NewMovieViews(movies))
}

// GetMovie returns one movie. Ids that are not integers, or do not fit the
// int4 movie_id column, cannot name a movie and get the same 404 as unknown
// ids.
func (h *Handler) GetMovie(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": movieNotFoundMessage})
		return
	}

	movie, err := h.movies.GetMovie(c.Request.Context(), int(id))
	if err != nil {
		h.respondError(c, err, map[error]string{
			common.ErrorNotFound: movieNotFoundMessage,
		})
		return
	}

	c.JSON(http.StatusOK, models.NewMovieView(*movie))
}

func (h *Handler) AddMovie(c *gin.Context) {
	var req addMovieRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "movie_name, movie_type, movie_language, movie_genre and movie_runtime are required",
		})
		return
	}

	movie, err := h.movies.AddMovie(c.Request.Context(), models.Movie{
		Name:     req.Name,
		Type:     req.Type,
		Language: req.Language,
		Genre:    req.Genre,
		Runtime:  req.Runtime,
	})
	if err != nil {
		h.respondError(c, err, map[error]string{
			common.ErrorConflict: "There is already a movie by that name.",
		})
		return
	}

	h.logger.Debug(c.Request.Context(), "movie added by user",
		"movie_id", movie.ID, "subject", middleware.SubjectFromContext(c))
	c.JSON(http.StatusCreated, gin.H{"message": "You added a movie."})
}
