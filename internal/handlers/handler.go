// Package handlers implements the HTTP surface of the movie catalog on gin.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"moviecatalog/internal/common"
	"moviecatalog/internal/importer"
	"moviecatalog/internal/logging"
	"moviecatalog/internal/models"
	"moviecatalog/internal/monitoring"
	"moviecatalog/internal/services"
)

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type MovieService interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetMovie(ctx context.Context, id int) (*models.Movie, error)
	AddMovie(ctx context.Context, movie models.Movie) (*models.Movie, error)
}

type MovieImporter interface {
	ImportFile(ctx context.Context) (importer.Result, error)
	Import(ctx context.Context, r io.Reader) (importer.Result, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Monitor interface {
	Snapshot(ctx context.Context) monitoring.Snapshot
	AllText(ctx context.Context) string
}

// Dependencies groups what the handlers need. Monitor may be nil when the
// monitoring endpoints are not mounted.
type Dependencies struct {
	Users          UserService
	Movies         MovieService
	Importer       MovieImporter
	DB             Pinger
	Monitor        Monitor
	Logger         logging.Logger
	MaxUploadBytes int64
	MonitoringKey  string
}

type Handler struct {
	users          UserService
	movies         MovieService
	importer       MovieImporter
	db             Pinger
	monitor        Monitor
	logger         logging.Logger
	maxUploadBytes int64
	monitoringKey  string
}

func New(deps Dependencies) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{
		users:          deps.Users,
		movies:         deps.Movies,
		importer:       deps.Importer,
		db:             deps.DB,
		monitor:        deps.Monitor,
		logger:         logger,
		maxUploadBytes: deps.MaxUploadBytes,
		monitoringKey:  deps.MonitoringKey,
	}
}

// respondError writes the status and message for a service error. The
// messages map gives the client-facing text per error kind; kinds not in
// the map use a generic text.
func (h *Handler) respondError(c *gin.Context, err error, messages map[error]string) {
	status := http.StatusInternalServerError
	kind := common.ErrorInternal

	switch {
	case errors.Is(err, common.ErrorConflict):
		status, kind = http.StatusConflict, common.ErrorConflict
	case errors.Is(err, common.ErrorNotFound):
		status, kind = http.StatusNotFound, common.ErrorNotFound
	case errors.Is(err, common.ErrorUnauthorized):
		status, kind = http.StatusUnauthorized, common.ErrorUnauthorized
	case errors.Is(err, common.ErrorValidation):
		status, kind = http.StatusBadRequest, common.ErrorValidation
	}

	message, ok := messages[kind]
	if !ok {
		message = defaultMessages[kind]
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}

	c.JSON(status, gin.H{"message": message})
}

var defaultMessages = map[error]string{
	common.ErrorConflict:     "Resource already exists.",
	common.ErrorNotFound:     "Not found.",
	common.ErrorUnauthorized: "Unauthorized.",
	common.ErrorValidation:   "Invalid request.",
	common.ErrorInternal:     "Internal server error.",
}
