package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"moviecatalog/internal/auth"
	"moviecatalog/internal/common"
	"moviecatalog/internal/dbx"
	"moviecatalog/internal/importer"
	"moviecatalog/internal/logging"
	"moviecatalog/internal/models"
	"moviecatalog/internal/monitoring"
	"moviecatalog/internal/repositories/movies"
	"moviecatalog/internal/repositories/users"
	"moviecatalog/internal/services"
)

const testJWTSecret = "movie_catalog_test_jwt_secret_key_1234567890"

// memStore is an in-memory stand-in for the PostgreSQL repositories with the
// same uniqueness rules.
type memStore struct {
	mu     sync.Mutex
	users  map[string]models.User
	movies []models.Movie
	nextID int
}

func newMemStore() *memStore {
	return &memStore{users: map[string]models.User{}}
}

func (s *memStore) RunMigrations(context.Context, *sql.DB) error { return nil }
func (s *memStore) Users(dbx.DBTX) users.Repository { return (*memUsers)(s) }
func (s *memStore) Movies(dbx.DBTX) movies.Repository { return (*memMovies)(s) }

type memUsers memStore

func (r *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return nil, common.ErrorConflict
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	r.users[u.Email] = *u
	return u, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

type memMovies memStore

func (r *memMovies) Create(_ context.Context, m *models.Movie) (*models.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.movies {
		if existing.Name == m.Name {
			return nil, common.ErrorConflict
		}
	}
	m.ID = len(r.movies) + 1
	m.CreatedAt = time.Now()
	r.movies = append(r.movies, *m)
	return m, nil
}

func (r *memMovies) GetByID(_ context.Context, id int) (*models.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movies {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memMovies) List(context.Context) ([]models.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Movie(nil), r.movies...), nil
}

type fakeImporter struct {
	fileResult importer.Result
	fileErr    error
	fileCalls  int

	uploadResult importer.Result
	uploadErr    error
	uploaded     string
}

func (f *fakeImporter) ImportFile(context.Context) (importer.Result, error) {
	f.fileCalls++
	return f.fileResult, f.fileErr
}

func (f *fakeImporter) Import(_ context.Context, r io.Reader) (importer.Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return importer.Result{}, err
	}
	f.uploaded = string(data)
	return f.uploadResult, f.uploadErr
}

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error { return p.err }

type fakeMonitor struct{}

func (fakeMonitor) Snapshot(context.Context) monitoring.Snapshot {
	return monitoring.Snapshot{UsersTotal: 1, MoviesTotal: 2}
}

func (fakeMonitor) AllText(context.Context) string { return "Movie Catalog Status" }

type testEnv struct {
	router   *gin.Engine
	tokens   *auth.TokenIssuer
	store    *memStore
	importer *fakeImporter
}

func setupRouter(t *testing.T, mutate ...func(*Dependencies)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenIssuer(testJWTSecret, time.Minute)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	store := newMemStore()
	imp := &fakeImporter{}
	logger := logging.Discard()

	deps := Dependencies{
		Users:          services.NewUserService(nil, store, tokens, logger),
		Movies:         services.NewMovieService(nil, store, logger),
		Importer:       imp,
		DB:             fakePinger{},
		Monitor:        fakeMonitor{},
		Logger:         logger,
		MaxUploadBytes: 1 << 20,
		MonitoringKey:  "monitor-secret",
	}
	for _, fn := range mutate {
		fn(&deps)
	}

	return &testEnv{
		router:   NewRouter(New(deps), tokens, logger),
		tokens:   tokens,
		store:    store,
		importer: imp,
	}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) postForm(path string, values url.Values, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.do(req)
}

func (e *testEnv) postJSON(path string, body any, token string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.do(req)
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func mustStatus(t *testing.T, actual int, expected int) {
	t.Helper()
	if actual != expected {
		t.Fatalf("expected status %d, got %d", expected, actual)
	}
}

func expectHTTP200(t *testing.T, status int) {
	t.Helper()
	mustStatus(t, status, http.StatusOK)
}

func decodeObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal(%s): %v", rec.Body.String(), err)
	}
	return out
}

func expectMessage(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if got, _ := decodeObject(t, rec)["message"].(string); got != want {
		t.Fatalf("expected message %q, got %q", want, got)
	}
}

var errStorageDown = errors.New("db error: connection refused")
