package monitoring

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func TestRequestMetricsMiddlewareCountsServerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestMetricsMiddleware())
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	_, totalBefore, errorsBefore := getHTTPStats()

	for _, path := range []string{"/ok", "/fail", "/ok"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	active, total, serverErrors := getHTTPStats()
	if total-totalBefore != 3 {
		t.Fatalf("expected 3 counted requests, got %d", total-totalBefore)
	}
	if serverErrors-errorsBefore != 1 {
		t.Fatalf("expected 1 server error, got %d", serverErrors-errorsBefore)
	}
	if active != 0 {
		t.Fatalf("expected no active requests, got %d", active)
	}
}

func TestRecordImport(t *testing.T) {
	before := getImportStats()

	RecordImport(3, 2, 1, 4*time.Millisecond, true)
	RecordImport(0, 0, 0, time.Millisecond, false)

	after := getImportStats()
	if after.RunsTotal-before.RunsTotal != 2 {
		t.Fatalf("runs: got %d", after.RunsTotal-before.RunsTotal)
	}
	if after.FailedTotal-before.FailedTotal != 1 {
		t.Fatalf("failed: got %d", after.FailedTotal-before.FailedTotal)
	}
	if after.RowsTotal-before.RowsTotal != 3 || after.AddedTotal-before.AddedTotal != 2 || after.SkippedTotal-before.SkippedTotal != 1 {
		t.Fatalf("unexpected counters: before=%+v after=%+v", before, after)
	}
	if after.AvgDurationMS <= 0 {
		t.Fatalf("expected positive average duration, got %f", after.AvgDurationMS)
	}
}

func TestSnapshotCountsRecords(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	dir := t.TempDir()
	importFile := filepath.Join(dir, "movies.csv")
	if err := os.WriteFile(importFile, []byte("name,type,language,genre,runtime\n"), 0o600); err != nil {
		t.Fatalf("write import file: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM movies`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(pg_database_size(current_database()), 0)`)).
		WillReturnRows(sqlmock.NewRows([]string{"size"}).AddRow(int64(8192)))

	svc := NewService(time.Now().Add(-time.Minute), db, importFile)
	snap := svc.Snapshot(context.Background())

	if snap.UsersTotal != 2 || snap.MoviesTotal != 5 {
		t.Fatalf("unexpected totals: users=%d movies=%d", snap.UsersTotal, snap.MoviesTotal)
	}
	if snap.DBSizeBytes != 8192 {
		t.Fatalf("unexpected db size: %d", snap.DBSizeBytes)
	}
	if snap.ImportFileBytes != int64(len("name,type,language,genre,runtime\n")) {
		t.Fatalf("unexpected import file size: %d", snap.ImportFileBytes)
	}
	if snap.UptimeSeconds < 59 {
		t.Fatalf("unexpected uptime: %d", snap.UptimeSeconds)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestStatusTextReportsDBState(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectPing()

	text := NewService(time.Now(), db, "movies.csv").StatusText(context.Background())
	if !strings.Contains(text, "DB: ok") {
		t.Fatalf("expected healthy DB line, got:\n%s", text)
	}
}

func TestFormatBytes(t *testing.T) {
	cases := map[int64]string{
		0:               "0 B",
		512:             "512 B",
		2048:            "2.00 KB",
		5 * 1024 * 1024: "5.00 MB",
	}
	for in, want := range cases {
		if got := formatBytes(in); got != want {
			t.Fatalf("formatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}
