// Package monitoring keeps in-process counters for HTTP traffic and bulk
// imports and renders them, together with database and runtime stats, as a
// JSON snapshot or a plain-text report.
package monitoring

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Service holds runtime context for monitoring and reporting.
type Service struct {
	startedAt  time.Time
	db         *sql.DB
	importFile string
}

type Snapshot struct {
	TimestampUTC       string      `json:"timestamp_utc"`
	UptimeSeconds      int64       `json:"uptime_seconds"`
	HTTPActiveRequests int64       `json:"http_active_requests"`
	HTTPTotalRequests  uint64      `json:"http_total_requests"`
	HTTPServerErrors   uint64      `json:"http_server_errors"`
	DBOpenConnections  int         `json:"db_open_connections"`
	DBInUseConnections int         `json:"db_in_use_connections"`
	DBWaitCount        int64       `json:"db_wait_count"`
	Goroutines         int         `json:"goroutines"`
	GoMemoryAllocBytes uint64      `json:"go_memory_alloc_bytes"`
	GoMemorySysBytes   uint64      `json:"go_memory_sys_bytes"`
	GoHeapInUseBytes   uint64      `json:"go_heap_in_use_bytes"`
	GoGCCount          uint32      `json:"go_gc_count"`
	UsersTotal         int64       `json:"users_total"`
	MoviesTotal        int64       `json:"movies_total"`
	DBSizeBytes        int64       `json:"db_size_bytes"`
	ImportFile         string      `json:"import_file"`
	ImportFileBytes    int64       `json:"import_file_bytes"`
	ImportFSTotalBytes uint64      `json:"import_fs_total_bytes"`
	ImportFSFreeBytes  uint64      `json:"import_fs_free_bytes"`
	Imports            ImportStats `json:"imports"`
}

func NewService(startedAt time.Time, db *sql.DB, importFile string) *Service {
	return &Service{startedAt: startedAt, db: db, importFile: importFile}
}

func (s *Service) StatusText(ctx context.Context) string {
	dbState := "ok"
	if err := s.db.PingContext(ctx); err != nil {
		dbState = "error: " + err.Error()
	}

	uptime := time.Since(s.startedAt).Round(time.Second)
	activeHTTP, totalHTTP, serverErrors := getHTTPStats()
	generic := s.db.Stats()

	return strings.Join([]string{
		"Movie Catalog Status",
		fmt.Sprintf("Uptime: %s", uptime),
		fmt.Sprintf("DB: %s", dbState),
		fmt.Sprintf("HTTP active requests: %d", activeHTTP),
		fmt.Sprintf("HTTP total requests: %d", totalHTTP),
		fmt.Sprintf("HTTP 5xx responses: %d", serverErrors),
		fmt.Sprintf("DB open connections: %d", generic.OpenConnections),
		fmt.Sprintf("Go goroutines: %d", runtime.NumGoroutine()),
	}, "\n")
}

func (s *Service) CatalogText(ctx context.Context) string {
	usersTotal, moviesTotal := s.countRecords(ctx)

	var dbSizeBytes int64
	_ = s.db.QueryRowContext(ctx, `SELECT COALESCE(pg_database_size(current_database()), 0)`).Scan(&dbSizeBytes)

	imports := getImportStats()
	fsTotal, fsFree := fsUsage(s.importDir())

	return strings.Join([]string{
		"Movie Catalog Contents",
		fmt.Sprintf("Users total: %d", usersTotal),
		fmt.Sprintf("Movies total: %d", moviesTotal),
		fmt.Sprintf("PostgreSQL DB size: %s", formatBytes(dbSizeBytes)),
		fmt.Sprintf("Import file: %s (%s)", s.importFile, formatBytes(fileSize(s.importFile))),
		fmt.Sprintf("Import runs: %d (failed %d, avg %.1f ms)", imports.RunsTotal, imports.FailedTotal, imports.AvgDurationMS),
		fmt.Sprintf("Imported movies: %d added, %d skipped", imports.AddedTotal, imports.SkippedTotal),
		fmt.Sprintf("Import disk free: %s", formatBytes(int64(fsFree))),
		fmt.Sprintf("Import disk total: %s", formatBytes(int64(fsTotal))),
	}, "\n")
}

func (s *Service) RuntimeText() string {
	var memory runtime.MemStats
	runtime.ReadMemStats(&memory)

	return strings.Join([]string{
		"Movie Catalog Runtime",
		fmt.Sprintf("Go version: %s", runtime.Version()),
		fmt.Sprintf("CPU cores: %d", runtime.NumCPU()),
		fmt.Sprintf("Goroutines: %d", runtime.NumGoroutine()),
		fmt.Sprintf("Memory alloc: %s", formatBytes(int64(memory.Alloc))),
		fmt.Sprintf("Memory sys: %s", formatBytes(int64(memory.Sys))),
		fmt.Sprintf("GC cycles: %d", memory.NumGC),
	}, "\n")
}

func (s *Service) AllText(ctx context.Context) string {
	return strings.Join([]string{
		s.StatusText(ctx),
		"",
		s.CatalogText(ctx),
		"",
		s.RuntimeText(),
	}, "\n")
}

func (s *Service) Snapshot(ctx context.Context) Snapshot {
	stats := s.db.Stats()
	activeHTTP, totalHTTP, serverErrors := getHTTPStats()
	fsTotal, fsFree := fsUsage(s.importDir())

	var memory runtime.MemStats
	runtime.ReadMemStats(&memory)

	snap := Snapshot{
		TimestampUTC:       time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds:      int64(time.Since(s.startedAt).Seconds()),
		HTTPActiveRequests: activeHTTP,
		HTTPTotalRequests:  totalHTTP,
		HTTPServerErrors:   serverErrors,
		DBOpenConnections:  stats.OpenConnections,
		DBInUseConnections: stats.InUse,
		DBWaitCount:        stats.WaitCount,
		Goroutines:         runtime.NumGoroutine(),
		GoMemoryAllocBytes: memory.Alloc,
		GoMemorySysBytes:   memory.Sys,
		GoHeapInUseBytes:   memory.HeapInuse,
		GoGCCount:          memory.NumGC,
		ImportFile:         s.importFile,
		ImportFileBytes:    fileSize(s.importFile),
		ImportFSTotalBytes: fsTotal,
		ImportFSFreeBytes:  fsFree,
		Imports:            getImportStats(),
	}

	snap.UsersTotal, snap.MoviesTotal = s.countRecords(ctx)
	_ = s.db.QueryRowContext(ctx, `SELECT COALESCE(pg_database_size(current_database()), 0)`).Scan(&snap.DBSizeBytes)

	return snap
}

func (s *Service) countRecords(ctx context.Context) (users, movies int64) {
	_ = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&users)
	_ = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&movies)
	return users, movies
}

func (s *Service) importDir() string {
	dir := filepath.Dir(s.importFile)
	if dir == "" {
		return "."
	}
	return dir
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return 0
	}
	return info.Size()
}

func formatBytes(value int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(value)
	unit := 0

	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d %s", value, units[unit])
	}
	return fmt.Sprintf("%.2f %s", size, units[unit])
}
