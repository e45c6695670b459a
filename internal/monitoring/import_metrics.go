package monitoring

import (
	"sync/atomic"
	"time"
)

var importRunsTotal atomic.Uint64
var importRunsFailed atomic.Uint64
var importRowsTotal atomic.Uint64
var importMoviesAdded atomic.Uint64
var importMoviesSkipped atomic.Uint64
var importDurationMicrosTotal atomic.Uint64

type ImportStats struct {
	RunsTotal     uint64  `json:"runs_total"`
	FailedTotal   uint64  `json:"failed_total"`
	RowsTotal     uint64  `json:"rows_total"`
	AddedTotal    uint64  `json:"added_total"`
	SkippedTotal  uint64  `json:"skipped_total"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
}

// RecordImport accounts one bulk import run.
func RecordImport(rows, added, skipped int, duration time.Duration, success bool) {
	importRunsTotal.Add(1)
	if !success {
		importRunsFailed.Add(1)
	}
	if rows > 0 {
		importRowsTotal.Add(uint64(rows))
	}
	if added > 0 {
		importMoviesAdded.Add(uint64(added))
	}
	if skipped > 0 {
		importMoviesSkipped.Add(uint64(skipped))
	}
	if duration > 0 {
		importDurationMicrosTotal.Add(uint64(duration / time.Microsecond))
	}
}

func getImportStats() ImportStats {
	total := importRunsTotal.Load()
	totalDurationMicros := importDurationMicrosTotal.Load()
	avgDurationMS := 0.0
	if total > 0 {
		avgDurationMS = float64(totalDurationMicros) / float64(total) / 1000.0
	}

	return ImportStats{
		RunsTotal:     total,
		FailedTotal:   importRunsFailed.Load(),
		RowsTotal:     importRowsTotal.Load(),
		AddedTotal:    importMoviesAdded.Load(),
		SkippedTotal:  importMoviesSkipped.Load(),
		AvgDurationMS: avgDurationMS,
	}
}
