package progress

import (
	"fmt"
	"log/slog"
	"time"
)

// Log is a Reporter for non-interactive runs, emitting a structured
// progress record at most once per second.
type Log struct {
	logger    *slog.Logger
	current   int64
	total     int64
	startTime time.Time
	lastLog   time.Time
}

// NewLog returns a Log reporter covering [0, total] bytes starting at
// initial. Pass total <= 0 when the size is unknown; percentage is
// then omitted from the records.
func NewLog(logger *slog.Logger, initial, total int64) *Log {
	return &Log{
		logger:    logger,
		current:   initial,
		total:     total,
		startTime: time.Now(),
	}
}

func (l *Log) Update(current int64) {
	l.current = current

	if time.Since(l.lastLog) < time.Second {
		return
	}
	l.lastLog = time.Now()
	l.log("downloading")
}

func (l *Log) IncrementBy(delta int64) {
	l.Update(l.current + delta)
}

func (l *Log) log(msg string) {
	elapsed := time.Since(l.startTime)

	attrs := []any{
		"transferred", FormatBytes(l.current),
		"elapsed", elapsed.Round(time.Millisecond),
	}
	if l.total > 0 {
		attrs = append(attrs,
			"total", FormatBytes(l.total),
			"progress", fmt.Sprintf("%.1f%%", float64(l.current)/float64(l.total)*100),
		)
	}
	l.logger.Info(msg, attrs...)
}
