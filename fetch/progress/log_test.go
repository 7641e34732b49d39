package progress_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/adamwoolhether/fetchr/fetch/progress"
)

func TestLog_RateLimited(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	l := progress.NewLog(logger, 0, 1000)

	l.Update(100)
	l.Update(200) // within a second of the first, suppressed
	l.IncrementBy(50)

	records := strings.Count(buf.String(), "downloading")
	if records != 1 {
		t.Errorf("expected 1 progress record within a second, got %d:\n%s", records, buf.String())
	}
	if !strings.Contains(buf.String(), "progress=10.0%") {
		t.Errorf("expected percentage in record, got %q", buf.String())
	}
}

func TestLog_UnknownTotalOmitsPercentage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	l := progress.NewLog(logger, 0, -1)
	l.Update(2048)

	if strings.Contains(buf.String(), "progress=") {
		t.Errorf("expected no percentage for unknown total, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "2 kB") {
		t.Errorf("expected byte count, got %q", buf.String())
	}
}
