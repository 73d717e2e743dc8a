package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"mysterymate/internal/stats"
)

func TestCollectorLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := New(zap.New(core))

	c.IncCounter(stats.MetricGuesses, 1)
	c.SetGauge(stats.MetricPiecesOnBoard, 30)
	c.ObserveHistogram(stats.MetricMatchPlies, 42)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, msg := range []string{"counter", "gauge", "histogram"} {
		if entries[i].Message != msg {
			t.Errorf("entry %d = %q, want %q", i, entries[i].Message, msg)
		}
	}
	if got := entries[0].ContextMap()["metric"]; got != stats.MetricGuesses {
		t.Errorf("metric field = %v", got)
	}
	if entries[0].LoggerName != "stats" {
		t.Errorf("logger name = %q", entries[0].LoggerName)
	}
}

func TestNilLogger(t *testing.T) {
	c := New(nil)
	c.IncCounter(stats.MetricGuesses, 1)
}
