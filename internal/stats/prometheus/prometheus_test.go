package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"mysterymate/internal/stats"
)

func gather(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric %s not registered", name)
	return nil
}

func TestNewDefaultRegisterer(t *testing.T) {
	if c := New(nil); c.reg != prometheus.DefaultRegisterer {
		t.Error("nil registerer should fall back to the default")
	}
}

func TestCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.IncCounter(stats.MetricMovesAccepted, 2)
	c.IncCounter(stats.MetricMovesAccepted, 3)
	c.IncCounter(stats.MetricMovesAccepted, -1)

	f := gather(t, reg, stats.MetricMovesAccepted)
	if got := f.GetMetric()[0].GetCounter().GetValue(); got != 5 {
		t.Errorf("counter = %v, want 5", got)
	}
	if f.GetHelp() != stats.Help[stats.MetricMovesAccepted] {
		t.Errorf("help = %q", f.GetHelp())
	}
}

func TestGaugeAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.SetGauge(stats.MetricPiecesOnBoard, 32)
	c.SetGauge(stats.MetricPiecesOnBoard, 31)
	if got := gather(t, reg, stats.MetricPiecesOnBoard).GetMetric()[0].GetGauge().GetValue(); got != 31 {
		t.Errorf("gauge = %v, want 31", got)
	}

	for _, plies := range []float64{12, 40, 95} {
		c.ObserveHistogram(stats.MetricMatchPlies, plies)
	}
	h := gather(t, reg, stats.MetricMatchPlies).GetMetric()[0].GetHistogram()
	if h.GetSampleCount() != 3 || h.GetSampleSum() != 147 {
		t.Errorf("histogram count=%d sum=%v", h.GetSampleCount(), h.GetSampleSum())
	}
}

func TestAdoptsExistingMetric(t *testing.T) {
	reg := prometheus.NewRegistry()
	existing := prometheus.NewCounter(prometheus.CounterOpts{Name: "already_there", Help: "x"})
	reg.MustRegister(existing)
	existing.Add(10)

	New(reg).IncCounter("already_there", 1)

	if got := gather(t, reg, "already_there").GetMetric()[0].GetCounter().GetValue(); got != 11 {
		t.Errorf("counter = %v, want 11", got)
	}
}

func TestConcurrentUse(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				c.IncCounter(stats.MetricCaptures, 1)
				c.ObserveHistogram(stats.MetricMoveSeconds, 0.001)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	if got := gather(t, reg, stats.MetricCaptures).GetMetric()[0].GetCounter().GetValue(); got != 400 {
		t.Errorf("counter = %v, want 400", got)
	}
}
