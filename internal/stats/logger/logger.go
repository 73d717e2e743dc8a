// Package logger reports metrics as zap debug entries.
package logger

import (
	"go.uber.org/zap"

	"mysterymate/internal/stats"
)

// Collector writes each metric update to a zap logger at debug level
type Collector struct {
	log *zap.Logger
}

var _ stats.Collector = (*Collector)(nil)

// New returns a collector writing to log; a nil logger discards everything
func New(log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{log: log.Named("stats")}
}

func (c *Collector) IncCounter(name string, delta int64) {
	c.log.Debug("counter", zap.String("metric", name), zap.Int64("delta", delta))
}

func (c *Collector) SetGauge(name string, value int64) {
	c.log.Debug("gauge", zap.String("metric", name), zap.Int64("value", value))
}

func (c *Collector) ObserveHistogram(name string, value float64) {
	c.log.Debug("histogram", zap.String("metric", name), zap.Float64("value", value))
}
