package stats

// Noop discards everything; it is the default for a match.
type Noop struct{}

var _ Collector = Noop{}

func NewNoop() Noop { return Noop{} }

func (Noop) IncCounter(string, int64)         {}
func (Noop) SetGauge(string, int64)           {}
func (Noop) ObserveHistogram(string, float64) {}
