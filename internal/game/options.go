package game

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mysterymate/internal/core"
	"mysterymate/internal/stats"
)

// Option configures a Match
type Option interface {
	apply(*options)
}

type options struct {
	id      string
	guesses int
	logger  *zap.Logger
	stats   stats.Collector
}

func defaultOptions() options {
	return options{
		id:      uuid.New().String(),
		guesses: core.DefaultGuesses,
		logger:  zap.NewNop(),
		stats:   stats.NewNoop(),
	}
}

type optionFunc func(*options)

var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithID sets the match id; a random UUID is used otherwise
func WithID(id string) Option {
	return optionFunc(func(o *options) {
		if id != "" {
			o.id = id
		}
	})
}

// WithGuesses sets how many horcrux guesses each player gets.
// Default is 2.
func WithGuesses(n int) Option {
	return optionFunc(func(o *options) {
		if n >= 0 {
			o.guesses = n
		}
	})
}

// WithLogger sets the logger. Matches log quietly to a no-op logger by default.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		if l != nil {
			o.logger = l
		}
	})
}

// WithStats sets the metrics collector
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		if c != nil {
			o.stats = c
		}
	})
}
