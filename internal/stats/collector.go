// Package stats defines how a match reports counters and timings.
package stats

// Metric names reported by a match.
const (
	MetricMovesAccepted  = "mysterymate_moves_accepted_total"
	MetricMovesRejected  = "mysterymate_moves_rejected_total"
	MetricCaptures       = "mysterymate_captures_total"
	MetricGuesses        = "mysterymate_guesses_total"
	MetricGuessesCorrect = "mysterymate_guesses_correct_total"
	MetricMatchesEnded   = "mysterymate_matches_ended_total"

	MetricPiecesOnBoard = "mysterymate_pieces_on_board"

	// Seconds spent validating and executing one move
	MetricMoveSeconds = "mysterymate_move_seconds"
	// Plies played when a match ends
	MetricMatchPlies = "mysterymate_match_plies"
)

// Help texts for the metrics above, used by collectors that export descriptions.
var Help = map[string]string{
	MetricMovesAccepted:  "Moves validated and executed.",
	MetricMovesRejected:  "Moves refused as illegal.",
	MetricCaptures:       "Pieces captured.",
	MetricGuesses:        "Horcrux guesses spent.",
	MetricGuessesCorrect: "Horcrux guesses that named the opponent's piece.",
	MetricMatchesEnded:   "Matches that reached a result.",
	MetricPiecesOnBoard:  "Pieces left on the board after the last move.",
	MetricMoveSeconds:    "Time to validate and execute a move.",
	MetricMatchPlies:     "Plies played in a finished match.",
}

// Collector receives metrics. Implementations must be safe for concurrent use.
type Collector interface {
	IncCounter(name string, delta int64)
	SetGauge(name string, value int64)
	ObserveHistogram(name string, value float64)
}
