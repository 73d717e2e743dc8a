package game

import (
	"fmt"

	"go.uber.org/zap"

	"mysterymate/internal/board"
	"mysterymate/internal/core"
	"mysterymate/internal/stats"
)

// GuessHorcrux spends one of color's guesses naming id as the opponent's
// horcrux. It is only allowed on color's own turn and does not use the turn up.
// A correct guess ends the match in the guesser's favour.
// Failed preconditions leave the guess allowance untouched.
func (m *Match) GuessHorcrux(color core.Color, id int) (bool, error) {
	if err := m.checkGuess(color); err != nil {
		return false, err
	}
	guesser := m.players[color]
	target := m.players[core.OppositeColor(color)]

	if guesser.GuessesRemaining() == 0 {
		return false, core.ErrNoGuessesLeft
	}
	if _, ok := m.registry[id]; !ok {
		return false, fmt.Errorf("%w: %d", core.ErrUnknownPiece, id)
	}

	if err := guesser.SpendGuess(); err != nil {
		return false, err
	}
	m.stats.IncCounter(stats.MetricGuesses, 1)

	correct := id == target.HorcruxID()
	m.log.Info("horcrux guess",
		zap.String("color", color.Name()),
		zap.Bool("correct", correct),
		zap.Int("remaining", guesser.GuessesRemaining()),
	)
	if !correct {
		return false, nil
	}

	target.MarkHorcruxFound()
	m.stats.IncCounter(stats.MetricGuessesCorrect, 1)
	m.end(core.WinFor(color))
	return true, nil
}

// GuessHorcruxAt guesses the piece standing on pos
func (m *Match) GuessHorcruxAt(color core.Color, pos board.Position) (bool, error) {
	if err := m.checkGuess(color); err != nil {
		return false, err
	}
	piece := m.board.PieceAt(pos)
	if piece == nil {
		return false, fmt.Errorf("%w: %s", core.ErrNotOccupied, pos)
	}
	return m.GuessHorcrux(color, piece.ID)
}

// checkGuess reports a horcrux that was already named before the turn check,
// since naming it ends the match.
func (m *Match) checkGuess(color core.Color) error {
	if color.Valid() {
		if target := m.players[core.OppositeColor(color)]; target != nil && target.HorcruxFound() {
			return fmt.Errorf("%w: %s horcrux", core.ErrAlreadyResolved, core.OppositeColor(color).Name())
		}
	}
	return m.checkTurn(color)
}
