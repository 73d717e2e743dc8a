package game

import (
	"errors"
	"testing"

	"mysterymate/internal/core"
)

func TestGuessHorcrux(t *testing.T) {
	m := started(t, 16, 20)

	if _, err := m.GuessHorcrux(core.ColorBlack, 16); !errors.Is(err, core.ErrNotYourTurn) {
		t.Errorf("guess out of turn err = %v, want ErrNotYourTurn", err)
	}
	if _, err := m.GuessHorcrux(core.ColorWhite, 99); !errors.Is(err, core.ErrUnknownPiece) {
		t.Errorf("unknown id err = %v, want ErrUnknownPiece", err)
	}
	if got := m.Player(core.ColorWhite).GuessesRemaining(); got != 2 {
		t.Fatalf("failed preconditions spent a guess: %d left", got)
	}

	correct, err := m.GuessHorcrux(core.ColorWhite, 17)
	if err != nil || correct {
		t.Fatalf("wrong guess = %v, %v", correct, err)
	}
	if m.Player(core.ColorWhite).GuessesRemaining() != 1 {
		t.Error("a wrong guess must spend one guess")
	}
	if m.Phase() != core.PhaseWhiteToMove {
		t.Error("a guess must not use up the turn")
	}

	correct, err = m.GuessHorcruxAt(core.ColorWhite, pos("d7"))
	if err != nil || !correct {
		t.Fatalf("right guess = %v, %v", correct, err)
	}
	if m.Result() != core.ResultWhiteWin || !m.Player(core.ColorBlack).HorcruxFound() {
		t.Errorf("result = %v", m.Result())
	}
	if _, err := m.GuessHorcrux(core.ColorBlack, 16); !errors.Is(err, core.ErrWrongPhase) {
		t.Errorf("black guess after the end err = %v, want ErrWrongPhase", err)
	}
}

func TestGuessesRunOut(t *testing.T) {
	m := started(t, 16, 32)
	for _, id := range []int{17, 18} {
		if _, err := m.GuessHorcrux(core.ColorWhite, id); err != nil {
			t.Fatalf("GuessHorcrux(%d): %v", id, err)
		}
	}
	if _, err := m.GuessHorcrux(core.ColorWhite, 32); !errors.Is(err, core.ErrNoGuessesLeft) {
		t.Errorf("third guess err = %v, want ErrNoGuessesLeft", err)
	}
	if m.Player(core.ColorWhite).GuessesRemaining() != 0 {
		t.Error("guesses went negative")
	}

	none := started(t, 16, 32, WithGuesses(0))
	if _, err := none.GuessHorcrux(core.ColorWhite, 32); !errors.Is(err, core.ErrNoGuessesLeft) {
		t.Errorf("guess with zero allowance err = %v, want ErrNoGuessesLeft", err)
	}
}

func TestGuessAlreadyResolved(t *testing.T) {
	m := started(t, 16, 20)
	if correct, err := m.GuessHorcrux(core.ColorWhite, 20); err != nil || !correct {
		t.Fatalf("right guess = %v, %v", correct, err)
	}

	tests := []struct {
		name  string
		guess func() (bool, error)
	}{
		{"by id", func() (bool, error) { return m.GuessHorcrux(core.ColorWhite, 20) }},
		{"by square", func() (bool, error) { return m.GuessHorcruxAt(core.ColorWhite, pos("d7")) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.guess(); !errors.Is(err, core.ErrAlreadyResolved) {
				t.Errorf("err = %v, want ErrAlreadyResolved", err)
			}
		})
	}
	if m.Player(core.ColorWhite).GuessesRemaining() != 1 {
		t.Error("a refused guess must not be spent")
	}
}

func TestGuessEmptySquare(t *testing.T) {
	m := started(t, 16, 20)
	if _, err := m.GuessHorcruxAt(core.ColorWhite, pos("e4")); !errors.Is(err, core.ErrNotOccupied) {
		t.Errorf("err = %v, want ErrNotOccupied", err)
	}
}
