package core

import (
	"fmt"

	"github.com/google/uuid"
)

// Identity ranges reserved per color; a horcrux must fall inside its owner's range
const (
	NoPieceID       = 0
	MinWhitePieceID = 1
	MaxWhitePieceID = 16
	MinBlackPieceID = 17
	MaxBlackPieceID = 32

	DefaultGuesses = 2
)

// IDRange returns the inclusive identity range reserved for color c
func IDRange(c Color) (lo, hi int) {
	if c == ColorWhite {
		return MinWhitePieceID, MaxWhitePieceID
	}
	return MinBlackPieceID, MaxBlackPieceID
}

// InRange reports whether id belongs to color c's reserved range
func InRange(c Color, id int) bool {
	lo, hi := IDRange(c)
	return id >= lo && id <= hi
}

// Player is one side of a match together with its hidden objective state
type Player struct {
	ID    string `json:"id"`
	Color Color  `json:"color"`

	horcruxID        int
	horcruxFound     bool
	horcruxCaptured  bool
	kingCaptured     bool
	guessesRemaining int
}

// NewPlayer creates a Player for color with the given guess allowance
func NewPlayer(color Color, guesses int) *Player {
	if guesses < 0 {
		guesses = 0
	}
	return &Player{
		ID:               uuid.New().String(),
		Color:            color,
		guessesRemaining: guesses,
	}
}

func (p *Player) HorcruxID() int        { return p.horcruxID }
func (p *Player) HasHorcrux() bool      { return p.horcruxID != NoPieceID }
func (p *Player) HorcruxFound() bool    { return p.horcruxFound }
func (p *Player) HorcruxCaptured() bool { return p.horcruxCaptured }
func (p *Player) KingCaptured() bool    { return p.kingCaptured }
func (p *Player) GuessesRemaining() int { return p.guessesRemaining }

// SetHorcrux assigns the hidden piece once; it must lie in the player's own range
func (p *Player) SetHorcrux(id int) error {
	if p.HasHorcrux() {
		return fmt.Errorf("%w: %s horcrux already set", ErrInvalidObjective, p.Color.Name())
	}
	if !InRange(p.Color, id) {
		lo, hi := IDRange(p.Color)
		return fmt.Errorf("%w: %d outside %s range %d-%d", ErrInvalidObjective, id, p.Color.Name(), lo, hi)
	}
	p.horcruxID = id
	return nil
}

// SpendGuess consumes one guess, failing when none remain
func (p *Player) SpendGuess() error {
	if p.guessesRemaining <= 0 {
		return ErrNoGuessesLeft
	}
	p.guessesRemaining--
	return nil
}

func (p *Player) MarkHorcruxFound()    { p.horcruxFound = true }
func (p *Player) MarkHorcruxCaptured() { p.horcruxCaptured = true }
func (p *Player) MarkKingCaptured()    { p.kingCaptured = true }
