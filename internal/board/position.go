// Package board holds the coordinate, piece and 8x8 board model of the referee.
package board

import (
	"fmt"
)

const Size = 8

// Position is a board coordinate: file 'a'..'h', rank 1..8
type Position struct {
	File byte
	Rank int
}

// NoPosition is the zero value, which is never on the board
var NoPosition = Position{}

func NewPosition(file byte, rank int) Position {
	return Position{File: file, Rank: rank}
}

// ParsePosition parses algebraic notation such as "e4"
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return NoPosition, fmt.Errorf("invalid square: %q", s)
	}
	p := Position{File: s[0], Rank: int(s[1] - '0')}
	if !p.Valid() {
		return NoPosition, fmt.Errorf("invalid square: %q", s)
	}
	return p, nil
}

// MustPosition is ParsePosition for literals known to be valid
func MustPosition(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ValidSquare reports whether s is algebraic notation for one of the 64 squares
func ValidSquare(s string) bool {
	_, err := ParsePosition(s)
	return err == nil
}

func (p Position) Valid() bool {
	return p.File >= 'a' && p.File <= 'h' && p.Rank >= 1 && p.Rank <= Size
}

// FileIndex returns 0 for file a through 7 for file h
func (p Position) FileIndex() int {
	return int(p.File - 'a')
}

// Index maps a1..h8 onto 0..63
func (p Position) Index() int {
	return (p.Rank-1)*Size + p.FileIndex()
}

// Offset shifts the position; ok is false when the result leaves the board
func (p Position) Offset(df, dr int) (Position, bool) {
	f := p.FileIndex() + df
	r := p.Rank + dr
	if f < 0 || f >= Size || r < 1 || r > Size {
		return NoPosition, false
	}
	return Position{File: byte('a' + f), Rank: r}, true
}

func (p Position) String() string {
	if !p.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", p.File, p.Rank)
}

func positionAt(index int) Position {
	return Position{File: byte('a' + index%Size), Rank: index/Size + 1}
}
