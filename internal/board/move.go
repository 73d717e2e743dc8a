package board

import "fmt"

// Move is an attempted relocation of Piece from From to To
type Move struct {
	Piece     *Piece
	From      Position
	To        Position
	Promotion Kind // KindNone unless a pawn reaches its last rank
}

func NewMove(p *Piece, from, to Position) Move {
	return Move{Piece: p, From: from, To: to}
}

// IsZero reports whether m is the empty move, e.g. no previous move yet
func (m Move) IsZero() bool {
	return m.Piece == nil
}

// String renders coordinate notation such as "e2e4" or "a7a8q"
func (m Move) String() string {
	s := fmt.Sprintf("%s%s", m.From, m.To)
	if m.Promotion != KindNone {
		s += string(m.Promotion.Char())
	}
	return s
}
