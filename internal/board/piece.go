package board

import (
	"fmt"

	"mysterymate/internal/core"
)

// Kind is the piece type
type Kind uint8

const (
	KindNone Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the lowercase FEN letter for the kind
func (k Kind) Char() byte {
	switch k {
	case Pawn:
		return 'p'
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	case King:
		return 'k'
	default:
		return ' '
	}
}

// KindFromChar parses a FEN letter of either case
func KindFromChar(c byte) Kind {
	switch c | 0x20 {
	case 'p':
		return Pawn
	case 'n':
		return Knight
	case 'b':
		return Bishop
	case 'r':
		return Rook
	case 'q':
		return Queen
	case 'k':
		return King
	default:
		return KindNone
	}
}

// IsSlider reports whether the kind moves along unbounded rays
func (k Kind) IsSlider() bool {
	return k == Bishop || k == Rook || k == Queen
}

// Piece is a tagged value. Once created only HasMoved changes, and Kind on promotion.
type Piece struct {
	ID       int
	Kind     Kind
	Color    core.Color
	HasMoved bool
}

func NewPiece(id int, kind Kind, color core.Color) *Piece {
	return &Piece{ID: id, Kind: kind, Color: color}
}

// Symbol is the FEN letter, uppercase for White
func (p *Piece) Symbol() byte {
	c := p.Kind.Char()
	if p.Color == core.ColorWhite {
		c -= 'a' - 'A'
	}
	return c
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s #%d", p.Color.Name(), p.Kind, p.ID)
}

type offset struct{ df, dr int }

var (
	knightOffsets = []offset{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = []offset{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	diagonalRays  = []offset{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	straightRays  = []offset{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
)

// PawnDirection is +1 for White and -1 for Black
func PawnDirection(c core.Color) int {
	if c == core.ColorWhite {
		return 1
	}
	return -1
}

// PawnHomeRank is the rank a pawn may double-step from
func PawnHomeRank(c core.Color) int {
	if c == core.ColorWhite {
		return 2
	}
	return 7
}

// PromotionRank is the last rank for color c
func PromotionRank(c core.Color) int {
	if c == core.ColorWhite {
		return Size
	}
	return 1
}

// PossiblePositions is the pseudo-legal destination set from `from`, ignoring occupancy.
// Pawn diagonals are included as capture candidates.
func (p *Piece) PossiblePositions(from Position) PositionSet {
	var set PositionSet
	if !from.Valid() {
		return set
	}
	switch p.Kind {
	case Pawn:
		dir := PawnDirection(p.Color)
		if to, ok := from.Offset(0, dir); ok {
			set.Add(to)
			if from.Rank == PawnHomeRank(p.Color) {
				if to2, ok := from.Offset(0, 2*dir); ok {
					set.Add(to2)
				}
			}
		}
		set |= p.pawnDiagonals(from)
	case Knight:
		set = leaps(from, knightOffsets)
	case Bishop:
		set = rays(from, diagonalRays)
	case Rook:
		set = rays(from, straightRays)
	case Queen:
		set = rays(from, diagonalRays) | rays(from, straightRays)
	case King:
		set = leaps(from, kingOffsets)
	}
	return set
}

// IsValidMove is the pseudo-legal pre-filter
func (p *Piece) IsValidMove(m Move) bool {
	return p.PossiblePositions(m.From).Has(m.To)
}

func (p *Piece) pawnDiagonals(from Position) PositionSet {
	var set PositionSet
	dir := PawnDirection(p.Color)
	for _, df := range []int{-1, 1} {
		if to, ok := from.Offset(df, dir); ok {
			set.Add(to)
		}
	}
	return set
}

// threatCandidates is what the piece could capture on, before obstruction
func (p *Piece) threatCandidates(from Position) PositionSet {
	if p.Kind == Pawn {
		return p.pawnDiagonals(from)
	}
	return p.PossiblePositions(from)
}

func leaps(from Position, offs []offset) PositionSet {
	var set PositionSet
	for _, o := range offs {
		if to, ok := from.Offset(o.df, o.dr); ok {
			set.Add(to)
		}
	}
	return set
}

func rays(from Position, dirs []offset) PositionSet {
	var set PositionSet
	for _, d := range dirs {
		for step := 1; ; step++ {
			to, ok := from.Offset(d.df*step, d.dr*step)
			if !ok {
				break
			}
			set.Add(to)
		}
	}
	return set
}
