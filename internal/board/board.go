package board

import (
	"fmt"
	"strings"

	"mysterymate/internal/core"
)

// StandardPlacement is the FEN piece-placement field of the initial position
const StandardPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// Square is one board cell; it lives as long as its Board, only the occupant changes
type Square struct {
	pos   Position
	piece *Piece
}

func (s *Square) Position() Position { return s.pos }
func (s *Square) Piece() *Piece      { return s.piece }
func (s *Square) IsOccupied() bool   { return s.piece != nil }

// Board is a fixed 8x8 grid of squares. It is a plain value: Clone gives an
// independent copy including its pieces.
type Board struct {
	squares [Size * Size]Square
}

// New returns an empty board
func New() *Board {
	b := &Board{}
	for i := range b.squares {
		b.squares[i].pos = positionAt(i)
	}
	return b
}

// GetSquare returns the square at pos, or nil outside the grid
func (b *Board) GetSquare(pos Position) *Square {
	if !pos.Valid() {
		return nil
	}
	return &b.squares[pos.Index()]
}

// PieceAt returns the occupant at pos, nil when empty or off the board
func (b *Board) PieceAt(pos Position) *Piece {
	if sq := b.GetSquare(pos); sq != nil {
		return sq.piece
	}
	return nil
}

// PlacePiece puts p on pos, replacing any occupant
func (b *Board) PlacePiece(pos Position, p *Piece) error {
	sq := b.GetSquare(pos)
	if sq == nil {
		return fmt.Errorf("%w: %s", core.ErrInvalidPosition, pos)
	}
	if p == nil {
		return core.ErrNullPiece
	}
	sq.piece = p
	return nil
}

// RemovePiece clears pos and returns the former occupant
func (b *Board) RemovePiece(pos Position) (*Piece, error) {
	sq := b.GetSquare(pos)
	if sq == nil {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidPosition, pos)
	}
	if sq.piece == nil {
		return nil, fmt.Errorf("%w: %s", core.ErrNotOccupied, pos)
	}
	p := sq.piece
	sq.piece = nil
	return p, nil
}

// FindPieceSquare locates the piece with identity id. ErrNotFound means it was captured.
func (b *Board) FindPieceSquare(id int) (*Square, error) {
	for i := range b.squares {
		if p := b.squares[i].piece; p != nil && p.ID == id {
			return &b.squares[i], nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", core.ErrNotFound, id)
}

// FindKing returns the king's square for color; ok is false once it has been captured
func (b *Board) FindKing(color core.Color) (Position, bool) {
	for i := range b.squares {
		if p := b.squares[i].piece; p != nil && p.Kind == King && p.Color == color {
			return b.squares[i].pos, true
		}
	}
	return NoPosition, false
}

// Occupied returns every occupied square of color, a1 to h8
func (b *Board) Occupied(color core.Color) []*Square {
	var out []*Square
	for i := range b.squares {
		if p := b.squares[i].piece; p != nil && p.Color == color {
			out = append(out, &b.squares[i])
		}
	}
	return out
}

// Clone deep-copies the board; pieces keep their identity but are new values
func (b *Board) Clone() *Board {
	c := &Board{}
	for i := range b.squares {
		c.squares[i].pos = b.squares[i].pos
		if p := b.squares[i].piece; p != nil {
			cp := *p
			c.squares[i].piece = &cp
		}
	}
	return c
}

// Equal compares occupants by value
func (b *Board) Equal(o *Board) bool {
	for i := range b.squares {
		p, q := b.squares[i].piece, o.squares[i].piece
		if (p == nil) != (q == nil) {
			return false
		}
		if p != nil && *p != *q {
			return false
		}
	}
	return true
}

// between lists the cells strictly between from and to; ok is false when the
// two squares do not share a rank, file or diagonal
func between(from, to Position) ([]Position, bool) {
	df := to.FileIndex() - from.FileIndex()
	dr := to.Rank - from.Rank
	if df == 0 && dr == 0 {
		return nil, false
	}
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return nil, false
	}
	sf, sr := sign(df), sign(dr)
	n := max(abs(df), abs(dr))
	cells := make([]Position, 0, n)
	for step := 1; step < n; step++ {
		p, _ := from.Offset(sf*step, sr*step)
		cells = append(cells, p)
	}
	return cells, true
}

func (b *Board) anyOccupied(cells []Position) bool {
	for _, p := range cells {
		if b.PieceAt(p) != nil {
			return true
		}
	}
	return false
}

// IsObstructedAlongRank is false unless from and to share a rank with a piece between them
func (b *Board) IsObstructedAlongRank(from, to Position) bool {
	if from.Rank != to.Rank {
		return false
	}
	cells, _ := between(from, to)
	return b.anyOccupied(cells)
}

// IsObstructedAlongFile is false unless from and to share a file with a piece between them
func (b *Board) IsObstructedAlongFile(from, to Position) bool {
	if from.File != to.File {
		return false
	}
	cells, _ := between(from, to)
	return b.anyOccupied(cells)
}

// IsObstructedAlongDiagonal is false unless from and to share a diagonal with a piece between them
func (b *Board) IsObstructedAlongDiagonal(from, to Position) bool {
	if abs(to.FileIndex()-from.FileIndex()) != abs(to.Rank-from.Rank) {
		return false
	}
	cells, _ := between(from, to)
	return b.anyOccupied(cells)
}

// IsObstructed checks whichever straight line joins from and to. Knight jumps never are.
func (b *Board) IsObstructed(from, to Position) bool {
	cells, ok := between(from, to)
	return ok && b.anyOccupied(cells)
}

// AttackedPositions is the raw threat map of color: every square one of its
// pieces could capture on, stopping each ray at the first blocker. It does not
// consider whether the attacker's own king would be exposed.
func (b *Board) AttackedPositions(color core.Color) PositionSet {
	var attacked PositionSet
	for _, sq := range b.Occupied(color) {
		from := sq.pos
		for _, to := range sq.piece.threatCandidates(from).Positions() {
			if b.IsObstructed(from, to) {
				continue
			}
			if t := b.PieceAt(to); t != nil && t.Color == color {
				continue
			}
			attacked.Add(to)
		}
	}
	return attacked
}

func (b *Board) IsLightSquare(pos Position) bool {
	return (pos.FileIndex()+pos.Rank)%2 == 0
}

func (b *Board) IsDarkSquare(pos Position) bool {
	return !b.IsLightSquare(pos)
}

// Placement exports the FEN piece-placement field
func (b *Board) Placement() string {
	var sb strings.Builder
	for r := Size; r >= 1; r-- {
		empty := 0
		for f := 0; f < Size; f++ {
			p := b.squares[(r-1)*Size+f].piece
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Symbol())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r > 1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// ToASCII creates an ASCII representation of the board
func (b *Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for r := Size; r >= 1; r-- {
		sb.WriteString(fmt.Sprintf("%d ", r))
		for f := 0; f < Size; f++ {
			piece := b.squares[(r-1)*Size+f].piece
			if piece == nil {
				sb.WriteString(". ")
			} else {
				sb.WriteString(fmt.Sprintf("%c ", piece.Symbol()))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}

func (b *Board) String() string {
	return b.ToASCII()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
