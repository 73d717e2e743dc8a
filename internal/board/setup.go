package board

import (
	"fmt"
	"strings"

	"mysterymate/internal/core"
)

// backRankOrder is the order identities are handed out after the pawns
var backRankOrder = []struct {
	kind  Kind
	files string
}{
	{Rook, "ah"},
	{Knight, "bg"},
	{Bishop, "cf"},
	{Queen, "d"},
	{King, "e"},
}

// Standard returns the initial 32-piece position. White pieces get identities
// 1..16 and Black 17..32: pawns a..h, then rooks, knights, bishops, queen, king.
func Standard() *Board {
	b := New()
	for _, color := range []core.Color{core.ColorWhite, core.ColorBlack} {
		id, _ := core.IDRange(color)
		pawnRank, backRank := 2, 1
		if color == core.ColorBlack {
			pawnRank, backRank = 7, 8
		}
		for f := byte('a'); f <= 'h'; f++ {
			b.squares[Position{f, pawnRank}.Index()].piece = NewPiece(id, Pawn, color)
			id++
		}
		for _, br := range backRankOrder {
			for i := 0; i < len(br.files); i++ {
				b.squares[Position{br.files[i], backRank}.Index()].piece = NewPiece(id, br.kind, color)
				id++
			}
		}
	}
	return b
}

// ParsePlacement builds a board from a FEN piece-placement field. Identities are
// assigned per color in a1..h8 order from the bottom of each color's range.
// Kings and rooks away from their home squares are marked as moved.
func ParsePlacement(placement string) (*Board, error) {
	// Accept a full FEN and keep only the first field
	if fields := strings.Fields(placement); len(fields) > 0 {
		placement = fields[0]
	}

	ranks := strings.Split(placement, "/")
	if len(ranks) != Size {
		return nil, fmt.Errorf("%w: expected 8 ranks, got %d", core.ErrInvalidPosition, len(ranks))
	}

	var grid [Size * Size]byte
	for i, row := range ranks {
		rank := Size - i
		file := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if KindFromChar(ch) == KindNone {
				return nil, fmt.Errorf("%w: bad piece %q in rank %d", core.ErrInvalidPosition, ch, rank)
			}
			if file >= Size {
				return nil, fmt.Errorf("%w: too many pieces in rank %d", core.ErrInvalidPosition, rank)
			}
			grid[(rank-1)*Size+file] = ch
			file++
		}
		if file != Size {
			return nil, fmt.Errorf("%w: rank %d has %d files", core.ErrInvalidPosition, rank, file)
		}
	}

	b := New()
	next := map[core.Color]int{
		core.ColorWhite: core.MinWhitePieceID,
		core.ColorBlack: core.MinBlackPieceID,
	}
	for i, ch := range grid {
		if ch == 0 {
			continue
		}
		color := core.ColorBlack
		if ch >= 'A' && ch <= 'Z' {
			color = core.ColorWhite
		}
		id := next[color]
		if _, hi := core.IDRange(color); id > hi {
			return nil, fmt.Errorf("%w: more than 16 %s pieces", core.ErrInvalidPosition, strings.ToLower(color.Name()))
		}
		next[color]++

		p := NewPiece(id, KindFromChar(ch), color)
		pos := positionAt(i)
		p.HasMoved = (p.Kind == King || p.Kind == Rook) && !onHomeSquare(p, pos)
		b.squares[i].piece = p
	}
	return b, nil
}

func onHomeSquare(p *Piece, pos Position) bool {
	backRank := 1
	if p.Color == core.ColorBlack {
		backRank = Size
	}
	if pos.Rank != backRank {
		return false
	}
	switch p.Kind {
	case King:
		return pos.File == 'e'
	case Rook:
		return pos.File == 'a' || pos.File == 'h'
	}
	return false
}
