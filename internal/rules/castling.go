package rules

import (
	"mysterymate/internal/board"
	"mysterymate/internal/core"
)

// castle describes one castling option for a color
type castle struct {
	kingTo   board.Position
	rookFrom board.Position
	rookTo   board.Position
}

func backRank(c core.Color) int {
	if c == core.ColorWhite {
		return 1
	}
	return board.Size
}

func castles(c core.Color) [2]castle {
	r := backRank(c)
	return [2]castle{
		{board.NewPosition('g', r), board.NewPosition('h', r), board.NewPosition('f', r)},
		{board.NewPosition('c', r), board.NewPosition('a', r), board.NewPosition('d', r)},
	}
}

func castlingTargets(c core.Color) []board.Position {
	cs := castles(c)
	return []board.Position{cs[0].kingTo, cs[1].kingTo}
}

// isCastlingShape reports whether a king move starts on its home square and
// lands on one of the two castling destinations
func isCastlingShape(m board.Move) bool {
	_, ok := castleFor(m)
	return ok
}

func castleFor(m board.Move) (castle, bool) {
	if m.Piece == nil || m.Piece.Kind != board.King {
		return castle{}, false
	}
	if m.From != board.NewPosition('e', backRank(m.Piece.Color)) {
		return castle{}, false
	}
	for _, c := range castles(m.Piece.Color) {
		if m.To == c.kingTo {
			return c, true
		}
	}
	return castle{}, false
}

// IsValidCastling checks every castling precondition for a king move. Any
// failure means castling is unavailable; it is never an error.
func IsValidCastling(b *board.Board, kingMove board.Move) bool {
	c, ok := castleFor(kingMove)
	if !ok {
		return false
	}
	king := kingMove.Piece
	if king.HasMoved || b.PieceAt(kingMove.From) == nil {
		return false
	}

	rook := b.PieceAt(c.rookFrom)
	if rook == nil || rook.Kind != board.Rook || rook.Color != king.Color || rook.HasMoved {
		return false
	}

	// The full gap to the rook, including b1/b8 on the queen side
	if b.IsObstructedAlongRank(kingMove.From, c.rookFrom) {
		return false
	}

	attacked := b.AttackedPositions(core.OppositeColor(king.Color))
	step := 1
	if c.kingTo.File < kingMove.From.File {
		step = -1
	}
	for pos := kingMove.From; ; {
		if attacked.Has(pos) {
			return false
		}
		if pos == c.kingTo {
			break
		}
		pos, _ = pos.Offset(step, 0)
	}
	return true
}
