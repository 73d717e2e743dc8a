// Package rules decides move legality on a board. Every function takes the
// board explicitly; the package holds no state.
package rules

import (
	"fmt"

	"mysterymate/internal/board"
	"mysterymate/internal/core"
)

// IsValidMove reports whether m may be played on b given the move that preceded it.
// prev is the zero Move at the start of a match.
func IsValidMove(b *board.Board, m board.Move, prev board.Move) bool {
	if m.Piece == nil || !m.From.Valid() || !m.To.Valid() {
		return false
	}

	if m.Piece.Kind == board.King && isCastlingShape(m) && IsValidCastling(b, m) {
		return true
	}

	if m.Piece.Kind == board.Pawn && IsValidPromotion(m) {
		if !promotionKind(m.Promotion) {
			return false
		}
		return GenerateValidPositions(b, m.Piece, m.From, prev).Has(m.To)
	}

	// A promotion piece on any other move is malformed
	if m.Promotion != board.KindNone {
		return false
	}

	if !m.Piece.IsValidMove(m) {
		return false
	}
	return GenerateValidPositions(b, m.Piece, m.From, prev).Has(m.To)
}

// GenerateValidPositions returns every legal destination for piece standing on from.
// Only king moves are filtered for check; other pieces may expose their own king.
func GenerateValidPositions(b *board.Board, piece *board.Piece, from board.Position, prev board.Move) board.PositionSet {
	var valid board.PositionSet
	if piece == nil || !from.Valid() {
		return valid
	}

	for _, to := range piece.PossiblePositions(from).Positions() {
		target := b.PieceAt(to)
		friendly := target != nil && target.Color == piece.Color

		switch piece.Kind {
		case board.Pawn:
			if to.File == from.File {
				// Pushes never capture and cannot jump
				if target == nil && !b.IsObstructedAlongFile(from, to) {
					valid.Add(to)
				}
				continue
			}
			if target != nil && !friendly {
				valid.Add(to)
			} else if target == nil && isEnPassantCapture(b, prev, board.NewMove(piece, from, to)) {
				valid.Add(to)
			}
		case board.Knight, board.King:
			if !friendly {
				valid.Add(to)
			}
		default:
			if !friendly && !b.IsObstructed(from, to) {
				valid.Add(to)
			}
		}
	}

	if piece.Kind != board.King {
		return valid
	}

	for _, to := range castlingTargets(piece.Color) {
		if IsValidCastling(b, board.NewMove(piece, from, to)) {
			valid.Add(to)
		}
	}

	for _, to := range valid.Positions() {
		if leavesKingInCheck(b, piece, from, to, prev) {
			valid.Remove(to)
		}
	}
	return valid
}

// IsInCheck reports whether color's king stands on a square the opponent attacks.
// It fails with ErrNoKing once that king has been captured.
func IsInCheck(b *board.Board, color core.Color) (bool, error) {
	kingPos, ok := b.FindKing(color)
	if !ok {
		return false, fmt.Errorf("%w: %s", core.ErrNoKing, color.Name())
	}
	return b.AttackedPositions(core.OppositeColor(color)).Has(kingPos), nil
}

// HasLegalMove reports whether any piece of color has at least one legal destination
func HasLegalMove(b *board.Board, color core.Color, prev board.Move) bool {
	for _, sq := range b.Occupied(color) {
		if !GenerateValidPositions(b, sq.Piece(), sq.Position(), prev).Empty() {
			return true
		}
	}
	return false
}

// IsValidPromotion reports whether m takes a pawn onto its own last rank
func IsValidPromotion(m board.Move) bool {
	if m.Piece == nil || m.Piece.Kind != board.Pawn {
		return false
	}
	return (m.Piece.Color == core.ColorWhite && m.To.Rank == board.Size) ||
		(m.Piece.Color == core.ColorBlack && m.To.Rank == 1)
}

// IsValidEnPassant reports whether m captures the pawn that prev just advanced two ranks.
// The captured pawn stands beside the capturer, on m's destination file and origin rank.
func IsValidEnPassant(prev board.Move, m board.Move) bool {
	if m.Piece == nil || m.Piece.Kind != board.Pawn {
		return false
	}
	df := m.To.FileIndex() - m.From.FileIndex()
	if (df != 1 && df != -1) || m.To.Rank-m.From.Rank != board.PawnDirection(m.Piece.Color) {
		return false
	}

	if prev.IsZero() || prev.Piece.Kind != board.Pawn || prev.Piece.Color == m.Piece.Color {
		return false
	}
	if dr := prev.To.Rank - prev.From.Rank; dr != 2 && dr != -2 {
		return false
	}
	return prev.To.File == m.To.File && prev.To.Rank == m.From.Rank
}

// isEnPassantCapture adds the board check that the advanced pawn is still beside the capturer
func isEnPassantCapture(b *board.Board, prev board.Move, m board.Move) bool {
	if !IsValidEnPassant(prev, m) {
		return false
	}
	victim := b.PieceAt(prev.To)
	return victim != nil && victim.Kind == board.Pawn && victim.Color != m.Piece.Color
}

func promotionKind(k board.Kind) bool {
	switch k {
	case board.KindNone, board.Queen, board.Rook, board.Bishop, board.Knight:
		return true
	}
	return false
}

// leavesKingInCheck plays the king move on a clone and inspects it. The king
// is put on from first when the board has it somewhere else.
func leavesKingInCheck(b *board.Board, piece *board.Piece, from, to board.Position, prev board.Move) bool {
	c := b.Clone()
	if occ := c.PieceAt(from); occ == nil || occ.ID != piece.ID {
		if sq, err := c.FindPieceSquare(piece.ID); err == nil && piece.ID != 0 {
			c.RemovePiece(sq.Position())
		}
		cp := *piece
		c.PlacePiece(from, &cp)
	}
	if _, err := Apply(c, board.NewMove(piece, from, to), prev); err != nil {
		return true
	}
	inCheck, err := IsInCheck(c, piece.Color)
	return err != nil || inCheck
}
