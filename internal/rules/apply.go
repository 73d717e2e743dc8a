package rules

import (
	"fmt"

	"mysterymate/internal/board"
	"mysterymate/internal/core"
)

// Outcome lists the side effects of an executed move
type Outcome struct {
	Captured   *board.Piece
	CapturedAt board.Position
	Castled    bool
	RookFrom   board.Position
	RookTo     board.Position
	EnPassant  bool
	Promoted   board.Kind
}

// Apply executes m on b without judging legality; callers validate first.
// The mover is whatever stands on m.From, so the same move can be replayed on a clone.
// Castling relocates the rook, en passant removes the bypassed pawn and a pawn
// reaching its last rank becomes m.Promotion (Queen when unset) keeping its identity.
func Apply(b *board.Board, m board.Move, prev board.Move) (Outcome, error) {
	var out Outcome

	piece := b.PieceAt(m.From)
	if piece == nil {
		return out, fmt.Errorf("%w: %s", core.ErrNotOccupied, m.From)
	}
	if b.GetSquare(m.To) == nil {
		return out, fmt.Errorf("%w: %s", core.ErrInvalidPosition, m.To)
	}

	mv := m
	mv.Piece = piece

	switch {
	case piece.Kind == board.King:
		if c, ok := castleFor(mv); ok && b.PieceAt(c.rookFrom) != nil {
			out.Castled, out.RookFrom, out.RookTo = true, c.rookFrom, c.rookTo
		}
	case piece.Kind == board.Pawn && mv.From.File != mv.To.File && b.PieceAt(mv.To) == nil:
		if isEnPassantCapture(b, prev, mv) {
			out.EnPassant = true
			out.CapturedAt = prev.To
		}
	}

	if target := b.PieceAt(mv.To); target != nil {
		out.Captured, out.CapturedAt = target, mv.To
	}

	// Validation is done, mutate from here on
	if out.EnPassant {
		out.Captured, _ = b.RemovePiece(out.CapturedAt)
	}
	if _, err := b.RemovePiece(mv.From); err != nil {
		return out, err
	}
	if err := b.PlacePiece(mv.To, piece); err != nil {
		return out, err
	}
	piece.HasMoved = true

	if out.Castled {
		rook, err := b.RemovePiece(out.RookFrom)
		if err != nil {
			return out, err
		}
		rook.HasMoved = true
		if err := b.PlacePiece(out.RookTo, rook); err != nil {
			return out, err
		}
	}

	if IsValidPromotion(mv) {
		out.Promoted = m.Promotion
		if out.Promoted == board.KindNone {
			out.Promoted = board.Queen
		}
		piece.Kind = out.Promoted
	}
	return out, nil
}
