package game

import (
	"mysterymate/internal/board"
	"mysterymate/internal/core"
	"mysterymate/internal/rules"
)

// CheckGameOver evaluates the terminal conditions for the side to move without
// changing the match. It reports ResultNone while play can continue and the
// fixed result once the match has ended.
func (m *Match) CheckGameOver() core.Result {
	if m.phase == core.PhaseEnded {
		return m.result
	}
	toMove := m.Turn()
	if toMove == 0 || m.board == nil {
		return core.ResultNone
	}
	return m.checkGameOver(toMove, m.previous)
}

// checkGameOver runs the terminal checks in priority order: horcrux captured,
// king captured, no legal move, insufficient material
func (m *Match) checkGameOver(toMove core.Color, last board.Move) core.Result {
	for _, c := range []core.Color{toMove, core.OppositeColor(toMove)} {
		p := m.players[c]
		if p == nil || !p.HasHorcrux() {
			continue
		}
		if _, err := m.board.FindPieceSquare(p.HorcruxID()); err != nil {
			return core.WinFor(core.OppositeColor(c))
		}
	}

	for _, c := range []core.Color{toMove, core.OppositeColor(toMove)} {
		if _, ok := m.board.FindKing(c); !ok {
			return core.WinFor(core.OppositeColor(c))
		}
	}

	if !rules.HasLegalMove(m.board, toMove, last) {
		// Kings are both present here, so IsInCheck cannot fail
		inCheck, _ := rules.IsInCheck(m.board, toMove)
		if inCheck {
			return core.WinFor(core.OppositeColor(toMove))
		}
		return core.ResultStalemate
	}

	if InsufficientMaterial(m.board) {
		return core.ResultDraw
	}
	return core.ResultNone
}

// InsufficientMaterial reports whether neither side can force anything: no
// pawn, rook or queen remains and the minor pieces on the whole board are at
// most one knight, one bishop, or one light-squared plus one dark-squared bishop.
func InsufficientMaterial(b *board.Board) bool {
	var knights, light, dark int
	for _, c := range []core.Color{core.ColorWhite, core.ColorBlack} {
		for _, sq := range b.Occupied(c) {
			switch sq.Piece().Kind {
			case board.Pawn, board.Rook, board.Queen:
				return false
			case board.Knight:
				knights++
			case board.Bishop:
				if b.IsLightSquare(sq.Position()) {
					light++
				} else {
					dark++
				}
			}
		}
	}

	bishops := light + dark
	switch {
	case knights == 0 && bishops == 0:
		return true
	case knights == 1 && bishops == 0:
		return true
	case knights == 0 && bishops == 1:
		return true
	case knights == 0 && light == 1 && dark == 1:
		return true
	}
	return false
}
