package rules

import (
	"errors"
	"strings"
	"testing"

	"github.com/notnil/chess"

	"mysterymate/internal/board"
	"mysterymate/internal/core"
)

func mustBoard(t *testing.T, placement string) *board.Board {
	t.Helper()
	b, err := board.ParsePlacement(placement)
	if err != nil {
		t.Fatalf("ParsePlacement(%q): %v", placement, err)
	}
	return b
}

func pos(s string) board.Position {
	return board.MustPosition(s)
}

func moveOn(t *testing.T, b *board.Board, from, to string) board.Move {
	t.Helper()
	p := b.PieceAt(pos(from))
	if p == nil {
		t.Fatalf("no piece on %s", from)
	}
	return board.NewMove(p, pos(from), pos(to))
}

// In positions without check or pins, legal destinations must agree with an
// independent move generator
func TestGenerateValidPositionsMatchesOracle(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"starting position white", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"starting position black", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1"},
		{"open game white", "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"},
		{"open game black", "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 2 3"},
		{"italian white can castle", "r1bqk2r/pppp1ppp/2n2n2/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 5"},
		{"italian black can castle", "r1bqk2r/pppp1ppp/2n2n2/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 4 5"},
		{"rook endgame white", "8/8/3k4/8/2R5/8/4K3/8 w - - 0 1"},
		{"rook endgame black", "8/8/3k4/8/2R5/8/4K3/8 b - - 0 1"},
		{"promotion and attacked transit white", "4k3/1P6/8/8/8/8/6p1/4K2R w K - 0 1"},
		{"promotion capture black", "4k3/1P6/8/8/8/8/6p1/4K2R b K - 0 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt, err := chess.FEN(tt.fen)
			if err != nil {
				t.Fatalf("chess.FEN: %v", err)
			}
			game := chess.NewGame(opt)

			// Promotions collapse onto their destination square
			want := make(map[string]board.PositionSet)
			for _, m := range game.ValidMoves() {
				set := want[m.S1().String()]
				set.Add(pos(m.S2().String()))
				want[m.S1().String()] = set
			}

			b := mustBoard(t, tt.fen)
			color := core.ColorWhite
			if strings.Fields(tt.fen)[1] == "b" {
				color = core.ColorBlack
			}

			for _, sq := range b.Occupied(color) {
				got := GenerateValidPositions(b, sq.Piece(), sq.Position(), board.Move{})
				if exp := want[sq.Position().String()]; got != exp {
					t.Errorf("%v on %s: got %v, want %v", sq.Piece(), sq.Position(), got, exp)
				}
			}
		})
	}
}

func TestSlidersStopAtFirstBlocker(t *testing.T) {
	b := mustBoard(t, "8/8/8/3p4/8/8/8/3R3K")
	got := GenerateValidPositions(b, b.PieceAt(pos("d1")), pos("d1"), board.Move{})
	want := board.SetOf("a1", "b1", "c1", "e1", "f1", "g1", "d2", "d3", "d4", "d5")
	if got != want {
		t.Errorf("rook d1 = %v, want %v", got, want)
	}

	b = mustBoard(t, "8/8/8/8/3P4/8/8/3R3K")
	got = GenerateValidPositions(b, b.PieceAt(pos("d1")), pos("d1"), board.Move{})
	if got.Has(pos("d4")) || got.Has(pos("d5")) {
		t.Errorf("rook d1 must not reach its own pawn or beyond: %v", got)
	}
	if !got.Has(pos("d3")) {
		t.Errorf("rook d1 should reach d3: %v", got)
	}
}

func TestPawnMoves(t *testing.T) {
	tests := []struct {
		name      string
		placement string
		from      string
		want      board.PositionSet
	}{
		{"double step from home", "8/8/8/8/8/8/4P3/8", "e2", board.SetOf("e3", "e4")},
		{"blocked by enemy", "8/8/8/8/8/4p3/4P3/8", "e2", 0},
		{"double step blocked", "8/8/8/8/4p3/8/4P3/8", "e2", board.SetOf("e3")},
		{"diagonal capture", "8/8/8/8/8/3n1B2/4P3/8", "e2", board.SetOf("e3", "e4", "d3")},
		{"black pawn", "8/4p3/5N2/8/8/8/8/8", "e7", board.SetOf("e6", "e5", "f6")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.placement)
			got := GenerateValidPositions(b, b.PieceAt(pos(tt.from)), pos(tt.from), board.Move{})
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKingAvoidsAttackedSquares(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/3r4/4K3")
	before := b.Clone()

	got := GenerateValidPositions(b, b.PieceAt(pos("e1")), pos("e1"), board.Move{})
	if want := board.SetOf("d2", "f1"); got != want {
		t.Errorf("king e1 = %v, want %v", got, want)
	}
	if !b.Equal(before) {
		t.Error("check filtering mutated the live board")
	}

	// A protected attacker cannot be taken
	b = mustBoard(t, "4k3/8/8/8/8/1n6/3r4/4K3")
	got = GenerateValidPositions(b, b.PieceAt(pos("e1")), pos("e1"), board.Move{})
	if want := board.SetOf("f1"); got != want {
		t.Errorf("king e1 = %v, want %v", got, want)
	}
}

// The king is filtered from the square it is asked about, even when another
// piece stands there on the live board
func TestKingFilteredFromGivenSquare(t *testing.T) {
	b := mustBoard(t, "1r2k3/8/8/8/8/8/8/R3K3")
	before := b.Clone()

	got := GenerateValidPositions(b, b.PieceAt(pos("e1")), pos("a1"), board.Move{})
	if want := board.SetOf("a2"); got != want {
		t.Errorf("king from a1 = %v, want %v", got, want)
	}
	if !b.Equal(before) {
		t.Error("check filtering mutated the live board")
	}
}

func TestIsInCheck(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/8/8/8/8/r3K3")
	inCheck, err := IsInCheck(b, core.ColorWhite)
	if err != nil || !inCheck {
		t.Errorf("IsInCheck(white) = %v, %v; want true", inCheck, err)
	}
	inCheck, err = IsInCheck(b, core.ColorBlack)
	if err != nil || inCheck {
		t.Errorf("IsInCheck(black) = %v, %v; want false", inCheck, err)
	}

	b = mustBoard(t, "8/8/8/8/8/8/8/r3K3")
	if _, err := IsInCheck(b, core.ColorBlack); !errors.Is(err, core.ErrNoKing) {
		t.Errorf("IsInCheck without king err = %v, want ErrNoKing", err)
	}
}

func TestHasLegalMove(t *testing.T) {
	// White king h1 boxed in by the queen on f2 without being in check
	b := mustBoard(t, "k7/8/8/8/8/8/5q2/7K")
	if inCheck, _ := IsInCheck(b, core.ColorWhite); inCheck {
		t.Fatal("white should not be in check")
	}
	if HasLegalMove(b, core.ColorWhite, board.Move{}) {
		t.Error("white should have no legal move")
	}
	if !HasLegalMove(b, core.ColorBlack, board.Move{}) {
		t.Error("black should have legal moves")
	}
}

func TestIsValidPromotion(t *testing.T) {
	white := board.NewPiece(1, board.Pawn, core.ColorWhite)
	black := board.NewPiece(17, board.Pawn, core.ColorBlack)
	knight := board.NewPiece(11, board.Knight, core.ColorWhite)

	tests := []struct {
		name string
		move board.Move
		want bool
	}{
		{"white to rank 8", board.NewMove(white, pos("a7"), pos("a8")), true},
		{"white to rank 7", board.NewMove(white, pos("a6"), pos("a7")), false},
		{"white to rank 1", board.NewMove(white, pos("a2"), pos("a1")), false},
		{"black to rank 1", board.NewMove(black, pos("h2"), pos("h1")), true},
		// Regression: black must not promote on white's last rank
		{"black to rank 8", board.NewMove(black, pos("a7"), pos("a8")), false},
		{"knight to rank 8", board.NewMove(knight, pos("b6"), pos("a8")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPromotion(tt.move); got != tt.want {
				t.Errorf("IsValidPromotion(%v) = %v, want %v", tt.move, got, tt.want)
			}
		})
	}
}

func TestPromotionNeedsPawnMovement(t *testing.T) {
	b := mustBoard(t, "rn2k3/P7/8/8/8/8/8/4K3")
	push := moveOn(t, b, "a7", "a8")
	if IsValidMove(b, push, board.Move{}) {
		t.Error("a7a8 onto an occupied square must be illegal")
	}

	capture := moveOn(t, b, "a7", "b8")
	capture.Promotion = board.Knight
	if !IsValidMove(b, capture, board.Move{}) {
		t.Error("a7xb8=N should be legal")
	}

	capture.Promotion = board.King
	if IsValidMove(b, capture, board.Move{}) {
		t.Error("promotion to a king must be illegal")
	}
}

func TestPromotionOnOrdinaryMove(t *testing.T) {
	b := board.Standard()
	m := moveOn(t, b, "e2", "e4")
	m.Promotion = board.Queen
	if IsValidMove(b, m, board.Move{}) {
		t.Error("a promotion piece on a non-promoting move must be illegal")
	}
}

func TestIsValidMove(t *testing.T) {
	b := board.Standard()
	tests := []struct {
		from, to string
		want     bool
	}{
		{"e2", "e4", true},
		{"e2", "e5", false},
		{"g1", "f3", true},
		{"g1", "e2", false},
		{"f1", "c4", false},
		{"a1", "a3", false},
		{"e1", "g1", false},
		{"d8", "d6", false},
	}
	for _, tt := range tests {
		m := moveOn(t, b, tt.from, tt.to)
		if got := IsValidMove(b, m, board.Move{}); got != tt.want {
			t.Errorf("IsValidMove(%s%s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
	if IsValidMove(b, board.Move{From: pos("e2"), To: pos("e4")}, board.Move{}) {
		t.Error("a move without a piece must be illegal")
	}
}

// Only king moves are filtered for check, so a pinned piece may still move
func TestPinnedPieceIsNotFiltered(t *testing.T) {
	b := mustBoard(t, "4r1k1/8/8/8/8/8/4N3/4K3")
	m := moveOn(t, b, "e2", "c3")
	if !IsValidMove(b, m, board.Move{}) {
		t.Error("pinned knight move should pass")
	}
}
