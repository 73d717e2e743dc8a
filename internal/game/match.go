// Package game runs one horcrux chess match: joining, hidden objective
// selection, move execution, guesses and the terminal checks.
//
// A Match assumes a single writer; callers serialise access.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"mysterymate/internal/board"
	"mysterymate/internal/core"
	"mysterymate/internal/rules"
	"mysterymate/internal/stats"
)

type Match struct {
	id      string
	guesses int
	log     *zap.Logger
	stats   stats.Collector

	board    *board.Board
	players  map[core.Color]*core.Player
	registry map[int]*board.Piece // every identity dealt at setup, captured or not
	captured []*board.Piece

	phase     core.Phase
	result    core.Result
	firstTurn core.Color
	previous  board.Move
	snapshots []Snapshot
}

// NewMatch creates a match waiting for both players to join
func NewMatch(opts ...Option) *Match {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}
	return &Match{
		id:        o.id,
		guesses:   o.guesses,
		log:       o.logger.With(zap.String("match", o.id)),
		stats:     o.stats,
		players:   make(map[core.Color]*core.Player),
		registry:  make(map[int]*board.Piece),
		phase:     core.PhaseWaitingForOpponent,
		firstTurn: core.ColorWhite,
	}
}

// Resume starts a match from a FEN piece placement with both players joined.
// Objectives must still be chosen; toMove then has the first turn.
func Resume(placement string, toMove core.Color, opts ...Option) (*Match, error) {
	if !toMove.Valid() {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidColor, toMove)
	}
	b, err := board.ParsePlacement(placement)
	if err != nil {
		return nil, err
	}
	for _, c := range []core.Color{core.ColorWhite, core.ColorBlack} {
		kings := 0
		for _, sq := range b.Occupied(c) {
			if sq.Piece().Kind == board.King {
				kings++
			}
		}
		if kings != 1 {
			return nil, fmt.Errorf("%w: %s has %d kings", core.ErrInvalidPosition, c.Name(), kings)
		}
	}

	m := NewMatch(opts...)
	m.firstTurn = toMove
	for _, c := range []core.Color{core.ColorWhite, core.ColorBlack} {
		m.players[c] = core.NewPlayer(c, m.guesses)
	}
	m.setup(b)
	return m, nil
}

// Join seats a player; the second join deals the standard position
func (m *Match) Join(color core.Color) (*core.Player, error) {
	if !color.Valid() {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidColor, color)
	}
	if m.phase != core.PhaseWaitingForOpponent {
		return nil, fmt.Errorf("%w: match is %s", core.ErrWrongPhase, m.phase)
	}
	if _, ok := m.players[color]; ok {
		return nil, fmt.Errorf("%w: %s", core.ErrColorTaken, color.Name())
	}

	p := core.NewPlayer(color, m.guesses)
	m.players[color] = p
	m.log.Info("player joined", zap.String("color", color.Name()), zap.String("player", p.ID))

	if len(m.players) == 2 {
		m.setup(board.Standard())
	}
	return snapshotPlayer(p), nil
}

func (m *Match) setup(b *board.Board) {
	m.board = b
	for _, c := range []core.Color{core.ColorWhite, core.ColorBlack} {
		for _, sq := range b.Occupied(c) {
			m.registry[sq.Piece().ID] = sq.Piece()
		}
	}
	m.addSnapshot(b.Placement(), "", m.firstTurn)
	m.stats.SetGauge(stats.MetricPiecesOnBoard, int64(len(m.registry)))
	m.setPhase(core.PhaseChoosingObjective)
}

// SelectHorcrux hides id as color's objective. It must be one of color's own pieces.
func (m *Match) SelectHorcrux(color core.Color, id int) error {
	p, err := m.player(color)
	if err != nil {
		return err
	}
	if m.phase != core.PhaseChoosingObjective {
		return fmt.Errorf("%w: match is %s", core.ErrWrongPhase, m.phase)
	}
	if piece, ok := m.registry[id]; ok && piece.Color != color {
		return fmt.Errorf("%w: piece %d belongs to %s", core.ErrInvalidObjective, id, piece.Color.Name())
	}
	if _, ok := m.registry[id]; !ok && core.InRange(color, id) {
		return fmt.Errorf("%w: no piece with id %d", core.ErrInvalidObjective, id)
	}
	if err := p.SetHorcrux(id); err != nil {
		return err
	}
	m.log.Info("horcrux chosen", zap.String("color", color.Name()))

	if !m.players[core.OppositeColor(color)].HasHorcrux() {
		return nil
	}
	// A resumed position may already be over
	if r := m.checkGameOver(m.firstTurn, m.previous); r != core.ResultNone {
		m.end(r)
		return nil
	}
	m.setPhase(core.ToMove(m.firstTurn))
	return nil
}

// SelectHorcruxAt hides the piece standing on pos
func (m *Match) SelectHorcruxAt(color core.Color, pos board.Position) error {
	if m.board == nil {
		return fmt.Errorf("%w: match is %s", core.ErrWrongPhase, m.phase)
	}
	piece := m.board.PieceAt(pos)
	if piece == nil {
		return fmt.Errorf("%w: %s", core.ErrNotOccupied, pos)
	}
	return m.SelectHorcrux(color, piece.ID)
}

// AttemptMove validates and plays from-to for color. promotion may be KindNone,
// in which case a pawn reaching its last rank becomes a queen. A rejected move
// leaves the match untouched.
func (m *Match) AttemptMove(color core.Color, from, to board.Position, promotion board.Kind) error {
	start := time.Now()

	if err := m.checkTurn(color); err != nil {
		return err
	}

	piece := m.board.PieceAt(from)
	if piece == nil {
		return m.reject(color, from, to, fmt.Errorf("%w: no piece on %s", core.ErrIllegalMove, from))
	}
	if piece.Color != color {
		return m.reject(color, from, to, fmt.Errorf("%w: %s does not own %s", core.ErrIllegalMove, color.Name(), from))
	}
	if m.board.GetSquare(to) == nil {
		return m.reject(color, from, to, fmt.Errorf("%w: destination %s", core.ErrIllegalMove, to))
	}

	mv := board.Move{Piece: piece, From: from, To: to, Promotion: promotion}
	if mv.Promotion == board.KindNone && rules.IsValidPromotion(mv) {
		mv.Promotion = board.Queen
	}
	if !rules.IsValidMove(m.board, mv, m.previous) {
		return m.reject(color, from, to, fmt.Errorf("%w: %s", core.ErrIllegalMove, mv))
	}

	out, err := rules.Apply(m.board, mv, m.previous)
	if err != nil {
		return fmt.Errorf("executing %s: %w", mv, err)
	}

	opponent := core.OppositeColor(color)
	if out.Captured != nil {
		m.capture(out.Captured)
	}
	m.stats.IncCounter(stats.MetricMovesAccepted, 1)
	m.stats.SetGauge(stats.MetricPiecesOnBoard, int64(len(m.registry)-len(m.captured)))
	m.log.Debug("move",
		zap.String("color", color.Name()),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Bool("castled", out.Castled),
		zap.Bool("enPassant", out.EnPassant),
	)

	m.addSnapshot(m.board.Placement(), mv.String(), opponent)

	if result := m.checkGameOver(opponent, mv); result != core.ResultNone {
		m.end(result)
	} else {
		m.previous = mv
		m.setPhase(core.ToMove(opponent))
	}

	m.stats.ObserveHistogram(stats.MetricMoveSeconds, time.Since(start).Seconds())
	return nil
}

func (m *Match) capture(p *board.Piece) {
	m.captured = append(m.captured, p)
	m.stats.IncCounter(stats.MetricCaptures, 1)

	owner := m.players[p.Color]
	if p.Kind == board.King {
		owner.MarkKingCaptured()
	}
	if p.ID == owner.HorcruxID() {
		owner.MarkHorcruxCaptured()
	}
}

func (m *Match) reject(color core.Color, from, to board.Position, err error) error {
	m.stats.IncCounter(stats.MetricMovesRejected, 1)
	m.log.Debug("move rejected",
		zap.String("color", color.Name()),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Error(err),
	)
	return err
}

// AvailablePositions lists the legal destinations of piece standing on from
func (m *Match) AvailablePositions(piece *board.Piece, from board.Position) (board.PositionSet, error) {
	if piece == nil {
		return 0, core.ErrNullPiece
	}
	if m.board == nil {
		return 0, fmt.Errorf("%w: match is %s", core.ErrWrongPhase, m.phase)
	}
	return rules.GenerateValidPositions(m.board, piece, from, m.previous), nil
}

// AvailablePositionsAt resolves the piece on pos and lists its legal destinations
func (m *Match) AvailablePositionsAt(pos board.Position) (*board.Piece, board.PositionSet, error) {
	if m.board == nil {
		return nil, 0, fmt.Errorf("%w: match is %s", core.ErrWrongPhase, m.phase)
	}
	piece := m.board.PieceAt(pos)
	if piece == nil {
		return nil, 0, fmt.Errorf("%w: %s", core.ErrNotOccupied, pos)
	}
	set, err := m.AvailablePositions(piece, pos)
	return piece, set, err
}

// checkTurn fails unless the match is in color's move phase
func (m *Match) checkTurn(color core.Color) error {
	if _, err := m.player(color); err != nil {
		return err
	}
	switch m.phase {
	case core.PhaseWhiteToMove, core.PhaseBlackToMove:
		if m.phase != core.ToMove(color) {
			return fmt.Errorf("%w: %s", core.ErrNotYourTurn, m.phase)
		}
		return nil
	default:
		return fmt.Errorf("%w: match is %s", core.ErrWrongPhase, m.phase)
	}
}

func (m *Match) player(color core.Color) (*core.Player, error) {
	if !color.Valid() {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidColor, color)
	}
	p, ok := m.players[color]
	if !ok {
		return nil, fmt.Errorf("%w: %s has not joined", core.ErrWrongPhase, color.Name())
	}
	return p, nil
}

func (m *Match) setPhase(p core.Phase) {
	if m.phase == p {
		return
	}
	m.log.Info("phase", zap.Stringer("from", m.phase), zap.Stringer("to", p))
	m.phase = p
}

// end fixes the result; later calls are ignored
func (m *Match) end(r core.Result) {
	if m.phase == core.PhaseEnded {
		return
	}
	m.result = r
	m.setPhase(core.PhaseEnded)
	m.stats.IncCounter(stats.MetricMatchesEnded, 1)
	m.stats.ObserveHistogram(stats.MetricMatchPlies, float64(len(m.snapshots)-1))
	m.log.Info("match ended", zap.Stringer("result", r), zap.Int("plies", len(m.snapshots)-1))
}

func (m *Match) ID() string          { return m.id }
func (m *Match) Phase() core.Phase   { return m.phase }
func (m *Match) Result() core.Result { return m.result }

// Turn is the color to move, or 0 outside the move phases
func (m *Match) Turn() core.Color {
	switch m.phase {
	case core.PhaseWhiteToMove:
		return core.ColorWhite
	case core.PhaseBlackToMove:
		return core.ColorBlack
	}
	return 0
}

// Player returns a copy of the seated player for color, nil if nobody joined as it.
// Changing the copy does not affect the match.
func (m *Match) Player(color core.Color) *core.Player {
	return snapshotPlayer(m.players[color])
}

func snapshotPlayer(p *core.Player) *core.Player {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

// Board returns a copy of the live board, nil before both players joined
func (m *Match) Board() *board.Board {
	if m.board == nil {
		return nil
	}
	return m.board.Clone()
}

// Placement is the current FEN piece placement, empty before setup
func (m *Match) Placement() string {
	if m.board == nil {
		return ""
	}
	return m.board.Placement()
}

// PreviousMove is the last accepted move, the zero Move before the first one
func (m *Match) PreviousMove() board.Move { return m.previous }

// Captured lists captured pieces in capture order
func (m *Match) Captured() []*board.Piece {
	out := make([]*board.Piece, len(m.captured))
	copy(out, m.captured)
	return out
}

// Piece looks up an identity dealt at setup, whether or not it is still on the board
func (m *Match) Piece(id int) (*board.Piece, bool) {
	p, ok := m.registry[id]
	return p, ok
}
