// Package processor executes console commands against one match. It owns
// request validation, serialises access to the match and turns match errors
// into coded responses.
package processor

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"mysterymate/internal/board"
	"mysterymate/internal/core"
	"mysterymate/internal/game"
)

// Processor handles command execution for a single match
type Processor struct {
	mu       sync.Mutex
	match    *game.Match
	opts     []game.Option
	validate *validator.Validate
	log      *zap.Logger
}

// New creates a processor with a fresh match built from opts
func New(log *zap.Logger, opts ...game.Option) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{
		match:    game.NewMatch(opts...),
		opts:     opts,
		validate: newValidator(),
		log:      log.Named("processor"),
	}
}

func (p *Processor) Execute(cmd Command) ProcessorResponse {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cmd.Args != nil {
		if err := p.validate.Struct(cmd.Args); err != nil {
			p.log.Debug("invalid request", zap.Stringer("command", cmd.Type), zap.Error(err))
			return ProcessorResponse{
				Error: &core.ErrorResponse{
					Error:   "validation failed",
					Code:    core.CodeInvalidRequest,
					Details: describe(err),
				},
			}
		}
	}

	switch cmd.Type {
	case CmdJoin:
		return p.handleJoin(cmd)
	case CmdReset:
		p.match = game.NewMatch(p.opts...)
		return p.ok(p.buildStateResponse())
	case CmdResume:
		return p.handleResume(cmd)
	case CmdSelectHorcrux:
		return p.handleSelectHorcrux(cmd)
	case CmdMakeMove:
		return p.handleMakeMove(cmd)
	case CmdGuess:
		return p.handleGuess(cmd)
	case CmdGetState:
		return p.ok(p.buildStateResponse())
	case CmdGetBoard:
		return p.handleGetBoard()
	case CmdGetPositions:
		return p.handleGetPositions(cmd)
	default:
		return p.errorResponse("unknown command", core.CodeInvalidRequest)
	}
}

// handleJoin seats a color; the second join deals the board
func (p *Processor) handleJoin(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.JoinRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.CodeInvalidRequest)
	}
	color, _ := core.ParseColor(args.Color)
	if _, err := p.match.Join(color); err != nil {
		return p.fail(err)
	}
	return p.ok(p.buildStateResponse())
}

// handleResume replaces the match with one built from a placement
func (p *Processor) handleResume(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.ResumeRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.CodeInvalidRequest)
	}
	turn, _ := core.ParseColor(args.Turn)
	m, err := game.Resume(args.Placement, turn, p.opts...)
	if err != nil {
		return p.fail(err)
	}
	p.match = m
	p.log.Info("match resumed", zap.String("match", m.ID()), zap.String("placement", m.Placement()))
	return p.ok(p.buildStateResponse())
}

func (p *Processor) handleSelectHorcrux(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.SquareRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.CodeInvalidRequest)
	}
	color, _ := core.ParseColor(args.Color)
	if err := p.match.SelectHorcruxAt(color, board.MustPosition(args.Square)); err != nil {
		return p.fail(err)
	}
	return p.ok(p.buildStateResponse())
}

func (p *Processor) handleMakeMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.MoveRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.CodeInvalidRequest)
	}
	color, _ := core.ParseColor(args.Color)

	promotion := board.KindNone
	if args.Promotion != "" {
		promotion = board.KindFromChar(args.Promotion[0])
	}

	err := p.match.AttemptMove(color, board.MustPosition(args.From), board.MustPosition(args.To), promotion)
	if err != nil {
		return p.fail(err)
	}
	return p.ok(p.buildStateResponse())
}

func (p *Processor) handleGuess(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.GuessRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.CodeInvalidRequest)
	}
	color, _ := core.ParseColor(args.Color)

	var (
		correct bool
		err     error
	)
	if args.Square != "" {
		correct, err = p.match.GuessHorcruxAt(color, board.MustPosition(args.Square))
	} else {
		correct, err = p.match.GuessHorcrux(color, args.PieceID)
	}
	if err != nil {
		return p.fail(err)
	}

	return p.ok(core.GuessResponse{
		Correct:          correct,
		GuessesRemaining: p.match.Player(color).GuessesRemaining(),
	})
}

// handleGetBoard returns board visualization
func (p *Processor) handleGetBoard() ProcessorResponse {
	b := p.match.Board()
	if b == nil {
		return p.fail(fmt.Errorf("%w: board not dealt yet", core.ErrWrongPhase))
	}
	return p.ok(core.BoardResponse{
		Placement: b.Placement(),
		Board:     b.ToASCII(),
	})
}

func (p *Processor) handleGetPositions(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.PositionsRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.CodeInvalidRequest)
	}
	piece, set, err := p.match.AvailablePositionsAt(board.MustPosition(args.Square))
	if err != nil {
		return p.fail(err)
	}
	return p.ok(core.PositionsResponse{
		Square:    args.Square,
		PieceID:   piece.ID,
		Positions: set.Strings(),
	})
}

// buildStateResponse constructs the public view of the match
func (p *Processor) buildStateResponse() core.StateResponse {
	m := p.match
	resp := core.StateResponse{
		MatchID:   m.ID(),
		Phase:     m.Phase(),
		PhaseName: m.Phase().String(),
		Result:    m.Result(),
		Moves:     m.Moves(),
		Placement: m.Placement(),
	}
	if turn := m.Turn(); turn.Valid() {
		resp.Turn = turn.String()
	}
	if moves := resp.Moves; len(moves) > 0 {
		resp.LastMove = moves[len(moves)-1]
	}
	for _, c := range []core.Color{core.ColorWhite, core.ColorBlack} {
		pl := m.Player(c)
		if pl == nil {
			continue
		}
		resp.Players = append(resp.Players, core.PlayerState{
			Color:            c.String(),
			HorcruxChosen:    pl.HasHorcrux(),
			HorcruxFound:     pl.HorcruxFound(),
			GuessesRemaining: pl.GuessesRemaining(),
		})
	}
	return resp
}

// Match exposes the current match for read-only use by the console
func (p *Processor) Match() *game.Match {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.match
}

func (p *Processor) ok(data any) ProcessorResponse {
	return ProcessorResponse{Success: true, Data: data}
}

func (p *Processor) fail(err error) ProcessorResponse {
	code := core.CodeOf(err)
	if code == core.CodeInternalError {
		p.log.Error("command failed", zap.Error(err))
	}
	return p.errorResponse(err.Error(), code)
}

// errorResponse creates error response
func (p *Processor) errorResponse(message, code string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}
