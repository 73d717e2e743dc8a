package processor

import (
	"mysterymate/internal/core"
)

// CommandType defines the type of command being executed
type CommandType int

const (
	CmdJoin CommandType = iota
	CmdReset
	CmdResume
	CmdSelectHorcrux
	CmdMakeMove
	CmdGuess
	CmdGetState
	CmdGetBoard
	CmdGetPositions
)

func (t CommandType) String() string {
	switch t {
	case CmdJoin:
		return "join"
	case CmdReset:
		return "reset"
	case CmdResume:
		return "resume"
	case CmdSelectHorcrux:
		return "horcrux"
	case CmdMakeMove:
		return "move"
	case CmdGuess:
		return "guess"
	case CmdGetState:
		return "state"
	case CmdGetBoard:
		return "board"
	case CmdGetPositions:
		return "positions"
	default:
		return "unknown"
	}
}

// Command is a unified structure for all processor operations
type Command struct {
	Type CommandType
	Args any // Command-specific arguments
}

// ProcessorResponse wraps the response with metadata
type ProcessorResponse struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   *core.ErrorResponse `json:"error,omitempty"`
}

func NewJoinCommand(req core.JoinRequest) Command {
	return Command{Type: CmdJoin, Args: req}
}

// NewResetCommand discards the current match for a fresh one
func NewResetCommand() Command {
	return Command{Type: CmdReset}
}

func NewResumeCommand(req core.ResumeRequest) Command {
	return Command{Type: CmdResume, Args: req}
}

func NewSelectHorcruxCommand(req core.SquareRequest) Command {
	return Command{Type: CmdSelectHorcrux, Args: req}
}

func NewMakeMoveCommand(req core.MoveRequest) Command {
	return Command{Type: CmdMakeMove, Args: req}
}

func NewGuessCommand(req core.GuessRequest) Command {
	return Command{Type: CmdGuess, Args: req}
}

func NewGetStateCommand() Command {
	return Command{Type: CmdGetState}
}

func NewGetBoardCommand() Command {
	return Command{Type: CmdGetBoard}
}

func NewGetPositionsCommand(req core.PositionsRequest) Command {
	return Command{Type: CmdGetPositions, Args: req}
}
