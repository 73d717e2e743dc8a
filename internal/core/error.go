package core

import "errors"

var (
	ErrInvalidPosition  = errors.New("invalid position")
	ErrNotOccupied      = errors.New("square not occupied")
	ErrIllegalMove      = errors.New("illegal move")
	ErrInvalidObjective = errors.New("invalid horcrux")
	ErrNoGuessesLeft    = errors.New("no guesses left")
	ErrAlreadyResolved  = errors.New("horcrux already found")
	ErrUnknownPiece     = errors.New("unknown piece")
	ErrNoKing           = errors.New("no king on board")
	ErrNotFound         = errors.New("piece not found")
	ErrNullPiece        = errors.New("no piece supplied")

	ErrWrongPhase   = errors.New("operation not allowed in current phase")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrColorTaken   = errors.New("color already joined")
	ErrInvalidColor = errors.New("invalid color")
)

// Error codes
const (
	CodeInvalidPosition  = "INVALID_POSITION"
	CodeNotOccupied      = "NOT_OCCUPIED"
	CodeIllegalMove      = "ILLEGAL_MOVE"
	CodeInvalidObjective = "INVALID_OBJECTIVE"
	CodeNoGuessesLeft    = "NO_GUESSES_LEFT"
	CodeAlreadyResolved  = "ALREADY_RESOLVED"
	CodeUnknownPiece     = "UNKNOWN_PIECE"
	CodeNoKing           = "NO_KING"
	CodeNotFound         = "NOT_FOUND"
	CodeNullPiece        = "NULL_PIECE"
	CodeWrongPhase       = "WRONG_PHASE"
	CodeNotYourTurn      = "NOT_YOUR_TURN"
	CodeColorTaken       = "COLOR_TAKEN"
	CodeInvalidColor     = "INVALID_COLOR"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInternalError    = "INTERNAL_ERROR"
)

var codes = []struct {
	err  error
	code string
}{
	{ErrInvalidPosition, CodeInvalidPosition},
	{ErrNotOccupied, CodeNotOccupied},
	{ErrIllegalMove, CodeIllegalMove},
	{ErrInvalidObjective, CodeInvalidObjective},
	{ErrNoGuessesLeft, CodeNoGuessesLeft},
	{ErrAlreadyResolved, CodeAlreadyResolved},
	{ErrUnknownPiece, CodeUnknownPiece},
	{ErrNoKing, CodeNoKing},
	{ErrNotFound, CodeNotFound},
	{ErrNullPiece, CodeNullPiece},
	{ErrWrongPhase, CodeWrongPhase},
	{ErrNotYourTurn, CodeNotYourTurn},
	{ErrColorTaken, CodeColorTaken},
	{ErrInvalidColor, CodeInvalidColor},
}

// CodeOf maps an error to its wire code, INTERNAL_ERROR when unclassified
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeInternalError
}
