package core

// Phase is the match lifecycle stage, exposed to collaborators as a small integer
type Phase int

const (
	PhaseWaitingForOpponent Phase = iota
	PhaseChoosingObjective
	PhaseWhiteToMove
	PhaseBlackToMove
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseWaitingForOpponent:
		return "waiting for opponent"
	case PhaseChoosingObjective:
		return "choosing horcrux"
	case PhaseWhiteToMove:
		return "white to move"
	case PhaseBlackToMove:
		return "black to move"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Result is the terminal outcome of a match
type Result int

const (
	ResultNone Result = iota
	ResultWhiteWin
	ResultBlackWin
	ResultDraw
	ResultStalemate
)

func (r Result) String() string {
	switch r {
	case ResultWhiteWin:
		return "white wins"
	case ResultBlackWin:
		return "black wins"
	case ResultDraw:
		return "draw"
	case ResultStalemate:
		return "stalemate"
	default:
		return "none"
	}
}

// WinFor returns the result crediting color c
func WinFor(c Color) Result {
	if c == ColorWhite {
		return ResultWhiteWin
	}
	return ResultBlackWin
}

type Color byte

const (
	ColorWhite Color = iota + 1
	ColorBlack
)

func (c Color) String() string {
	if c == ColorWhite {
		return "w"
	} else if c == ColorBlack {
		return "b"
	} else {
		return "-"
	}
}

// Name returns the capitalized color name for messages
func (c Color) Name() string {
	switch c {
	case ColorWhite:
		return "White"
	case ColorBlack:
		return "Black"
	default:
		return "None"
	}
}

func (c Color) Valid() bool {
	return c == ColorWhite || c == ColorBlack
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

// ParseColor accepts "w", "b", "white" or "black"
func ParseColor(s string) (Color, bool) {
	switch s {
	case "w", "white", "W", "White":
		return ColorWhite, true
	case "b", "black", "B", "Black":
		return ColorBlack, true
	default:
		return 0, false
	}
}

// ToMove returns the phase in which color c is on turn
func ToMove(c Color) Phase {
	if c == ColorWhite {
		return PhaseWhiteToMove
	}
	return PhaseBlackToMove
}
