package core

// Request types

type JoinRequest struct {
	Color string `json:"color" validate:"required,oneof=w b"`
}

// SquareRequest names a board square, used for horcrux selection and position queries
type SquareRequest struct {
	Color  string `json:"color" validate:"required,oneof=w b"`
	Square string `json:"square" validate:"required,square"`
}

type MoveRequest struct {
	Color     string `json:"color" validate:"required,oneof=w b"`
	From      string `json:"from" validate:"required,square"`
	To        string `json:"to" validate:"required,square,nefield=From"`
	Promotion string `json:"promotion,omitempty" validate:"omitempty,oneof=q r b n"`
}

// GuessRequest targets either a square or a piece identity directly
type GuessRequest struct {
	Color   string `json:"color" validate:"required,oneof=w b"`
	Square  string `json:"square,omitempty" validate:"required_without=PieceID,omitempty,square"`
	PieceID int    `json:"pieceId,omitempty" validate:"required_without=Square,omitempty,min=1,max=32"`
}

// PositionsRequest asks for the legal destinations of the piece on Square
type PositionsRequest struct {
	Square string `json:"square" validate:"required,square"`
}

// ResumeRequest restarts the match from a FEN piece placement
type ResumeRequest struct {
	Placement string `json:"placement" validate:"required,placement"`
	Turn      string `json:"turn" validate:"required,oneof=w b"`
}

// Response types

type StateResponse struct {
	MatchID   string        `json:"matchId"`
	Phase     Phase         `json:"phase"`
	PhaseName string        `json:"phaseName"`
	Result    Result        `json:"result"`
	Turn      string        `json:"turn,omitempty"` // "w" or "b"
	Moves     []string      `json:"moves"`
	LastMove  string        `json:"lastMove,omitempty"`
	Players   []PlayerState `json:"players"`
	Placement string        `json:"placement"`
}

// PlayerState is the public view of a player; the horcrux id is never included
type PlayerState struct {
	Color            string `json:"color"`
	HorcruxChosen    bool   `json:"horcruxChosen"`
	HorcruxFound     bool   `json:"horcruxFound"`
	GuessesRemaining int    `json:"guessesRemaining"`
}

type PositionsResponse struct {
	Square    string   `json:"square"`
	PieceID   int      `json:"pieceId"`
	Positions []string `json:"positions"`
}

type GuessResponse struct {
	Correct          bool `json:"correct"`
	GuessesRemaining int  `json:"guessesRemaining"`
}

type BoardResponse struct {
	Placement string `json:"placement"`
	Board     string `json:"board"` // ASCII representation
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
