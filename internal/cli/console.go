package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"mysterymate/internal/core"
	"mysterymate/internal/processor"
)

// LineReader is the part of a readline instance the console uses
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// SecretReader reads one line without echoing it
type SecretReader func(prompt string) (string, error)

// Console runs the hot-seat loop: one keyboard, both players
type Console struct {
	proc   *processor.Processor
	view   *CLI
	lines  LineReader
	secret SecretReader
	log    *zap.Logger
}

func NewConsole(proc *processor.Processor, view *CLI, lines LineReader, secret SecretReader, log *zap.Logger) *Console {
	if log == nil {
		log = zap.NewNop()
	}
	return &Console{
		proc:   proc,
		view:   view,
		lines:  lines,
		secret: secret,
		log:    log.Named("console"),
	}
}

// Run reads commands until quit or end of input
func (c *Console) Run() error {
	for {
		c.lines.SetPrompt(c.prompt())

		line, err := c.lines.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if !c.ProcessCommand(ParseCommand(line)) {
			return nil
		}
	}
}

func (c *Console) prompt() string {
	if turn := c.proc.Match().Turn(); turn.Valid() {
		return fmt.Sprintf("[%s]> ", turn)
	}
	return "> "
}

// ProcessCommand handles one command; false means exit
func (c *Console) ProcessCommand(cmd *Command) bool {
	c.log.Debug("command", zap.Int("type", int(cmd.Type)), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case CmdQuit:
		return false

	case CmdNone:
		return true

	case CmdNew:
		c.newMatch()

	case CmdResume:
		c.resume(cmd.Args)

	case CmdHorcrux:
		c.hideHorcruxes()

	case CmdMove:
		c.move(cmd.Args[0])

	case CmdGuess:
		c.guess(cmd.Args)

	case CmdPositions:
		c.positions(cmd.Args)

	case CmdBoard:
		c.showBoard()

	case CmdState:
		if data, ok := c.exec(processor.NewGetStateCommand()); ok {
			c.view.ShowState(data.(core.StateResponse))
		}

	case CmdColor:
		if len(cmd.Args) != 1 {
			c.view.ShowMessage("Usage: color <off|brown|green|gray>")
			break
		}
		if err := c.view.SetTheme(ColorTheme(cmd.Args[0])); err != nil {
			c.view.ShowError(err)
		}

	case CmdVerbose:
		if c.view.ToggleVerbose() {
			c.view.ShowMessage("Verbose on: the board is shown after every move")
		} else {
			c.view.ShowMessage("Verbose off")
		}

	case CmdHistory:
		if c.proc.Match().Placement() == "" {
			c.view.ShowMessage("No board yet. Start with 'new' or 'resume'.")
			break
		}
		c.view.ShowGameHistory(c.proc.Match())

	case CmdHelp:
		c.view.ShowHelp()
	}
	return true
}

func (c *Console) newMatch() {
	if _, ok := c.exec(processor.NewResetCommand()); !ok {
		return
	}
	for _, color := range []string{"w", "b"} {
		if _, ok := c.exec(processor.NewJoinCommand(core.JoinRequest{Color: color})); !ok {
			return
		}
	}
	c.view.ShowMessage("New match. Each player now hides a horcrux with 'horcrux'.")
}

func (c *Console) resume(args []string) {
	if len(args) < 1 {
		c.view.ShowMessage("Usage: resume <placement> [w|b]")
		return
	}
	turn := "w"
	if len(args) > 1 {
		turn = args[1]
	}
	if _, ok := c.exec(processor.NewResumeCommand(core.ResumeRequest{Placement: args[0], Turn: turn})); !ok {
		return
	}
	c.showBoard()
	c.view.ShowMessage("Position set. Each player now hides a horcrux with 'horcrux'.")
}

// hideHorcruxes asks every player who has not chosen yet for a square, without echo
func (c *Console) hideHorcruxes() {
	data, ok := c.exec(processor.NewGetStateCommand())
	if !ok {
		return
	}
	state := data.(core.StateResponse)
	if state.Phase != core.PhaseChoosingObjective {
		c.view.ShowMessage(fmt.Sprintf("Horcruxes are hidden while choosing, the match is %s.", state.PhaseName))
		return
	}

	for _, p := range state.Players {
		if p.HorcruxChosen {
			continue
		}
		color, _ := core.ParseColor(p.Color)
		square, err := c.secret(fmt.Sprintf("%s, square of your horcrux (hidden): ", color.Name()))
		if err != nil {
			c.view.ShowError(err)
			return
		}
		req := core.SquareRequest{Color: p.Color, Square: strings.ToLower(strings.TrimSpace(square))}
		if _, ok := c.exec(processor.NewSelectHorcruxCommand(req)); !ok {
			c.view.ShowMessage("Type 'horcrux' to try again.")
			return
		}
	}

	m := c.proc.Match()
	if m.Phase() == core.PhaseEnded {
		c.view.ShowMessage("Both horcruxes hidden, but the position is already decided.")
		c.view.ShowGameOver(m.Result())
		return
	}
	c.view.ShowMessage(fmt.Sprintf("Both horcruxes hidden. %s moves first.", m.Turn().Name()))
}

func (c *Console) move(token string) {
	from, to, promotion, err := ParseMove(token)
	if err != nil {
		c.view.ShowError(err)
		return
	}
	turn := c.proc.Match().Turn()
	if !turn.Valid() {
		c.view.ShowMessage(fmt.Sprintf("No moves now, the match is %s.", c.proc.Match().Phase()))
		return
	}

	data, ok := c.exec(processor.NewMakeMoveCommand(core.MoveRequest{
		Color:     turn.String(),
		From:      from,
		To:        to,
		Promotion: promotion,
	}))
	if !ok {
		return
	}
	state := data.(core.StateResponse)
	c.view.ShowMessage(fmt.Sprintf("%s: %s", turn.Name(), state.LastMove))
	if c.view.IsVerbose() {
		c.showBoard()
	}
	if state.Phase == core.PhaseEnded {
		c.view.ShowGameOver(state.Result)
	}
}

func (c *Console) guess(args []string) {
	if len(args) != 1 {
		c.view.ShowMessage("Usage: guess <square|id>")
		return
	}
	turn := c.proc.Match().Turn()
	if !turn.Valid() {
		c.view.ShowMessage(fmt.Sprintf("No guesses now, the match is %s.", c.proc.Match().Phase()))
		return
	}

	req := core.GuessRequest{Color: turn.String()}
	if id, err := strconv.Atoi(args[0]); err == nil {
		req.PieceID = id
	} else {
		req.Square = strings.ToLower(args[0])
	}

	data, ok := c.exec(processor.NewGuessCommand(req))
	if !ok {
		return
	}
	res := data.(core.GuessResponse)
	if !res.Correct {
		c.view.ShowMessage(fmt.Sprintf("Wrong. %d guess(es) left. Still %s to move.", res.GuessesRemaining, turn.Name()))
		return
	}
	c.view.ShowMessage("Correct, that is the horcrux!")
	c.view.ShowGameOver(c.proc.Match().Result())
}

func (c *Console) positions(args []string) {
	if len(args) != 1 {
		c.view.ShowMessage("Usage: moves <square>")
		return
	}
	data, ok := c.exec(processor.NewGetPositionsCommand(core.PositionsRequest{Square: strings.ToLower(args[0])}))
	if !ok {
		return
	}
	res := data.(core.PositionsResponse)
	if len(res.Positions) == 0 {
		c.view.ShowMessage(fmt.Sprintf("%s (#%d): no legal moves", res.Square, res.PieceID))
		return
	}
	c.view.ShowMessage(fmt.Sprintf("%s (#%d): %s", res.Square, res.PieceID, strings.Join(res.Positions, " ")))
}

func (c *Console) showBoard() {
	b := c.proc.Match().Board()
	if b == nil {
		c.view.ShowMessage("No board yet. Start with 'new' or 'resume'.")
		return
	}
	c.view.DisplayBoard(b)
}

// exec runs a processor command and reports a failure to the player
func (c *Console) exec(cmd processor.Command) (any, bool) {
	resp := c.proc.Execute(cmd)
	if resp.Success {
		return resp.Data, true
	}
	msg := fmt.Sprintf("%s [%s]", resp.Error.Error, resp.Error.Code)
	if resp.Error.Details != "" {
		msg += ": " + resp.Error.Details
	}
	c.view.ShowError(errors.New(msg))
	return nil, false
}
