// Package cli is the hot-seat console view: it parses typed lines into
// commands and renders boards, history and results.
package cli

import (
	"fmt"
	"io"
	"strings"

	"mysterymate/internal/board"
	"mysterymate/internal/core"
	"mysterymate/internal/game"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdResume
	CmdHorcrux
	CmdMove
	CmdGuess
	CmdPositions
	CmdBoard
	CmdState
	CmdColor
	CmdVerbose
	CmdHistory
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	white   string
	black   string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // Beige
		darkBg:  "\033[48;5;94m",  // Brown
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;157m",
		darkBg:  "\033[48;5;22m",
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m",
		darkBg:  "\033[48;5;240m",
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
}

type CLI struct {
	output  io.Writer
	theme   ColorTheme
	verbose bool
}

func New(output io.Writer) *CLI {
	return &CLI{
		output: output,
		theme:  ThemeOff,
	}
}

// ParseCommand turns one typed line into a command; unknown words are moves
func ParseCommand(input string) *Command {
	input = strings.TrimSpace(input)
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "new":
		return &Command{Type: CmdNew, Args: args}
	case "resume":
		return &Command{Type: CmdResume, Args: args}
	case "horcrux", "hide":
		return &Command{Type: CmdHorcrux}
	case "guess", "g":
		return &Command{Type: CmdGuess, Args: args}
	case "moves", "m":
		return &Command{Type: CmdPositions, Args: args}
	case "board", "b":
		return &Command{Type: CmdBoard}
	case "state", "s":
		return &Command{Type: CmdState}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "verbose":
		return &Command{Type: CmdVerbose}
	case "history":
		return &Command{Type: CmdHistory}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		// Assume it's a move
		return &Command{Type: CmdMove, Args: []string{cmd}}
	}
}

// ParseMove splits coordinate notation such as "e2e4" or "a7a8q"
func ParseMove(s string) (from, to, promotion string, err error) {
	s = strings.ToLower(s)
	if len(s) != 4 && len(s) != 5 {
		return "", "", "", fmt.Errorf("unrecognised move %q, expected e.g. e2e4 or a7a8q", s)
	}
	from, to = s[:2], s[2:4]
	if !board.ValidSquare(from) || !board.ValidSquare(to) {
		return "", "", "", fmt.Errorf("unrecognised move %q, expected e.g. e2e4 or a7a8q", s)
	}
	return from, to, s[4:], nil
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) ToggleVerbose() bool {
	c.verbose = !c.verbose
	return c.verbose
}

func (c *CLI) IsVerbose() bool {
	return c.verbose
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}

func (c *CLI) DisplayBoard(b *board.Board) {
	theme := themes[c.theme]
	var sb strings.Builder

	sb.WriteString("\n  a b c d e f g h\n")

	for r := board.Size; r >= 1; r-- {
		sb.WriteString(fmt.Sprintf("%d ", r))
		for f := byte('a'); f <= 'h'; f++ {
			pos := board.NewPosition(f, r)
			piece := b.PieceAt(pos)

			if c.theme == ThemeOff {
				if piece == nil {
					sb.WriteString(". ")
				} else {
					sb.WriteString(fmt.Sprintf("%c ", piece.Symbol()))
				}
				continue
			}

			bg := theme.darkBg
			if b.IsLightSquare(pos) {
				bg = theme.lightBg
			}
			if piece == nil {
				sb.WriteString(fmt.Sprintf("%s  %s", bg, theme.reset))
				continue
			}
			fg := theme.black
			if piece.Color == core.ColorWhite {
				fg = theme.white
			}
			sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, fg, piece.Symbol(), theme.reset))
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r))
	}
	sb.WriteString("  a b c d e f g h\n")

	c.ShowMessage(sb.String())
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  new                     - Start a new hot-seat match
  resume <placement> [w|b] - Start from a FEN piece placement, side to move default w
  horcrux                 - Both players hide their horcrux (typed without echo)
  <move>                  - Make a move (e.g., e2e4, g1f3, a7a8n)
  guess <square|id>       - Spend a guess on the opponent's horcrux
  moves <square>          - List legal destinations of a piece
  board                   - Show the board
  state                   - Show phase, turn and guesses
  color <theme>           - Set board color theme (off|brown|green|gray)
  verbose                 - Toggle board display after every move
  history                 - Show match move history and positions
  quit/exit               - Exit the program
  help/?                  - Show this help message`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to Mystery Mate, horcrux chess for two at one keyboard.")
	c.ShowMessage("Each side secretly marks one of its pieces. Capture or guess the other's to win.")
	c.ShowMessage("Commands: new, resume <placement>, horcrux, <move>, guess, moves, history, help/?")
	c.ShowMessage("")
}

func (c *CLI) ShowState(s core.StateResponse) {
	c.ShowMessage(fmt.Sprintf("Match %s: %s", s.MatchID, s.PhaseName))
	for _, p := range s.Players {
		color, _ := core.ParseColor(p.Color)
		c.ShowMessage(fmt.Sprintf("  %-5s horcrux hidden: %-5v found: %-5v guesses left: %d",
			color.Name(), p.HorcruxChosen, p.HorcruxFound, p.GuessesRemaining))
	}
	if s.Result != core.ResultNone {
		c.ShowMessage(fmt.Sprintf("  Result: %s", s.Result))
	}
}

func (c *CLI) ShowGameHistory(m *game.Match) {
	c.ShowMessage(fmt.Sprintf("Starting placement: %s\n", m.InitialPlacement()))

	moves := m.Moves()
	first := core.ColorWhite
	if h := m.History(); len(h) > 0 {
		first = h[0].NextTurn
	}
	if first == core.ColorBlack {
		moves = append([]string{"..."}, moves...)
	}
	for i := 0; i < len(moves); i += 2 {
		moveNum := i/2 + 1
		white := moves[i]
		if i+1 < len(moves) {
			c.ShowMessage(fmt.Sprintf("%d. %s | %s", moveNum, white, moves[i+1]))
		} else {
			c.ShowMessage(fmt.Sprintf("%d. %s | ...", moveNum, white))
		}
	}

	if captured := m.Captured(); len(captured) > 0 {
		names := make([]string, len(captured))
		for i, p := range captured {
			names[i] = string(p.Symbol())
		}
		c.ShowMessage(fmt.Sprintf("Captured: %s", strings.Join(names, " ")))
	}
	c.ShowMessage(fmt.Sprintf("Current placement: %s", m.Placement()))
	c.ShowMessage(fmt.Sprintf("Match state: %s", m.Phase()))
}

func (c *CLI) ShowGameOver(result core.Result) {
	c.ShowMessage(fmt.Sprintf("\nGame Over: %s\n", result))
	c.ShowMessage("Start a new match with 'new' or 'resume'.")
}
