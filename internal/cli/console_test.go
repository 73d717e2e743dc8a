package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/chzyer/readline"

	"mysterymate/internal/core"
	"mysterymate/internal/game"
	"mysterymate/internal/processor"
)

// script feeds queued lines and records the prompts shown
type script struct {
	lines   []string
	prompts []string
}

func (s *script) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	if line == "^C" {
		return "", readline.ErrInterrupt
	}
	return line, nil
}

func (s *script) SetPrompt(prompt string) { s.prompts = append(s.prompts, prompt) }

// secrets answers hidden prompts in order
type secrets struct {
	answers []string
	prompts []string
}

func (s *secrets) read(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.answers) == 0 {
		return "", errors.New("no more secrets")
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func runConsole(t *testing.T, lines []string, hidden []string) (string, *Console, *secrets) {
	t.Helper()
	var out bytes.Buffer
	sec := &secrets{answers: hidden}
	c := NewConsole(processor.New(nil, game.WithID("console")), New(&out), &script{lines: lines}, sec.read, nil)
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String(), c, sec
}

func TestConsoleHorcruxCapture(t *testing.T) {
	out, c, sec := runConsole(t,
		[]string{"new", "horcrux", "e2e4", "e7e5", "d1h5", "b8c6", "h5f7", "quit", "never reached"},
		[]string{"d1", "F7"},
	)

	if len(sec.prompts) != 2 || !strings.HasPrefix(sec.prompts[0], "White") || !strings.HasPrefix(sec.prompts[1], "Black") {
		t.Errorf("hidden prompts = %q", sec.prompts)
	}
	for _, want := range []string{
		"New match.",
		"Both horcruxes hidden. White moves first.",
		"White: e2e4",
		"Black: b8c6",
		"Game Over: white wins",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if got := c.proc.Match().Result(); got != core.ResultWhiteWin {
		t.Errorf("result = %s", got)
	}
}

func TestConsolePrompt(t *testing.T) {
	lines := &script{lines: []string{"new", "horcrux", "e2e4"}}
	sec := &secrets{answers: []string{"e1", "e8"}}
	c := NewConsole(processor.New(nil), New(&bytes.Buffer{}), lines, sec.read, nil)
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}

	want := []string{"> ", "> ", "[w]> ", "[b]> "}
	if len(lines.prompts) != len(want) {
		t.Fatalf("prompts = %q, want %q", lines.prompts, want)
	}
	for i := range want {
		if lines.prompts[i] != want[i] {
			t.Errorf("prompt %d = %q, want %q", i, lines.prompts[i], want[i])
		}
	}
}

func TestConsoleGuess(t *testing.T) {
	out, c, _ := runConsole(t,
		[]string{"new", "horcrux", "guess e8", "g 22"},
		[]string{"e1", "f7"},
	)

	if !strings.Contains(out, "Wrong. 1 guess(es) left. Still White to move.") {
		t.Errorf("missing wrong guess message:\n%s", out)
	}
	if !strings.Contains(out, "Correct, that is the horcrux!") || !strings.Contains(out, "Game Over: white wins") {
		t.Errorf("missing correct guess:\n%s", out)
	}
	if c.proc.Match().Phase() != core.PhaseEnded {
		t.Errorf("phase = %s", c.proc.Match().Phase())
	}
}

func TestConsoleErrors(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		hidden []string
		want   string
	}{
		{"move before start", []string{"e2e4"}, nil, "No moves now"},
		{"bad notation", []string{"new", "e2"}, nil, "unrecognised move"},
		{"board before start", []string{"board"}, nil, "No board yet"},
		{"history before start", []string{"history"}, nil, "No board yet"},
		{"opponent horcrux", []string{"new", "horcrux"}, []string{"e8"}, "[INVALID_OBJECTIVE]"},
		{"retry hint", []string{"new", "horcrux"}, []string{"e8"}, "Type 'horcrux' to try again."},
		{"illegal move", []string{"new", "horcrux", "e2e5"}, []string{"e1", "e8"}, "[ILLEGAL_MOVE]"},
		{"empty square guess", []string{"new", "horcrux", "guess e4"}, []string{"e1", "e8"}, "[NOT_OCCUPIED]"},
		{"positions empty square", []string{"new", "moves e4"}, nil, "[NOT_OCCUPIED]"},
		{"resume usage", []string{"resume"}, nil, "Usage: resume"},
		{"bad resume", []string{"resume 9/8 w"}, nil, "[INVALID_REQUEST]"},
		{"bad theme", []string{"color purple"}, nil, "invalid theme"},
		{"horcrux before start", []string{"horcrux"}, nil, "Horcruxes are hidden while choosing"},
		{"secret read failure", []string{"new", "horcrux"}, nil, "no more secrets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, _ := runConsole(t, tt.lines, tt.hidden)
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestConsoleResumeAndPositions(t *testing.T) {
	out, c, _ := runConsole(t,
		[]string{"resume 4k3/8/8/8/8/8/8/R3K3 b", "moves e8", "^C", "history"},
		nil,
	)

	if c.proc.Match().Phase() != core.PhaseChoosingObjective {
		t.Errorf("phase = %s", c.proc.Match().Phase())
	}
	if !strings.Contains(out, "8 . . . . k . . .  8") {
		t.Errorf("resume should show the board:\n%s", out)
	}
	if !strings.Contains(out, "Position set.") {
		t.Errorf("missing resume message:\n%s", out)
	}
	if !strings.Contains(out, "Starting placement: 4k3/8/8/8/8/8/8/R3K3") {
		t.Errorf("history missing:\n%s", out)
	}
}

func TestConsoleResumeDecidedPosition(t *testing.T) {
	out, c, _ := runConsole(t,
		[]string{"resume k7/8/8/8/8/8/5q2/7K w", "horcrux", "h1g1"},
		[]string{"h1", "a8"},
	)

	if !strings.Contains(out, "already decided") || !strings.Contains(out, "Game Over: stalemate") {
		t.Errorf("missing immediate game over:\n%s", out)
	}
	if !strings.Contains(out, "No moves now, the match is ended.") {
		t.Errorf("moves after the end should be refused:\n%s", out)
	}
	if c.proc.Match().Result() != core.ResultStalemate {
		t.Errorf("result = %s", c.proc.Match().Result())
	}
}

func TestConsoleVerboseAndState(t *testing.T) {
	out, _, _ := runConsole(t,
		[]string{"verbose", "new", "horcrux", "g1f3", "state", "help"},
		[]string{"e1", "e8"},
	)

	if !strings.Contains(out, "Verbose on") {
		t.Errorf("missing verbose toggle:\n%s", out)
	}
	if !strings.Contains(out, "1 R N B Q K B . R  1") {
		t.Errorf("verbose move should print the board:\n%s", out)
	}
	if !strings.Contains(out, "Match console: black to move") {
		t.Errorf("missing state:\n%s", out)
	}
	if !strings.Contains(out, "Commands:") {
		t.Errorf("missing help:\n%s", out)
	}
}
