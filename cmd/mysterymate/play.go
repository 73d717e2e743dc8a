package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mysterymate/internal/cli"
	"mysterymate/internal/core"
	"mysterymate/internal/game"
	"mysterymate/internal/processor"
	"mysterymate/internal/stats"
	statslog "mysterymate/internal/stats/logger"
	promstats "mysterymate/internal/stats/prometheus"
)

var (
	historyFile string
	resumeFrom  string
	firstTurn   string
	guesses     int
	theme       string
	dumpMetrics bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive hot-seat match",
	Long: `Start the referee console. Both players sit at the same keyboard:
moves are typed in coordinate notation (e2e4, a7a8n) and horcrux squares
are read without echo so the opponent cannot see them.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&historyFile, "history-file", ".mysterymate_history", "readline history file, empty to disable")
	playCmd.Flags().StringVar(&resumeFrom, "resume", "", "start from a FEN piece placement instead of the standard position")
	playCmd.Flags().StringVar(&firstTurn, "turn", "w", "side to move first when resuming (w or b)")
	playCmd.Flags().IntVar(&guesses, "guesses", core.DefaultGuesses, "horcrux guesses per player")
	playCmd.Flags().StringVar(&theme, "color", string(cli.ThemeOff), "board color theme (off, brown, green, gray)")
	playCmd.Flags().BoolVar(&dumpMetrics, "metrics", false, "print Prometheus metrics on exit")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if guesses < 0 {
		return fmt.Errorf("--guesses must not be negative, got %d", guesses)
	}

	log, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	var collector stats.Collector = promstats.New(reg)
	if verbose {
		collector = stats.Tee{collector, statslog.New(log)}
	}

	proc := processor.New(log,
		game.WithLogger(log),
		game.WithStats(collector),
		game.WithGuesses(guesses),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("starting line editor: %w", err)
	}
	defer rl.Close()

	view := cli.New(rl.Stdout())
	if err := view.SetTheme(cli.ColorTheme(theme)); err != nil {
		return err
	}
	view.ShowWelcome()

	console := cli.NewConsole(proc, view, rl, hiddenReader(rl), log)
	if resumeFrom != "" {
		console.ProcessCommand(&cli.Command{Type: cli.CmdResume, Args: []string{resumeFrom, firstTurn}})
	} else {
		console.ProcessCommand(&cli.Command{Type: cli.CmdNew})
	}

	runErr := console.Run()
	if dumpMetrics {
		if err := writeMetrics(cmd.OutOrStdout(), reg); err != nil {
			return err
		}
	}
	return runErr
}

// hiddenReader reads horcrux squares without echo on a terminal, and as
// ordinary lines when input is piped. The line editor owns stdin while it
// runs, so the hidden read goes through it too.
func hiddenReader(rl *readline.Instance) cli.SecretReader {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return func(prompt string) (string, error) {
			rl.SetPrompt(prompt)
			return rl.Readline()
		}
	}
	return func(prompt string) (string, error) {
		secret, err := rl.ReadPassword(prompt)
		if err != nil {
			return "", fmt.Errorf("reading hidden input: %w", err)
		}
		return string(secret), nil
	}
}

// writeMetrics prints every gathered family in the text exposition format
func writeMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
