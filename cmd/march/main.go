// Command march runs Penguin March in the terminal, headless or over SSH.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	// Register games
	_ "github.com/vovakirdan/penguin-march/internal/games/march"
)

// Global flags
var (
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

// logger is configured from the log flags before any command runs.
var (
	logger  = log.New(io.Discard)
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "march",
	Short: "Penguin March - a terminal platformer",
	Long: `Penguin March is a side-scrolling platformer for the terminal.

Walk right, throw bricks at the marching penguins, avoid the spikes and
reach the finish line.

Controls:
  A/D or Arrow keys  - Move
  Space/W/Up         - Jump
  F/X                - Throw a brick
  Enter              - Confirm
  P/Esc              - Pause
  R                  - Restart
  Q                  - Quit`,
	PersistentPreRunE:  setupLogging,
	PersistentPostRunE: closeLogging,
	SilenceUsage:       true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Target frames per second")
	pf.StringVar(&flagDBPath, "db", "~/.march/runs.db", "Path to runs database")
	pf.StringVar(&flagConfig, "config", "", "Path to a tuning file (default: search ~/.march/configs, ./configs)")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal or hard (default: from the tuning file)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	pf.StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging builds the logger from --log-level and --log-file. Commands
// that own the terminal only log when a file is given.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile, w = f, f
	case ownsTerminal(cmd):
		w = io.Discard
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "march",
	})
	return nil
}

func closeLogging(*cobra.Command, []string) error {
	if logFile == nil {
		return nil
	}
	return logFile.Close()
}

func ownsTerminal(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "play":
		return true
	case "scores":
		return flagScoresTUI
	}
	return false
}

// terminalSize returns the terminal size, falling back to 80x24.
func terminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return 80, 24
	}
	return width, height
}
