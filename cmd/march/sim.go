package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/penguin-march/internal/replay"
)

var (
	flagScript     string
	flagTraceEvery int
	flagOut        string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a scripted session without a terminal",
	Long: `Run the simulation headless from a YAML script of timed inputs and
print a YAML report. The same script and tuning always give the same report.

Script format:
  name: reach the finish
  ticks: 900             # defaults to the end of the last step
  stop_on_outcome: true  # stop on the first win or loss
  spawn: {x: 0, y: 1}    # optional player spawn override
  steps:
    - {at: 0, for: 600, horizontal: 1}
    - {at: 40, jump: true}
    - {at: 120, for: 30, throw: true}

Examples:
  march sim --script run.yaml
  march sim --script run.yaml --difficulty hard --trace 60`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagScript, "script", "", "Path to the input script (required)")
	simCmd.Flags().IntVar(&flagTraceEvery, "trace", 0, "Record the player every n ticks")
	simCmd.Flags().StringVarP(&flagOut, "output", "o", "", "Write the report to a file instead of stdout")
}

func runSim(_ *cobra.Command, _ []string) error {
	if flagScript == "" {
		return errors.New("--script is required")
	}
	script, err := replay.LoadFile(flagScript)
	if err != nil {
		return err
	}
	tuning, err := loadTuning()
	if err != nil {
		return err
	}

	rep, err := replay.Run(script, tuning, replay.Options{
		TraceEvery: flagTraceEvery,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	out, err := replay.Marshal(rep)
	if err != nil {
		return err
	}

	if flagOut == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(flagOut, out, 0o644); err != nil {
		return fmt.Errorf("cannot write report: %w", err)
	}
	logger.Info("report written", "path", flagOut)
	return nil
}
