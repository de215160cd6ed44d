package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/penguin-march/internal/config"
)

var flagForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the tuning file",
	Long: `Inspect the tuning that play, sim and serve would use.

The tuning is searched in this order:
  1. --config path
  2. ~/.march/configs/march.yaml
  3. ./configs/march.yaml
  4. built-in defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective tuning as YAML",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		t, err := loadTuning()
		if err != nil {
			return err
		}
		out, err := config.Marshal(t)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default tuning to a file",
	Long: `Write the default tuning to path, or to ~/.march/configs/march.yaml.
An existing file is kept unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path := config.UserConfigPath()
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			return errors.New("cannot find home directory; pass a path")
		}
		if err := writeDefaultTuning(path, flagForce); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Validate a tuning file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", args[0], err)
		}
		notes, err := checkTuning(data)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		for _, n := range notes {
			fmt.Printf("  adjusted: %s\n", n)
		}
		fmt.Printf("%s is valid.\n", args[0])
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configShowCmd, configInitCmd, configCheckCmd)
}

// writeDefaultTuning writes the embedded default tuning to path.
func writeDefaultTuning(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}

// checkTuning parses data strictly and lists the values that were
// replaced by defaults.
func checkTuning(data []byte) ([]string, error) {
	_, notes, err := config.Check(data)
	return notes, err
}
