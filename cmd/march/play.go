package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/penguin-march/internal/config"
	"github.com/vovakirdan/penguin-march/internal/core"
	"github.com/vovakirdan/penguin-march/internal/games/march"
	"github.com/vovakirdan/penguin-march/internal/platform/tui"
	"github.com/vovakirdan/penguin-march/internal/registry"
	"github.com/vovakirdan/penguin-march/internal/storage"
)

var (
	flagWatch  bool
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. The game defaults to Penguin March.

Difficulty presets:
  easy   - Two extra hearts, longer immunity, smaller march, slower penguins
  normal - The tuning file as written
  hard   - One heart less, slower throws, bigger march, faster penguins

With --watch the tuning file is reloaded whenever it changes; the new
tuning applies from the next restart.

Examples:
  march play
  march play --difficulty easy
  march play --config ./my-level.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the tuning file when it changes")
	playCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player name recorded with each run")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := march.ID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'march list' to see available games", gameID)
	}

	tuning, err := loadTuning()
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	if g, ok := game.(tui.Tunable); ok {
		g.SetTuning(tuning)
	}

	width, height := terminalSize()
	cfg := core.DefaultConfig()
	cfg.ScreenW = width
	cfg.ScreenH = height
	cfg.TickRate = flagFPS

	opts := tui.Options{
		Player:     flagPlayer,
		Difficulty: string(tuning.Difficulty),
		Logger:     logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("runs will not be saved", "error", err)
	} else {
		defer store.Close()
		opts.Store = store
	}

	if flagWatch {
		w, err := watchTuning()
		if err != nil {
			return err
		}
		defer w.Close()
		opts.Tunings = forwardTunings(w)
	}

	if err := tui.Run(game, cfg, opts); err != nil {
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}

// watchTuning watches --config, or the first tuning file found on the
// search path.
func watchTuning() (*config.Watcher, error) {
	path := flagConfig
	if path == "" {
		for _, p := range []string{config.UserConfigPath(), filepath.Join("configs", config.FileName)} {
			if _, err := os.Stat(p); p != "" && err == nil {
				path = p
				break
			}
		}
	}
	if path == "" {
		return nil, errors.New("--watch needs a tuning file; pass --config or run 'march config init'")
	}
	w, err := config.NewWatcher(path)
	if err != nil {
		return nil, err
	}
	logger.Info("watching tuning", "path", w.Path())
	return w, nil
}

// forwardTunings applies the difficulty to each reloaded tuning and logs
// reload errors. The returned channel closes with the watcher.
func forwardTunings(w *config.Watcher) <-chan config.Tuning {
	out := make(chan config.Tuning, 1)
	go func() {
		defer close(out)
		updates, errs := w.Updates, w.Errors
		for updates != nil {
			select {
			case t, ok := <-updates:
				if !ok {
					updates = nil
					continue
				}
				t, err := withDifficulty(t, flagDifficulty)
				if err != nil {
					logger.Warn("reloaded tuning rejected", "error", err)
					continue
				}
				out <- t
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				logger.Warn("tuning reload failed", "error", err)
			}
		}
	}()
	return out
}
