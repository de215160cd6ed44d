package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/penguin-march/internal/games/march"
	"github.com/vovakirdan/penguin-march/internal/platform/tui"
	"github.com/vovakirdan/penguin-march/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve Penguin March over SSH",
	Long: `Start an SSH server where every connection plays its own session.

Runs are stored per server, so all players share the same board. The
tuning is loaded once at startup with the usual --config and --difficulty
flags.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.march/host_key

Examples:
  march serve                           # Listen on :23234 with auto-generated key
  march serve --ssh :2222               # Listen on port 2222
  march serve --difficulty hard         # Everyone plays hard

Players connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	tuning, err := loadTuning()
	if err != nil {
		return err
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Difficulty:  string(tuning.Difficulty),
		Logger:      logger.WithPrefix("ssh"),
		NewGame: func() (registry.Game, error) {
			return march.New(
				march.WithTuning(tuning),
				march.WithLogger(logger.WithPrefix("game")),
			), nil
		},
	})
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	fmt.Printf("Serving Penguin March on %s\n", flagSSHAddr)
	fmt.Println("Press Ctrl+C to stop")
	return server.ListenAndServe()
}
