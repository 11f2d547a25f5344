package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/color-cascade/internal/games/cascade"
	"github.com/vovakirdan/color-cascade/internal/logging"
	"github.com/vovakirdan/color-cascade/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over SSH",
	Long: `Start an SSH server. Every connection gets its own game sized to its
terminal; all players share one leaderboard.

Host key handling:
  - If --host-key is provided, that key file is used
  - Otherwise a key is generated at ~/.arcade/host_key

Examples:
  cascade serve
  cascade serve --ssh :2222 --difficulty hard
  cascade serve --host-key ./host_key --db ./scores.db

Players connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Host key file (generated if empty)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Disconnect idle sessions after this long")
}

func runServe(_ *cobra.Command, _ []string) error {
	s := loadSettings()
	logger := logging.New(os.Stderr, "cascade-ssh", s.LogLevel)
	cascade.SetLogger(logger)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = s.DBPath
	cfg.IdleTimeout = flagIdleTimeout
	cfg.GameID = cascade.ID
	cfg.Game = s.runtimeConfig(0, 0)

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	if _, port, err := net.SplitHostPort(cfg.Address); err == nil {
		fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	}
	fmt.Println("Press Ctrl+C to stop")
	return server.ListenAndServe()
}

