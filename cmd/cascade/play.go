package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/color-cascade/internal/games/cascade"
	"github.com/vovakirdan/color-cascade/internal/logging"
	"github.com/vovakirdan/color-cascade/internal/platform/tui"
	"github.com/vovakirdan/color-cascade/internal/registry"
	"github.com/vovakirdan/color-cascade/internal/storage"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Left/A, Right/D   - Steer the falling block
  Space/Down/S      - Drop it
  E/X/Up            - Fire the power-up when the gauge is full
  P/Esc             - Pause
  R                 - Restart (paused or after game over)
  ?                 - Show all keys
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Difficulty presets:
  easy    - Slower drops, a longer combo window
  normal  - Default tuning
  hard    - Faster drops, a short combo window, a bigger power-up gauge
  fixed   - Speed never increases with level

Since the game owns the screen, logs go to --log-file.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.arcade/cascade.log", "Where to write logs while playing")
}

func runPlay(_ *cobra.Command, _ []string) error {
	s := loadSettings()

	logger := logging.Discard()
	if f, err := logging.OpenFile(flagLogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	} else {
		defer f.Close()
		logger = logging.New(f, "cascade", s.LogLevel)
	}
	cascade.SetLogger(logger)

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	game, err := registry.Create(cascade.ID)
	if err != nil {
		return err
	}

	store, err := storage.Open(s.DBPath)
	if err != nil {
		logger.Warn("scores disabled", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	defer store.Close()

	if err := tui.Run(game, store, s.runtimeConfig(width, height), logger); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
