// cascade is a falling-block colour matching game for the terminal.
//
// Usage:
//
//	cascade play           - Play in this terminal
//	cascade serve          - Serve the game over SSH
//	cascade scores         - Show high scores and recent runs
//	cascade sim            - Run a headless autoplay session
//
// Global flags (also read from CASCADE_* environment variables):
//
//	--fps <rate>          - Tick rate (default: 60)
//	--seed <value>        - RNG seed for reproducible runs
//	--db <path>           - Scores database (default: ~/.arcade/scores.db)
//	--config <path>       - Tuning YAML
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/color-cascade/internal/config"
	"github.com/vovakirdan/color-cascade/internal/core"
	"github.com/vovakirdan/color-cascade/internal/logging"
)

// settings is the merged view of flags and environment.
type settings struct {
	FPS        int
	Seed       int64
	DBPath     string
	ConfigPath string
	Difficulty string
	LogLevel   string
}

var v = viper.New()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cascade",
	Short: "Color Cascade - match falling colours in your terminal",
	Long: `Color Cascade drops coloured blocks into a well. Steer them, stack them,
and clear groups of three or more matching colours. Special blocks bomb,
recolour, speed up gravity or double a merge.

Every global flag can also be set through the environment, e.g.
CASCADE_DIFFICULTY=hard or CASCADE_LOG_LEVEL=debug.

Examples:
  cascade play
  cascade play --difficulty hard --seed 42
  cascade serve --ssh :2222
  cascade scores
  cascade sim --ticks 20000 --record`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if p := config.ParsePreset(v.GetString("difficulty")); p == "" && v.GetString("difficulty") != "" {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", v.GetString("difficulty"))
		}
		if _, err := logging.ParseLevel(v.GetString("log-level")); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int("fps", 60, "Tick rate (frames per second)")
	flags.Int64("seed", 0, "RNG seed (0 = random based on time)")
	flags.String("db", "~/.arcade/scores.db", "Path to scores database")
	flags.String("config", "", "Path to a tuning YAML (default: ~/.arcade/configs/cascade.yaml, ./configs/cascade.yaml)")
	flags.String("difficulty", "normal", "Difficulty preset: easy, normal, hard, fixed")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")

	v.SetEnvPrefix("CASCADE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

func loadSettings() settings {
	return settings{
		FPS:        v.GetInt("fps"),
		Seed:       v.GetInt64("seed"),
		DBPath:     v.GetString("db"),
		ConfigPath: v.GetString("config"),
		Difficulty: v.GetString("difficulty"),
		LogLevel:   v.GetString("log-level"),
	}
}

// runtimeConfig builds the per-game config for a screen of w x h cells.
func (s settings) runtimeConfig(w, h int) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = w, h
	if s.FPS > 0 {
		cfg.TickRate = s.FPS
	}
	cfg.Seed = s.Seed
	cfg.ConfigPath = s.ConfigPath
	cfg.Difficulty = s.Difficulty
	return cfg
}
