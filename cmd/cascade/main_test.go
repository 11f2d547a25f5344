package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/color-cascade/internal/config"
	"github.com/vovakirdan/color-cascade/internal/core"
	"github.com/vovakirdan/color-cascade/internal/games/cascade"
	"github.com/vovakirdan/color-cascade/internal/storage"
)

func defaultsFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cascade.yaml")
	require.NoError(t, os.WriteFile(path, config.GetDefaultYAML(cascade.ID), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAutoplayIsDeterministic(t *testing.T) {
	cfgPath := defaultsFile(t)

	run := func() (core.GameState, uint64, int) {
		g := cascade.New()
		cfg := core.DefaultConfig()
		cfg.Seed = 42
		cfg.ConfigPath = cfgPath
		g.Reset(cfg)

		state := autoplay(g, 3000, 20, 7)
		return state, g.Snapshot().Hash(), g.Engine().Stats().Landings
	}

	s1, h1, landings := run()
	s2, h2, _ := run()
	assert.Equal(t, s1, s2)
	assert.Equal(t, h1, h2)
	assert.Positive(t, landings)
}

func TestAutoplaySpreadsBlocks(t *testing.T) {
	g := cascade.New()
	cfg := core.DefaultConfig()
	cfg.Seed = 3
	cfg.ConfigPath = defaultsFile(t)
	g.Reset(cfg)

	autoplay(g, 600, 20, 11)

	xs := map[float64]bool{}
	for _, b := range g.Engine().Blocks() {
		xs[b.X] = true
	}
	assert.Greater(t, len(xs), 1, "the bot should use more than one column")
}

func TestRejectsUnknownDifficulty(t *testing.T) {
	_, err := execute(t, "scores", "--db", filepath.Join(t.TempDir(), "s.db"), "--difficulty", "insane")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insane")
}

func TestScoresEmpty(t *testing.T) {
	out, err := execute(t, "scores", "--difficulty", "normal", "--db", filepath.Join(t.TempDir(), "s.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "No scores recorded yet.")
}

func TestSimRecordsRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "s.db")

	out, err := execute(t, "sim",
		"--difficulty", "normal",
		"--db", db,
		"--config", defaultsFile(t),
		"--seed", "5",
		"--ticks", "1500",
		"--log-level", "error",
		"--record",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "seed=5")

	store, err := storage.Open(db)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.RecentRuns(cascade.ID, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
