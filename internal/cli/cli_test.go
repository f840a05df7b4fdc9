package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootConfigLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := (&RootConfig{}).Load()
		require.NoError(t, err)
		assert.Equal(t, "500ms", cfg.Playback.Interval)
		assert.Equal(t, "none", cfg.Journal.Type)
	})

	t.Run("journal-db flag forces sqlite", func(t *testing.T) {
		db := filepath.Join(t.TempDir(), "run.db")
		cfg, err := (&RootConfig{JournalDB: db}).Load()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Journal.Type)
		assert.Equal(t, db, cfg.Journal.DBPath)
	})

	t.Run("interval flag overrides", func(t *testing.T) {
		cfg, err := (&RootConfig{Interval: "250ms"}).Load()
		require.NoError(t, err)
		assert.Equal(t, "250ms", cfg.Playback.Interval)
	})

	t.Run("bad interval flag", func(t *testing.T) {
		_, err := (&RootConfig{Interval: "fast"}).Load()
		assert.Error(t, err)
	})
}

func TestBuildController(t *testing.T) {
	cfg, err := (&RootConfig{}).Load()
	require.NoError(t, err)

	ctrl, cleanup, err := buildController(cfg, "")
	require.NoError(t, err)
	defer cleanup()

	assert.NotEmpty(t, ctrl.RunID())

	// Default config preloads history, so a frame is already waiting.
	select {
	case f := <-ctrl.Frames():
		assert.Len(t, f.Candles, cfg.View.WindowSize)
	default:
		t.Fatal("expected a preloaded frame")
	}
}

func TestBuildControllerReplaySource(t *testing.T) {
	cfg, err := (&RootConfig{}).Load()
	require.NoError(t, err)

	ctrl, cleanup, err := buildController(cfg, "session.csv")
	require.NoError(t, err)
	defer cleanup()

	// Replay sessions start from an empty log: no preloaded frame.
	select {
	case <-ctrl.Frames():
		t.Fatal("unexpected frame before any candle was replayed")
	default:
	}
}
