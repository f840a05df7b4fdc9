package journal

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun() RunRecord {
	return RunRecord{
		RunID:    "01JTESTRUN0000000000000000",
		Start:    time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Seed:     42,
		Interval: 500 * time.Millisecond,
		Source:   "synthetic",
	}
}

func sampleCandle(i int) CandleRecord {
	return CandleRecord{
		RunID: "01JTESTRUN0000000000000000",
		Index: i,
		Time:  time.Date(2024, 1, 1, 9, 30, i, 0, time.UTC),
		Open:  100,
		High:  102.5,
		Low:   99.25,
		Close: 101,
	}
}

func TestCSVJournal(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	candlesPath := filepath.Join(tmp, "candles.csv")
	runsPath := filepath.Join(tmp, "runs.csv")

	j, err := NewCSV(candlesPath, runsPath)
	require.NoError(t, err)

	require.NoError(t, j.RecordRun(sampleRun()))
	require.NoError(t, j.RecordCandle(sampleCandle(0)))
	require.NoError(t, j.RecordCandle(sampleCandle(1)))
	require.NoError(t, j.Close())

	candles, err := os.ReadFile(candlesPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(candles)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "run_id,idx,time,open,high,low,close,volume", lines[0])
	assert.Contains(t, lines[1], "01JTESTRUN0000000000000000,0,2024-01-01T09:30:00Z,100,102.5,99.25,101")

	runs, err := os.ReadFile(runsPath)
	require.NoError(t, err)
	assert.Contains(t, string(runs), "42,500ms,synthetic")
}

func TestSQLiteJournal(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "session.sqlite")

	j, err := NewSQLite(dbPath)
	require.NoError(t, err)

	require.NoError(t, j.RecordRun(sampleRun()))
	for i := 0; i < 3; i++ {
		require.NoError(t, j.RecordCandle(sampleCandle(i)))
	}
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM candles WHERE run_id = ?`,
		"01JTESTRUN0000000000000000").Scan(&n))
	assert.Equal(t, 3, n)

	var seed int64
	var source string
	require.NoError(t, db.QueryRow(`SELECT seed, source FROM runs`).Scan(&seed, &source))
	assert.Equal(t, int64(42), seed)
	assert.Equal(t, "synthetic", source)
}

func TestNopJournal(t *testing.T) {
	t.Parallel()

	var j Journal = Nop{}
	assert.NoError(t, j.RecordRun(sampleRun()))
	assert.NoError(t, j.RecordCandle(sampleCandle(0)))
	assert.NoError(t, j.Close())
}
