// Package journal records playback sessions: one run row per session and one
// candle row per appended bar, to CSV files or a SQLite database.
package journal

import "time"

// RunRecord describes one playback session. The ID is a ULID, so run rows
// sort by start time.
type RunRecord struct {
	RunID    string
	Start    time.Time
	Seed     int64
	Interval time.Duration
	Source   string // "synthetic" or the replay file
}

// CandleRecord is one appended candle, keyed by its log index within the run.
type CandleRecord struct {
	RunID  string
	Index  int
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordCandle(CandleRecord) error
	Close() error
}

// Nop is a Journal that records nothing, for sessions run without journaling.
type Nop struct{}

func (Nop) RecordRun(RunRecord) error       { return nil }
func (Nop) RecordCandle(CandleRecord) error { return nil }
func (Nop) Close() error                    { return nil }
