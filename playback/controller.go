// Package playback drives the candle session: it synthesizes a bar per tick,
// pushes it through the log, the indicator engine, and the view, and emits an
// immutable frame for the rendering collaborator.
package playback

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Aliyansayz/candlestick-realtime/chart"
	"github.com/Aliyansayz/candlestick-realtime/indicators"
	"github.com/Aliyansayz/candlestick-realtime/journal"
	"github.com/Aliyansayz/candlestick-realtime/pkg/id"
	"github.com/Aliyansayz/candlestick-realtime/pricing"
)

type State int

const (
	Running State = iota
	Paused
)

func (s State) String() string {
	if s == Paused {
		return "paused"
	}
	return "running"
}

// Config holds the session parameters.
type Config struct {
	// Interval is the tick cadence. Default 500ms.
	Interval time.Duration
	// Seed drives the synthetic price walk; the same seed replays the same
	// session. Default 1.
	Seed int64
	// StartPrice is the first candle's price. Default 100.
	StartPrice float64
	// NoiseSigma is the standard deviation of the per-tick close step.
	// Default 0.5.
	NoiseSigma float64
	// History is the number of candles synthesized up front so the chart
	// opens with a populated window. Default 30; negative disables the
	// preload entirely (the replay path starts from an empty log).
	History int

	// Source labels the run in the journal. Default "synthetic"; replay
	// sets it to the input file.
	Source string

	// WindowSize and ZoomBuffer seed the view; zero means the chart
	// defaults.
	WindowSize int
	ZoomBuffer float64

	// Indicators overrides per-indicator parameters; missing names keep the
	// engine defaults.
	Indicators map[string]indicators.Params
}

func (c *Config) applyDefaults() {
	if c.Interval <= 0 {
		c.Interval = 500 * time.Millisecond
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	if c.StartPrice <= 0 {
		c.StartPrice = 100
	}
	if c.NoiseSigma <= 0 {
		c.NoiseSigma = 0.5
	}
	if c.History == 0 {
		c.History = 30
	}
	if c.Source == "" {
		c.Source = "synthetic"
	}
}

// Controller owns the whole pipeline and serializes every mutation behind one
// mutex: a tick and a UI command never interleave, so a reader can never see
// a candle appended with its indicators not yet updated. Frames are handed
// off through a depth-1 latest-wins channel of snapshots; consumers never
// touch live state.
type Controller struct {
	mu     sync.Mutex
	log    *pricing.Log
	engine *indicators.Engine
	view   *chart.View
	gen    *generator
	state  State

	frames chan chart.Frame
	jrnl   journal.Journal
	runID  string
	cfg    Config
}

// New builds a controller, journals the run, and preloads cfg.History
// synthetic candles so the first frame shows a full window. Pass nil for j
// to run without journaling.
func New(cfg Config, j journal.Journal) (*Controller, error) {
	cfg.applyDefaults()
	if j == nil {
		j = journal.Nop{}
	}

	engine, err := indicators.NewEngine(cfg.Indicators)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		log:    pricing.NewLog(),
		engine: engine,
		view:   chart.NewView(cfg.WindowSize, cfg.ZoomBuffer),
		gen:    newGenerator(cfg.Seed, cfg.NoiseSigma, cfg.Interval),
		state:  Running,
		frames: make(chan chart.Frame, 1),
		jrnl:   j,
		runID:  id.New(),
		cfg:    cfg,
	}

	start := time.Now().UTC().Truncate(time.Second).Add(-time.Duration(max(cfg.History, 0)) * cfg.Interval)
	if err := j.RecordRun(journal.RunRecord{
		RunID:    c.runID,
		Start:    start,
		Seed:     cfg.Seed,
		Interval: cfg.Interval,
		Source:   cfg.Source,
	}); err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}

	if cfg.History > 0 {
		if err := c.appendLocked(c.gen.seed(cfg.StartPrice, start)); err != nil {
			return nil, err
		}
		for i := 1; i < cfg.History; i++ {
			last, _ := c.log.Last()
			if err := c.appendLocked(c.gen.next(last)); err != nil {
				return nil, err
			}
		}
		c.emitLocked()
	}

	return c, nil
}

// RunID returns the session's journal identifier.
func (c *Controller) RunID() string { return c.runID }

// Frames returns the frame hand-off channel. It has depth 1 and drops stale
// frames: a slow consumer always sees the newest snapshot.
func (c *Controller) Frames() <-chan chart.Frame { return c.frames }

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Run drives the tick cadence until ctx is cancelled. Cancellation takes
// effect before the next tick; no queued tick fires late.
func (c *Controller) Run(ctx context.Context) error {
	t := time.NewTicker(c.cfg.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			c.Tick()
		}
	}
}

// Tick executes one producer step: synthesize, append, update indicators,
// advance the view, emit a frame. While paused it is a no-op; view commands
// stay available so history can be inspected frozen.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Running {
		return
	}

	last, ok := c.log.Last()
	if !ok {
		return
	}
	if err := c.appendLocked(c.gen.next(last)); err != nil {
		// The generator keeps the OHLC invariant by construction, so this
		// only fires on clock anomalies; drop the bar and keep playing.
		fmt.Fprintf(os.Stderr, "tick: %v\n", err)
		return
	}
	c.emitLocked()
}

// Inject appends an externally supplied candle (the replay path) through the
// same atomic step as a tick. Validation failures reject the candle and
// leave the session unchanged.
func (c *Controller) Inject(candle pricing.Candle) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.appendLocked(candle); err != nil {
		return err
	}
	c.emitLocked()
	return nil
}

// appendLocked is the one write path: log append, indicator update, view
// advance, journal row. Callers hold c.mu (or are inside New).
func (c *Controller) appendLocked(candle pricing.Candle) error {
	oldN := c.log.Len()
	if err := c.log.Append(candle); err != nil {
		return err
	}
	c.engine.Update(c.log)
	c.view.OnAppend(oldN, c.log.Len())

	if err := c.jrnl.RecordCandle(journal.CandleRecord{
		RunID:  c.runID,
		Index:  oldN,
		Time:   candle.Time,
		Open:   candle.Open,
		High:   candle.High,
		Low:    candle.Low,
		Close:  candle.Close,
		Volume: candle.Volume,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "journal candle %d: %v\n", oldN, err)
	}
	return nil
}

// emitLocked snapshots the current window into the frame channel,
// dropping the stale frame if the consumer has not caught up.
func (c *Controller) emitLocked() {
	f, err := chart.BuildFrame(c.log, c.view, c.engine)
	if err != nil {
		// Only possible on an empty log.
		return
	}

	select {
	case c.frames <- f:
	default:
		select {
		case <-c.frames:
		default:
		}
		select {
		case c.frames <- f:
		default:
		}
	}
}

// Pause freezes the tick cadence. View commands keep working.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Paused
}

// Resume restarts candle production on the next tick.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Running
}

// Scroll moves the visible window start, clamped to the valid range for the
// current log length, and emits a frame.
func (c *Controller) Scroll(target int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Scroll(target, c.log.Len())
	c.emitLocked()
}

// ZoomIn tightens the price-axis buffer and emits a frame.
func (c *Controller) ZoomIn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.ZoomIn()
	c.emitLocked()
}

// ZoomOut widens the price-axis buffer and emits a frame.
func (c *Controller) ZoomOut() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.ZoomOut()
	c.emitLocked()
}

// ResizeWindow changes the visible window size, clamped to
// [chart.MinWindowSize, log length], and emits a frame.
func (c *Controller) ResizeWindow(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Resize(size, c.log.Len())
	c.emitLocked()
}

// ToggleIndicator enables or disables an indicator by name and emits a frame.
func (c *Controller) ToggleIndicator(name string, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.engine.SetEnabled(name, enabled); err != nil {
		return err
	}
	c.emitLocked()
	return nil
}

// SetIndicatorParams retunes an indicator, rebuilds its series, and emits a
// frame.
func (c *Controller) SetIndicatorParams(name string, p indicators.Params) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.engine.SetParams(c.log, name, p); err != nil {
		return err
	}
	c.emitLocked()
	return nil
}
