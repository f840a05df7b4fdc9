package playback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aliyansayz/candlestick-realtime/chart"
	"github.com/Aliyansayz/candlestick-realtime/indicators"
	"github.com/Aliyansayz/candlestick-realtime/pricing"
)

func newController(t *testing.T) *Controller {
	t.Helper()
	c, err := New(Config{Seed: 7, History: 40, WindowSize: 10}, nil)
	require.NoError(t, err)
	return c
}

func latestFrame(t *testing.T, c *Controller) chart.Frame {
	t.Helper()
	select {
	case f := <-c.Frames():
		return f
	default:
		t.Fatal("no frame available")
		return chart.Frame{}
	}
}

func TestNewPreloadsHistory(t *testing.T) {
	t.Parallel()

	c := newController(t)
	f := latestFrame(t, c)

	assert.Len(t, f.Candles, 10)
	for i := 1; i < len(f.Candles); i++ {
		assert.True(t, f.Candles[i].Time.After(f.Candles[i-1].Time))
		assert.Equal(t, f.Candles[i-1].Close, f.Candles[i].Open)
	}
	assert.True(t, f.PriceRange.Min < f.PriceRange.Max)
}

func TestTickAdvancesLiveEdge(t *testing.T) {
	t.Parallel()

	c := newController(t)
	before := latestFrame(t, c)

	c.Tick()
	after := latestFrame(t, c)

	assert.Len(t, after.Candles, 10)
	last := after.Candles[len(after.Candles)-1]
	prevLast := before.Candles[len(before.Candles)-1]
	assert.True(t, last.Time.After(prevLast.Time), "window must follow the live edge")
	assert.Equal(t, prevLast.Close, last.Open)
}

func TestFrameChannelKeepsLatest(t *testing.T) {
	t.Parallel()

	c := newController(t)

	// Several ticks with no reader: only the newest snapshot survives.
	c.Tick()
	c.Tick()
	c.Tick()

	f := latestFrame(t, c)
	c.Pause()
	c.Scroll(0)
	newest := latestFrame(t, c)

	assert.True(t, !newest.Candles[0].Time.After(f.Candles[0].Time))

	select {
	case <-c.Frames():
		t.Fatal("channel must hold at most one frame")
	default:
	}
}

func TestPauseAndResume(t *testing.T) {
	t.Parallel()

	c := newController(t)
	latestFrame(t, c)

	c.Pause()
	assert.Equal(t, Paused, c.State())

	c.Tick()
	select {
	case <-c.Frames():
		t.Fatal("paused tick must not emit a frame")
	default:
	}

	// View commands still work while frozen.
	c.Scroll(3)
	f := latestFrame(t, c)
	assert.Equal(t, 10, len(f.Candles))

	c.Resume()
	assert.Equal(t, Running, c.State())
	c.Tick()
	latestFrame(t, c)
}

func TestScrolledBackViewStaysFixed(t *testing.T) {
	t.Parallel()

	c := newController(t)
	latestFrame(t, c)

	c.Scroll(5)
	before := latestFrame(t, c)

	c.Tick()
	after := latestFrame(t, c)

	assert.Equal(t, before.Candles[0].Time, after.Candles[0].Time,
		"a view scrolled into history must not auto-advance")
}

func TestInjectValidation(t *testing.T) {
	t.Parallel()

	c := newController(t)
	f := latestFrame(t, c)
	last := f.Candles[len(f.Candles)-1]

	t.Run("rejects bad OHLC", func(t *testing.T) {
		err := c.Inject(pricing.Candle{
			Time:  last.Time.Add(time.Second),
			Open:  100,
			High:  99, // below the body
			Low:   98,
			Close: 100,
		})
		assert.ErrorIs(t, err, pricing.ErrInvalidCandle)
	})

	t.Run("rejects stale time", func(t *testing.T) {
		err := c.Inject(pricing.Candle{
			Time:  last.Time,
			Open:  last.Close,
			High:  last.Close,
			Low:   last.Close,
			Close: last.Close,
		})
		assert.ErrorIs(t, err, pricing.ErrInvalidCandle)
	})

	t.Run("accepts a valid candle", func(t *testing.T) {
		require.NoError(t, c.Inject(pricing.Candle{
			Time:  last.Time.Add(time.Second),
			Open:  last.Close,
			High:  last.Close + 1,
			Low:   last.Close - 1,
			Close: last.Close + 0.5,
		}))
		f := latestFrame(t, c)
		assert.Equal(t, last.Close+0.5, f.Candles[len(f.Candles)-1].Close)
	})
}

func TestIndicatorCommands(t *testing.T) {
	t.Parallel()

	c := newController(t)
	latestFrame(t, c)

	require.NoError(t, c.ToggleIndicator(indicators.RSIName, false))
	f := latestFrame(t, c)
	assert.NotContains(t, f.Indicators, indicators.RSIName)

	require.NoError(t, c.ToggleIndicator(indicators.RSIName, true))
	f = latestFrame(t, c)
	assert.Contains(t, f.Indicators, indicators.RSIName)

	require.NoError(t, c.SetIndicatorParams(indicators.EMAName, indicators.Params{Period: 5}))
	f = latestFrame(t, c)
	for i, s := range f.Indicators[indicators.EMAName] {
		assert.True(t, s.Valid, "EMA sample %d after rebuild", i)
	}

	assert.ErrorIs(t, c.ToggleIndicator("VWAP", true), indicators.ErrUnknownIndicator)
	assert.ErrorIs(t, c.SetIndicatorParams("VWAP", indicators.Params{Period: 3}), indicators.ErrUnknownIndicator)
}

func TestSeedDeterminism(t *testing.T) {
	t.Parallel()

	a, err := New(Config{Seed: 99, History: 20}, nil)
	require.NoError(t, err)
	b, err := New(Config{Seed: 99, History: 20}, nil)
	require.NoError(t, err)

	a.Tick()
	b.Tick()

	fa := latestFrame(t, a)
	fb := latestFrame(t, b)

	require.Equal(t, len(fa.Candles), len(fb.Candles))
	for i := range fa.Candles {
		assert.Equal(t, fa.Candles[i].Open, fb.Candles[i].Open)
		assert.Equal(t, fa.Candles[i].Close, fb.Candles[i].Close)
		assert.Equal(t, fa.Candles[i].High, fb.Candles[i].High)
		assert.Equal(t, fa.Candles[i].Low, fb.Candles[i].Low)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	c, err := New(Config{Seed: 3, History: 10, Interval: time.Millisecond}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
