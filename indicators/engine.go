package indicators

import (
	"errors"
	"fmt"

	"github.com/Aliyansayz/candlestick-realtime/pricing"
)

// Indicator and series names used in commands and frames. ATR Bands is one
// toggle but contributes two series, keyed SeriesATRUpper / SeriesATRLower.
const (
	EMAName        = "EMA"
	RSIName        = "RSI"
	SupertrendName = "Supertrend"
	ATRBandsName   = "ATRBands"

	SeriesATRUpper = "ATR_Upper"
	SeriesATRLower = "ATR_Lower"
)

// ErrUnknownIndicator is returned for a name outside the closed set above.
var ErrUnknownIndicator = errors.New("unknown indicator")

// Sample is one per-candle indicator value. Valid is false during warm-up
// and while the indicator is disabled; consumers treat both the same way
// (no value to draw).
type Sample struct {
	Value float64
	Valid bool
}

// Series maps candle index to a sample. len(Series) always equals the number
// of candles the engine has consumed.
type Series []Sample

// Params holds an indicator's tunables. Multiplier is ignored by EMA and RSI.
type Params struct {
	Period     int
	Multiplier float64
}

// Engine owns one instance of each indicator and the per-candle series built
// from their streaming values. Update extends every series by exactly one
// index per consumed candle using O(1) carried state (EMA, RSI, Supertrend)
// or an O(period) rolling window (ATR Bands); the log is never rescanned.
//
// A disabled indicator stops consuming candles but keeps its recurrence
// state, so re-enabling resumes instantly from where it left off. The
// samples skipped while disabled stay invalid.
type Engine struct {
	ema   *EMA
	rsi   *RSI
	st    *Supertrend
	bands *ATRBands

	enabled map[string]bool
	series  map[string]Series
	n       int
}

// NewEngine creates an engine with the given parameters per indicator.
// Missing entries fall back to the defaults: EMA(14), RSI(14),
// Supertrend(10,3), ATRBands(20,2). All indicators start enabled.
func NewEngine(params map[string]Params) (*Engine, error) {
	defaults := map[string]Params{
		EMAName:        {Period: 14},
		RSIName:        {Period: 14},
		SupertrendName: {Period: 10, Multiplier: 3},
		ATRBandsName:   {Period: 20, Multiplier: 2},
	}
	for name, p := range params {
		if _, ok := defaults[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownIndicator, name)
		}
		if p.Period <= 0 {
			return nil, fmt.Errorf("indicator %s: period must be positive, got %d", name, p.Period)
		}
		defaults[name] = p
	}

	e := &Engine{
		ema:   NewEMA(defaults[EMAName].Period),
		rsi:   NewRSI(defaults[RSIName].Period),
		st:    NewSupertrend(defaults[SupertrendName].Period, defaults[SupertrendName].Multiplier),
		bands: NewATRBands(defaults[ATRBandsName].Period, defaults[ATRBandsName].Multiplier),
		enabled: map[string]bool{
			EMAName:        true,
			RSIName:        true,
			SupertrendName: true,
			ATRBandsName:   true,
		},
		series: map[string]Series{
			EMAName:        {},
			RSIName:        {},
			SupertrendName: {},
			SeriesATRUpper: {},
			SeriesATRLower: {},
		},
	}
	return e, nil
}

// Len returns the number of candles consumed so far.
func (e *Engine) Len() int { return e.n }

// Update advances every series to cover the log. The normal cadence is one
// new candle per call; a longer gap (history preload) is consumed candle by
// candle the same way.
func (e *Engine) Update(log *pricing.Log) {
	for i := e.n; i < log.Len(); i++ {
		e.step(log.At(i))
	}
}

func (e *Engine) step(c pricing.Candle) {
	e.n++

	if e.enabled[EMAName] {
		e.ema.Update(c)
		e.push(EMAName, e.ema.Value(), e.ema.Ready())
	} else {
		e.push(EMAName, 0, false)
	}

	if e.enabled[RSIName] {
		e.rsi.Update(c)
		e.push(RSIName, e.rsi.Value(), e.rsi.Ready())
	} else {
		e.push(RSIName, 0, false)
	}

	if e.enabled[SupertrendName] {
		e.st.Update(c)
		e.push(SupertrendName, e.st.Value(), e.st.Ready())
	} else {
		e.push(SupertrendName, 0, false)
	}

	if e.enabled[ATRBandsName] {
		e.bands.Update(c)
		e.push(SeriesATRUpper, e.bands.Upper(), e.bands.Ready())
		e.push(SeriesATRLower, e.bands.Lower(), e.bands.Ready())
	} else {
		e.push(SeriesATRUpper, 0, false)
		e.push(SeriesATRLower, 0, false)
	}
}

func (e *Engine) push(key string, v float64, valid bool) {
	if !valid {
		v = 0
	}
	e.series[key] = append(e.series[key], Sample{Value: v, Valid: valid})
}

// SetEnabled toggles an indicator by name.
func (e *Engine) SetEnabled(name string, enabled bool) error {
	if _, ok := e.enabled[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownIndicator, name)
	}
	e.enabled[name] = enabled
	return nil
}

// Enabled reports whether the named indicator is currently enabled.
func (e *Engine) Enabled(name string) bool {
	return e.enabled[name]
}

// SetParams swaps in a fresh indicator with the new parameters and rebuilds
// its series from the full log. Parameter changes are user commands, so the
// one-off O(N) rebuild is acceptable; the per-tick path stays incremental.
func (e *Engine) SetParams(log *pricing.Log, name string, p Params) error {
	if p.Period <= 0 {
		return fmt.Errorf("indicator %s: period must be positive, got %d", name, p.Period)
	}

	switch name {
	case EMAName:
		e.ema = NewEMA(p.Period)
		e.rebuild(log, func(c pricing.Candle) {
			e.ema.Update(c)
			e.push(EMAName, e.ema.Value(), e.ema.Ready())
		}, EMAName)
	case RSIName:
		e.rsi = NewRSI(p.Period)
		e.rebuild(log, func(c pricing.Candle) {
			e.rsi.Update(c)
			e.push(RSIName, e.rsi.Value(), e.rsi.Ready())
		}, RSIName)
	case SupertrendName:
		e.st = NewSupertrend(p.Period, p.Multiplier)
		e.rebuild(log, func(c pricing.Candle) {
			e.st.Update(c)
			e.push(SupertrendName, e.st.Value(), e.st.Ready())
		}, SupertrendName)
	case ATRBandsName:
		e.bands = NewATRBands(p.Period, p.Multiplier)
		e.rebuild(log, func(c pricing.Candle) {
			e.bands.Update(c)
			e.push(SeriesATRUpper, e.bands.Upper(), e.bands.Ready())
			e.push(SeriesATRLower, e.bands.Lower(), e.bands.Ready())
		}, SeriesATRUpper, SeriesATRLower)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownIndicator, name)
	}
	return nil
}

// rebuild truncates the given series keys and replays the full log through
// step, which is expected to push one sample per key per candle.
func (e *Engine) rebuild(log *pricing.Log, step func(pricing.Candle), keys ...string) {
	for _, k := range keys {
		e.series[k] = e.series[k][:0]
	}
	for i := 0; i < log.Len(); i++ {
		step(log.At(i))
	}
}

// Window returns copies of the enabled series over [start, end). Series of
// disabled indicators are omitted entirely; warm-up and disabled-span gaps
// inside an enabled series appear as invalid samples.
func (e *Engine) Window(start, end int) map[string]Series {
	out := make(map[string]Series)

	copyRange := func(key string) {
		s := e.series[key]
		if start < 0 || end > len(s) || start > end {
			return
		}
		w := make(Series, end-start)
		copy(w, s[start:end])
		out[key] = w
	}

	if e.enabled[EMAName] {
		copyRange(EMAName)
	}
	if e.enabled[RSIName] {
		copyRange(RSIName)
	}
	if e.enabled[SupertrendName] {
		copyRange(SupertrendName)
	}
	if e.enabled[ATRBandsName] {
		copyRange(SeriesATRUpper)
		copyRange(SeriesATRLower)
	}
	return out
}
