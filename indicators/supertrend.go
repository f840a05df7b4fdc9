package indicators

import (
	"fmt"

	"github.com/Aliyansayz/candlestick-realtime/pricing"
)

// Supertrend is a streaming trend overlay that flips between ATR-derived
// bands. The ATR uses Wilder smoothing (alpha = 1/period) seeded with
// TR[0] = high[0]-low[0].
//
// The final value is self-referential: each step compares the close against
// the *previous* basic bands and either adopts the current lower band
// (breakout above), the current upper band (breakdown below), or carries the
// previous final value forward unchanged. That requires retaining the prior
// final value and the prior basic bands as explicit state; nothing is ever
// recomputed from history.
type Supertrend struct {
	period     int
	multiplier float64

	atr       float64
	prevClose float64
	count     int

	prevUpperBasic float64
	prevLowerBasic float64
	prevFinal      float64
	hasFinal       bool
}

// NewSupertrend creates a Supertrend indicator with the given ATR period and
// band multiplier.
func NewSupertrend(period int, multiplier float64) *Supertrend {
	return &Supertrend{
		period:     period,
		multiplier: multiplier,
	}
}

func (s *Supertrend) Name() string {
	return fmt.Sprintf("Supertrend(%d,%g)", s.period, s.multiplier)
}

func (s *Supertrend) Warmup() int {
	// Values before index `period` are undefined.
	return s.period + 1
}

func (s *Supertrend) Reset() {
	s.atr = 0
	s.prevClose = 0
	s.count = 0
	s.prevUpperBasic = 0
	s.prevLowerBasic = 0
	s.prevFinal = 0
	s.hasFinal = false
}

func (s *Supertrend) Update(c pricing.Candle) {
	var tr float64
	if s.count == 0 {
		tr = c.High - c.Low
		s.atr = tr
	} else {
		tr = trueRange(c, s.prevClose)
		s.atr += (tr - s.atr) / float64(s.period)
	}

	hl2 := (c.High + c.Low) / 2
	upper := hl2 + s.multiplier*s.atr
	lower := hl2 - s.multiplier*s.atr

	if s.count >= s.period {
		switch {
		case c.Close > s.prevUpperBasic:
			s.prevFinal = lower
			s.hasFinal = true
		case c.Close < s.prevLowerBasic:
			s.prevFinal = upper
			s.hasFinal = true
		default:
			// Carry forward. Until the first band cross there is no prior
			// final value, so the series stays undefined.
		}
	}

	s.prevUpperBasic = upper
	s.prevLowerBasic = lower
	s.prevClose = c.Close
	s.count++
}

func (s *Supertrend) Ready() bool {
	return s.count > s.period && s.hasFinal
}

func (s *Supertrend) Value() float64 {
	if !s.Ready() {
		return 0
	}
	return s.prevFinal
}

// UpperBasic returns the current basic upper band (hl2 + multiplier*ATR).
func (s *Supertrend) UpperBasic() float64 { return s.prevUpperBasic }

// LowerBasic returns the current basic lower band (hl2 - multiplier*ATR).
func (s *Supertrend) LowerBasic() float64 { return s.prevLowerBasic }
