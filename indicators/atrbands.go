package indicators

import (
	"fmt"

	"github.com/Aliyansayz/candlestick-realtime/pricing"
)

// ATRBands is a streaming volatility channel: an unweighted moving average
// of closes, shifted up and down by a multiple of the unweighted trailing
// mean of true ranges. Unlike Supertrend's Wilder-smoothed ATR, both means
// here are plain rolling averages over the last `period` candles.
type ATRBands struct {
	period     int
	multiplier float64

	closes    []float64
	ranges    []float64
	prevClose float64
	count     int
}

// NewATRBands creates an ATR Bands indicator with the given period and
// band multiplier.
func NewATRBands(period int, multiplier float64) *ATRBands {
	return &ATRBands{
		period:     period,
		multiplier: multiplier,
		closes:     make([]float64, 0, period),
		ranges:     make([]float64, 0, period),
	}
}

func (a *ATRBands) Name() string {
	return fmt.Sprintf("ATRBands(%d,%g)", a.period, a.multiplier)
}

func (a *ATRBands) Warmup() int {
	return a.period
}

func (a *ATRBands) Reset() {
	a.closes = a.closes[:0]
	a.ranges = a.ranges[:0]
	a.prevClose = 0
	a.count = 0
}

func (a *ATRBands) Update(c pricing.Candle) {
	tr := c.High - c.Low
	if a.count > 0 {
		tr = trueRange(c, a.prevClose)
	}

	a.closes = append(a.closes, c.Close)
	a.ranges = append(a.ranges, tr)

	// Keep only the last 'period' entries
	if len(a.closes) > a.period {
		a.closes = a.closes[1:]
	}
	if len(a.ranges) > a.period {
		a.ranges = a.ranges[1:]
	}

	a.prevClose = c.Close
	a.count++
}

func (a *ATRBands) Ready() bool {
	return a.count >= a.period
}

// Upper returns SMA(close) + multiplier * mean(TR).
func (a *ATRBands) Upper() float64 {
	if !a.Ready() {
		return 0
	}
	return mean(a.closes) + a.multiplier*mean(a.ranges)
}

// Lower returns SMA(close) - multiplier * mean(TR).
func (a *ATRBands) Lower() float64 {
	if !a.Ready() {
		return 0
	}
	return mean(a.closes) - a.multiplier*mean(a.ranges)
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
