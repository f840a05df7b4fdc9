// Package indicators provides streaming technical indicators and the engine
// that maintains their per-candle series for the chart.
package indicators

import (
	"math"

	"github.com/Aliyansayz/candlestick-realtime/pricing"
)

// Indicator computes streaming values from closed candles.
// It is deterministic: feeding the same candle sequence always produces the
// same state, which makes live, replay, and test runs interchangeable.
type Indicator interface {
	// Name returns a stable identifier like "EMA(14)" or "RSI(14)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	// (Some indicators may become ready earlier; that's fine.)
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next *closed* candle and updates internal state.
	Update(c pricing.Candle)

	// Ready reports whether the current value is meaningful (warmup done).
	Ready() bool
}

// trueRange calculates the True Range for a candle given the previous close.
func trueRange(c pricing.Candle, prevClose float64) float64 {
	highLow := c.High - c.Low
	highClose := math.Abs(c.High - prevClose)
	lowClose := math.Abs(c.Low - prevClose)

	return math.Max(highLow, math.Max(highClose, lowClose))
}
