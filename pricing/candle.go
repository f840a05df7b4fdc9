// Package pricing provides the OHLC candle type and the append-only candle log
// that the rest of the engine is built on.
package pricing

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCandle is returned when an append violates the OHLC ordering
// invariant or the monotonic-time invariant. The candle is rejected and the
// log is unchanged; retrying with the same candle will fail again.
var ErrInvalidCandle = errors.New("invalid candle")

// ErrOutOfRange is returned by Slice for indices outside [0, Len] or
// start > end. Callers should clamp and retry.
var ErrOutOfRange = errors.New("slice out of range")

// Candle represents a single OHLC bar for a fixed time interval.
type Candle struct {
	Time time.Time

	Open  float64
	High  float64
	Low   float64
	Close float64

	Volume float64 // optional
}

// Validate checks the OHLC ordering invariant:
// High >= max(Open, Close) and Low <= min(Open, Close).
func (c Candle) Validate() error {
	if c.High < c.Open || c.High < c.Close {
		return fmt.Errorf("%w: high %v below body (open %v close %v)",
			ErrInvalidCandle, c.High, c.Open, c.Close)
	}
	if c.Low > c.Open || c.Low > c.Close {
		return fmt.Errorf("%w: low %v above body (open %v close %v)",
			ErrInvalidCandle, c.Low, c.Open, c.Close)
	}
	return nil
}

// Bullish reports whether the candle closed at or above its open.
func (c Candle) Bullish() bool {
	return c.Close >= c.Open
}
