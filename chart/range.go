package chart

import (
	"errors"
	"time"

	"github.com/Aliyansayz/candlestick-realtime/pricing"
)

// ErrEmptyWindow is returned when a range is requested over zero candles,
// e.g. before the first candle exists. Callers should retry after the next
// append.
var ErrEmptyWindow = errors.New("empty window")

// TimeRange is the [Min, Max] span of the visible time axis.
type TimeRange struct {
	Min time.Time
	Max time.Time
}

// PriceRange is the [Min, Max] span of the visible price axis, padded by the
// zoom buffer.
type PriceRange struct {
	Min float64
	Max float64
}

// Ranges derives the axis bounds for a visible slice: the time range covers
// the first through last candle, and the price range is the low/high extent
// padded by zoomBuffer * (maxHigh - minLow) on each side.
func Ranges(visible []pricing.Candle, zoomBuffer float64) (TimeRange, PriceRange, error) {
	if len(visible) == 0 {
		return TimeRange{}, PriceRange{}, ErrEmptyWindow
	}

	minLow := visible[0].Low
	maxHigh := visible[0].High
	for _, c := range visible[1:] {
		if c.Low < minLow {
			minLow = c.Low
		}
		if c.High > maxHigh {
			maxHigh = c.High
		}
	}

	buffer := zoomBuffer * (maxHigh - minLow)
	tr := TimeRange{Min: visible[0].Time, Max: visible[len(visible)-1].Time}
	pr := PriceRange{Min: minLow - buffer, Max: maxHigh + buffer}
	return tr, pr, nil
}
