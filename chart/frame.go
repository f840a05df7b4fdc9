package chart

import (
	"github.com/Aliyansayz/candlestick-realtime/indicators"
	"github.com/Aliyansayz/candlestick-realtime/pricing"
)

// Frame is an immutable snapshot handed to the rendering collaborator: the
// visible candles, the enabled indicator series over the same index range,
// and the derived axis bounds. All slices are copies; a frame never aliases
// live engine state.
type Frame struct {
	Candles    []pricing.Candle
	Indicators map[string]indicators.Series
	TimeRange  TimeRange
	PriceRange PriceRange
}

// BuildFrame assembles a frame for the view's visible window over the log.
// It fails with ErrEmptyWindow while the log is empty.
func BuildFrame(log *pricing.Log, view *View, engine *indicators.Engine) (Frame, error) {
	start, end := view.Visible(log.Len())

	visible, err := log.Slice(start, end)
	if err != nil {
		return Frame{}, err
	}

	tr, pr, err := Ranges(visible, view.ZoomBuffer())
	if err != nil {
		return Frame{}, err
	}

	candles := make([]pricing.Candle, len(visible))
	copy(candles, visible)

	return Frame{
		Candles:    candles,
		Indicators: engine.Window(start, end),
		TimeRange:  tr,
		PriceRange: pr,
	}, nil
}
