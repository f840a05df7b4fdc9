package indicators

import (
	"fmt"
	"math"

	"github.com/Aliyansayz/candlestick-realtime/pricing"
)

// RSI is a streaming Relative Strength Index with Wilder-style smoothing
// (alpha = 1/period). Average gain and loss are seeded with the first
// gain/loss pair, so the value is defined from the second candle on.
//
// Degenerate averages are resolved by policy rather than letting a division
// by zero leak out: avgLoss == 0 with avgGain > 0 yields 100, and both
// averages zero (a flat market) yields the neutral 50.
type RSI struct {
	period    int
	alpha     float64
	avgGain   float64
	avgLoss   float64
	prevClose float64
	count     int
}

// NewRSI creates a new Relative Strength Index indicator with the given period.
func NewRSI(period int) *RSI {
	return &RSI{
		period: period,
		alpha:  1.0 / float64(period),
	}
}

func (r *RSI) Name() string {
	return fmt.Sprintf("RSI(%d)", r.period)
}

func (r *RSI) Warmup() int {
	// The first candle has no prior close to diff against.
	return 2
}

func (r *RSI) Reset() {
	r.avgGain = 0
	r.avgLoss = 0
	r.prevClose = 0
	r.count = 0
}

func (r *RSI) Update(c pricing.Candle) {
	if r.count == 0 {
		r.prevClose = c.Close
		r.count++
		return
	}

	gain := math.Max(c.Close-r.prevClose, 0)
	loss := math.Max(r.prevClose-c.Close, 0)

	if r.count == 1 {
		r.avgGain = gain
		r.avgLoss = loss
	} else {
		r.avgGain += r.alpha * (gain - r.avgGain)
		r.avgLoss += r.alpha * (loss - r.avgLoss)
	}

	r.prevClose = c.Close
	r.count++
}

func (r *RSI) Ready() bool {
	return r.count >= 2
}

func (r *RSI) Value() float64 {
	if !r.Ready() {
		return 0
	}
	if r.avgLoss == 0 {
		if r.avgGain > 0 {
			return 100
		}
		return 50
	}
	rs := r.avgGain / r.avgLoss
	return 100 - 100/(1+rs)
}
