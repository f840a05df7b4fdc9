package indicators

import (
	"fmt"

	"github.com/Aliyansayz/candlestick-realtime/pricing"
)

// EMA is a streaming Exponential Moving Average over closes.
//
// It is seeded with the first close and defined from the first candle on,
// so there is no warm-up gap: EMA[0] = close[0], then
// EMA[i] = EMA[i-1] + alpha*(close[i] - EMA[i-1]) with alpha = 2/(period+1).
type EMA struct {
	period int
	alpha  float64
	ema    float64
	count  int
}

// NewEMA creates a new Exponential Moving Average indicator with the given period.
func NewEMA(period int) *EMA {
	return &EMA{
		period: period,
		alpha:  2.0 / float64(period+1),
	}
}

func (e *EMA) Name() string {
	return fmt.Sprintf("EMA(%d)", e.period)
}

func (e *EMA) Warmup() int {
	return 1
}

func (e *EMA) Reset() {
	e.ema = 0
	e.count = 0
}

func (e *EMA) Update(c pricing.Candle) {
	if e.count == 0 {
		e.ema = c.Close
	} else {
		e.ema += e.alpha * (c.Close - e.ema)
	}
	e.count++
}

func (e *EMA) Ready() bool {
	return e.count >= 1
}

func (e *EMA) Value() float64 {
	if !e.Ready() {
		return 0
	}
	return e.ema
}
