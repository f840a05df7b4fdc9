package playback

import (
	"math/rand"
	"time"

	"github.com/Aliyansayz/candlestick-realtime/pricing"
)

// generator synthesizes the next candle from the previous one: the new bar
// opens at the prior close, closes a normal step away, and grows wicks
// proportional to the step size. A seeded source makes runs reproducible.
type generator struct {
	rng   *rand.Rand
	sigma float64
	step  time.Duration
}

func newGenerator(seed int64, sigma float64, step time.Duration) *generator {
	if sigma <= 0 {
		sigma = 0.5
	}
	if step <= 0 {
		step = time.Second
	}
	return &generator{
		rng:   rand.New(rand.NewSource(seed)),
		sigma: sigma,
		step:  step,
	}
}

// seed returns the session's first candle, a zero-range bar at the starting
// price.
func (g *generator) seed(price float64, at time.Time) pricing.Candle {
	return pricing.Candle{
		Time:  at,
		Open:  price,
		High:  price,
		Low:   price,
		Close: price,
	}
}

// next synthesizes the candle following prev.
func (g *generator) next(prev pricing.Candle) pricing.Candle {
	noise := g.rng.NormFloat64() * g.sigma
	open := prev.Close
	close := open + noise

	hi := open
	if close > hi {
		hi = close
	}
	lo := open
	if close < lo {
		lo = close
	}

	mag := noise
	if mag < 0 {
		mag = -mag
	}

	return pricing.Candle{
		Time:  prev.Time.Add(g.step),
		Open:  open,
		High:  hi + mag*g.rng.Float64(),
		Low:   lo - mag*g.rng.Float64(),
		Close: close,
	}
}
