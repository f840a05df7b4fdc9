package pricing

import "fmt"

// Log is an append-only ordered sequence of candles. Candles are never
// mutated or removed after a successful append; window trimming for display
// is a view concern, not a log concern.
//
// Log is not safe for concurrent use; the playback controller serializes all
// access behind its own mutex.
type Log struct {
	candles []Candle
}

// NewLog returns an empty candle log.
func NewLog() *Log {
	return &Log{}
}

// Len returns the number of candles appended so far.
func (l *Log) Len() int {
	return len(l.candles)
}

// Last returns the most recently appended candle. ok is false when the log
// is empty.
func (l *Log) Last() (c Candle, ok bool) {
	if len(l.candles) == 0 {
		return Candle{}, false
	}
	return l.candles[len(l.candles)-1], true
}

// At returns the candle at index i. It panics on an out-of-range index,
// matching slice semantics; use Slice for checked access.
func (l *Log) At(i int) Candle {
	return l.candles[i]
}

// Append validates c and appends it to the log. The candle's index is the
// old length. Appends with a non-increasing timestamp or a broken OHLC
// ordering fail with ErrInvalidCandle and leave the log unchanged.
func (l *Log) Append(c Candle) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if last, ok := l.Last(); ok && !c.Time.After(last.Time) {
		return fmt.Errorf("%w: time %v does not advance past %v",
			ErrInvalidCandle, c.Time, last.Time)
	}
	l.candles = append(l.candles, c)
	return nil
}

// Slice returns a read-only view of candles [start, end). The returned slice
// aliases the log's backing array; callers must not mutate it. Indices
// outside [0, Len] or start > end fail with ErrOutOfRange.
func (l *Log) Slice(start, end int) ([]Candle, error) {
	if start < 0 || end > len(l.candles) || start > end {
		return nil, fmt.Errorf("%w: [%d, %d) of %d candles",
			ErrOutOfRange, start, end, len(l.candles))
	}
	return l.candles[start:end:end], nil
}
