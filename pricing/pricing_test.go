package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func bar(i int, o, h, l, c float64) Candle {
	return Candle{
		Time:  baseTime.Add(time.Duration(i) * time.Second),
		Open:  o,
		High:  h,
		Low:   l,
		Close: c,
	}
}

func TestCandleValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid candle", func(t *testing.T) {
		assert.NoError(t, bar(0, 100, 105, 99, 102).Validate())
	})

	t.Run("high below close", func(t *testing.T) {
		err := bar(0, 100, 101, 99, 102).Validate()
		assert.ErrorIs(t, err, ErrInvalidCandle)
	})

	t.Run("high below open", func(t *testing.T) {
		err := bar(0, 103, 102, 99, 100).Validate()
		assert.ErrorIs(t, err, ErrInvalidCandle)
	})

	t.Run("low above body", func(t *testing.T) {
		err := bar(0, 100, 105, 101, 102).Validate()
		assert.ErrorIs(t, err, ErrInvalidCandle)
	})

	t.Run("doji is valid", func(t *testing.T) {
		assert.NoError(t, bar(0, 100, 100, 100, 100).Validate())
	})
}

func TestLogAppend(t *testing.T) {
	t.Parallel()

	l := NewLog()
	assert.Equal(t, 0, l.Len())

	_, ok := l.Last()
	assert.False(t, ok)

	require.NoError(t, l.Append(bar(0, 100, 105, 99, 102)))
	require.NoError(t, l.Append(bar(1, 102, 107, 101, 105)))
	assert.Equal(t, 2, l.Len())

	last, ok := l.Last()
	require.True(t, ok)
	assert.Equal(t, 105.0, last.Close)

	t.Run("rejects bad OHLC and keeps length", func(t *testing.T) {
		err := l.Append(bar(2, 105, 104, 99, 106))
		assert.ErrorIs(t, err, ErrInvalidCandle)
		assert.Equal(t, 2, l.Len())
	})

	t.Run("rejects non-increasing time", func(t *testing.T) {
		// Same timestamp as the last accepted candle.
		err := l.Append(bar(1, 105, 106, 104, 105))
		assert.ErrorIs(t, err, ErrInvalidCandle)

		// Earlier timestamp.
		err = l.Append(bar(0, 105, 106, 104, 105))
		assert.ErrorIs(t, err, ErrInvalidCandle)
		assert.Equal(t, 2, l.Len())
	})
}

func TestLogSlice(t *testing.T) {
	t.Parallel()

	l := NewLog()
	for i := 0; i < 5; i++ {
		require.NoError(t, l.Append(bar(i, 100, 101, 99, 100)))
	}

	s, err := l.Slice(1, 4)
	require.NoError(t, err)
	assert.Len(t, s, 3)
	assert.Equal(t, l.At(1), s[0])

	t.Run("empty slice is allowed", func(t *testing.T) {
		s, err := l.Slice(2, 2)
		require.NoError(t, err)
		assert.Empty(t, s)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := l.Slice(-1, 3)
		assert.ErrorIs(t, err, ErrOutOfRange)

		_, err = l.Slice(0, 6)
		assert.ErrorIs(t, err, ErrOutOfRange)

		_, err = l.Slice(4, 2)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
}
