// Package replay feeds recorded candles back through the playback pipeline,
// so a journaled session can be re-watched through the same
// append -> indicators -> frame path the live generator uses.
package replay

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Aliyansayz/candlestick-realtime/playback"
	"github.com/Aliyansayz/candlestick-realtime/pricing"
)

// Options controls how replay behaves.
type Options struct {
	// Strict stops at the first malformed or invalid row. The default skips
	// bad rows with a warning on stderr, matching how a journaled file with
	// a corrupt line should still mostly replay.
	Strict bool
}

// CSV replays candles from a CSV file into the controller.
//
// Expected columns (header optional, detected by a leading "time" cell):
//
//	time,open,high,low,close[,volume]
//
// time is RFC3339. Rows are injected in file order; the controller's own
// validation rejects rows that break the OHLC or monotonic-time invariants.
func CSV(ctx context.Context, csvPath string, ctrl *playback.Controller, opts Options) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	// Read first row and detect header or data.
	firstRow, err := r.Read()
	if err != nil {
		return err
	}

	hasHeader := len(firstRow) > 0 && strings.EqualFold(strings.TrimSpace(firstRow[0]), "time")
	line := 1
	if !hasHeader {
		if err := handleRow(ctrl, firstRow, line, opts); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line++
		if len(row) == 0 {
			continue
		}
		if err := handleRow(ctrl, row, line, opts); err != nil {
			return err
		}
	}
}

func handleRow(ctrl *playback.Controller, row []string, line int, opts Options) error {
	c, err := parseRow(row)
	if err == nil {
		err = ctrl.Inject(c)
	}
	if err == nil {
		return nil
	}
	if opts.Strict {
		return fmt.Errorf("line %d: %w", line, err)
	}
	fmt.Fprintf(os.Stderr, "replay: skipping line %d: %v\n", line, err)
	return nil
}

func parseRow(row []string) (pricing.Candle, error) {
	if len(row) < 5 {
		return pricing.Candle{}, fmt.Errorf("need at least 5 cols time,open,high,low,close: %v", row)
	}

	t, err := time.Parse(time.RFC3339, strings.TrimSpace(row[0]))
	if err != nil {
		return pricing.Candle{}, fmt.Errorf("bad time %q: %w", row[0], err)
	}

	var v [4]float64
	for i := 0; i < 4; i++ {
		v[i], err = strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
		if err != nil {
			return pricing.Candle{}, fmt.Errorf("bad value %q: %w", row[i+1], err)
		}
	}

	c := pricing.Candle{
		Time:  t,
		Open:  v[0],
		High:  v[1],
		Low:   v[2],
		Close: v[3],
	}

	if len(row) >= 6 && strings.TrimSpace(row[5]) != "" {
		c.Volume, err = strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
		if err != nil {
			return pricing.Candle{}, fmt.Errorf("bad volume %q: %w", row[5], err)
		}
	}

	return c, nil
}
