package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	candles *csv.Writer
	runs    *csv.Writer
	cf, rf  *os.File
}

func NewCSV(candlesPath, runsPath string) (*CSVJournal, error) {
	cf, err := os.Create(candlesPath)
	if err != nil {
		return nil, err
	}
	rf, err := os.Create(runsPath)
	if err != nil {
		cf.Close()
		return nil, err
	}

	cw := csv.NewWriter(cf)
	rw := csv.NewWriter(rf)

	if err := cw.Write([]string{"run_id", "idx", "time", "open", "high", "low", "close", "volume"}); err != nil {
		return nil, err
	}
	if err := rw.Write([]string{"run_id", "start", "seed", "interval", "source"}); err != nil {
		return nil, err
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	rw.Flush()
	if err := rw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{cw, rw, cf, rf}, nil
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.Start.Format(time.RFC3339),
		strconv.FormatInt(r.Seed, 10),
		r.Interval.String(),
		r.Source,
	})
	if err != nil {
		return err
	}

	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordCandle(c CandleRecord) error {
	err := j.candles.Write([]string{
		c.RunID,
		strconv.Itoa(c.Index),
		c.Time.Format(time.RFC3339),
		f(c.Open),
		f(c.High),
		f(c.Low),
		f(c.Close),
		f(c.Volume),
	})
	if err != nil {
		return err
	}

	j.candles.Flush()
	return j.candles.Error()
}

func (j *CSVJournal) Close() error {
	j.candles.Flush()
	if err := j.candles.Error(); err != nil {
		return err
	}
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}

	if err := j.cf.Close(); err != nil {
		return err
	}
	return j.rf.Close()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
