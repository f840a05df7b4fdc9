package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs (run_id, start, seed, interval_ns, source)
		VALUES (?, ?, ?, ?, ?)`,
		r.RunID, r.Start, r.Seed, int64(r.Interval), r.Source,
	)
	return err
}

func (j *SQLiteJournal) RecordCandle(c CandleRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO candles (run_id, idx, time, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.RunID, c.Index, c.Time, c.Open, c.High, c.Low, c.Close, c.Volume,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
