package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	start DATETIME NOT NULL,
	seed INTEGER NOT NULL,
	interval_ns INTEGER NOT NULL,
	source TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS candles (
	run_id TEXT NOT NULL,
	idx INTEGER NOT NULL,
	time DATETIME NOT NULL,
	open REAL NOT NULL,
	high REAL NOT NULL,
	low REAL NOT NULL,
	close REAL NOT NULL,
	volume REAL NOT NULL,
	PRIMARY KEY (run_id, idx)
);

CREATE INDEX IF NOT EXISTS idx_candles_time ON candles(time);
`
