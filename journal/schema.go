package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	started DATETIME NOT NULL,
	finished DATETIME NOT NULL,
	scanned INTEGER NOT NULL,
	no_data INTEGER NOT NULL,
	errors INTEGER NOT NULL,
	matches INTEGER NOT NULL,
	notified BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS matches (
	run_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	kind TEXT NOT NULL,
	time DATETIME NOT NULL,
	open TEXT NOT NULL,
	high TEXT NOT NULL,
	low TEXT NOT NULL,
	close TEXT NOT NULL,
	range_pct TEXT NOT NULL,
	PRIMARY KEY (run_id, symbol)
);

CREATE INDEX IF NOT EXISTS idx_matches_symbol ON matches(symbol);
`
