package journal

const Schema = `
CREATE TABLE IF NOT EXISTS cycles (
	id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	trades INTEGER NOT NULL,
	sell_total REAL NOT NULL,
	buy_notional REAL NOT NULL,
	sell_progress REAL NOT NULL,
	buy_progress REAL NOT NULL,
	volatility REAL NOT NULL,
	volatility_ok BOOLEAN NOT NULL,
	net_pnl REAL NOT NULL,
	action TEXT NOT NULL,
	size REAL NOT NULL,
	reason TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS alerts (
	cycle_id TEXT NOT NULL REFERENCES cycles(id),
	code TEXT NOT NULL,
	msg TEXT NOT NULL,
	value REAL NOT NULL,
	threshold REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cycles_time ON cycles(time);
CREATE INDEX IF NOT EXISTS idx_alerts_cycle ON alerts(cycle_id);
`
