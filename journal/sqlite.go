package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// RecordCycle stores a cycle and its alerts in one transaction.
func (j *SQLite) RecordCycle(c Cycle) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO cycles
		(id, time, trades, sell_total, buy_notional, sell_progress, buy_progress,
		 volatility, volatility_ok, net_pnl, action, size, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Time.UTC(), c.Trades, c.SellTotal, c.BuyNotional, c.SellProgress, c.BuyProgress,
		c.Volatility, c.VolatilityOK, c.NetPnL, c.Action, c.Size, c.Reason,
	)
	if err != nil {
		return fmt.Errorf("record cycle %s: %w", c.ID, err)
	}

	for _, a := range c.Alerts {
		_, err := tx.Exec(`
			INSERT INTO alerts (cycle_id, code, msg, value, threshold)
			VALUES (?, ?, ?, ?, ?)`,
			c.ID, a.Code, a.Msg, a.Value, a.Threshold,
		)
		if err != nil {
			return fmt.Errorf("record alert %s: %w", a.Code, err)
		}
	}

	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
