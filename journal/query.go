package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/liquidity/risk"
)

const cycleColumns = `id, time, trades, sell_total, buy_notional, sell_progress, buy_progress,
	volatility, volatility_ok, net_pnl, action, size, reason`

type scanner interface {
	Scan(dest ...any) error
}

func scanCycle(s scanner) (Cycle, error) {
	var c Cycle
	err := s.Scan(
		&c.ID,
		&c.Time,
		&c.Trades,
		&c.SellTotal,
		&c.BuyNotional,
		&c.SellProgress,
		&c.BuyProgress,
		&c.Volatility,
		&c.VolatilityOK,
		&c.NetPnL,
		&c.Action,
		&c.Size,
		&c.Reason,
	)
	c.Time = c.Time.UTC()
	return c, err
}

// GetCycle returns a single cycle by ID.
func (j *SQLite) GetCycle(id string) (Cycle, error) {
	row := j.db.QueryRow(`SELECT `+cycleColumns+` FROM cycles WHERE id = ?`, id)

	c, err := scanCycle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Cycle{}, fmt.Errorf("cycle %q not found", id)
		}
		return Cycle{}, err
	}
	if c.Alerts, err = j.alerts(c.ID); err != nil {
		return Cycle{}, err
	}
	return c, nil
}

// ListCyclesBetween returns cycles run within [start, end), oldest first.
func (j *SQLite) ListCyclesBetween(start, end time.Time) ([]Cycle, error) {
	return j.list(`SELECT `+cycleColumns+` FROM cycles
		WHERE time >= ? AND time < ?
		ORDER BY time ASC, id ASC`, start.UTC(), end.UTC())
}

// Recent returns the newest n cycles, newest first. n <= 0 returns all.
func (j *SQLite) Recent(n int) ([]Cycle, error) {
	if n <= 0 {
		n = -1
	}
	return j.list(`SELECT `+cycleColumns+` FROM cycles
		ORDER BY time DESC, id DESC
		LIMIT ?`, n)
}

func (j *SQLite) list(query string, args ...any) ([]Cycle, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Cycle
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Alerts, err = j.alerts(out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (j *SQLite) alerts(cycleID string) ([]risk.Alert, error) {
	rows, err := j.db.Query(`
		SELECT code, msg, value, threshold
		FROM alerts
		WHERE cycle_id = ?
		ORDER BY rowid ASC`, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []risk.Alert
	for rows.Next() {
		var a risk.Alert
		if err := rows.Scan(&a.Code, &a.Msg, &a.Value, &a.Threshold); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
