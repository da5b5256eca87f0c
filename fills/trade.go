// Package fills holds the normalized fill log produced by the liquidity bot
// and the normalizer that turns raw, untyped rows into it.
package fills

import (
	"sort"
	"strings"
	"time"
)

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// ParseSide accepts any casing of buy/sell, surrounding spaces allowed.
func ParseSide(s string) (Side, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(Buy):
		return Buy, true
	case string(Sell):
		return Sell, true
	}
	return "", false
}

// Trade is a single executed fill. Price is the exchange rate (quote per
// base), Amount is the quantity of base currency traded.
type Trade struct {
	Time    time.Time
	Side    Side
	Price   float64
	Amount  float64
	OrderID string
}

// Notional is the fill value in quote currency.
func (t Trade) Notional() float64 {
	return t.Amount * t.Price
}

// Log is a fill log in arrival order.
type Log []Trade

func (l Log) Len() int {
	return len(l)
}

// Chronological returns a copy sorted by time, oldest first. Fills sharing a
// timestamp keep their arrival order.
func (l Log) Chronological() Log {
	out := make(Log, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}

// Newest returns a copy sorted by time, newest first, for display.
func (l Log) Newest() Log {
	out := make(Log, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.After(out[j].Time)
	})
	return out
}

// Side returns the fills on one side, order preserved.
func (l Log) Side(s Side) Log {
	var out Log
	for _, t := range l {
		if t.Side == s {
			out = append(out, t)
		}
	}
	return out
}

func (l Log) Prices() []float64 {
	out := make([]float64, len(l))
	for i, t := range l {
		out[i] = t.Price
	}
	return out
}
