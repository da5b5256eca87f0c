package journal

import (
	"fmt"
	"time"

	"github.com/rustyeddy/liquidity/config"
	"github.com/rustyeddy/liquidity/monitor"
	"github.com/rustyeddy/liquidity/risk"
)

// Cycle is one evaluation as the journal keeps it.
type Cycle struct {
	ID   string
	Time time.Time

	Trades       int
	SellTotal    float64
	BuyNotional  float64
	SellProgress float64
	BuyProgress  float64
	Volatility   float64
	VolatilityOK bool
	NetPnL       float64

	Action string
	Size   float64
	Reason string

	Alerts []risk.Alert
}

// FromResult flattens an evaluation into a journal entry.
func FromResult(id string, at time.Time, r monitor.Result) Cycle {
	return Cycle{
		ID:           id,
		Time:         at.UTC(),
		Trades:       r.Summary.Trades,
		SellTotal:    r.Exposure.SellTotal,
		BuyNotional:  r.Exposure.BuyNotional,
		SellProgress: r.Risk.SellProgress,
		BuyProgress:  r.Risk.BuyProgress,
		Volatility:   r.Volatility.Latest,
		VolatilityOK: r.Volatility.HasEnoughData,
		NetPnL:       r.PnL.NetPnL,
		Action:       string(r.Suggestion.Action),
		Size:         r.Suggestion.Size,
		Reason:       r.Suggestion.Reason,
		Alerts:       append([]risk.Alert(nil), r.Risk.Alerts...),
	}
}

type Journal interface {
	RecordCycle(Cycle) error
	Close() error
}

// Discard records nothing.
type Discard struct{}

func (Discard) RecordCycle(Cycle) error { return nil }
func (Discard) Close() error            { return nil }

// Open returns the journal the config names.
func Open(cfg config.JournalConfig) (Journal, error) {
	switch cfg.Type {
	case "", "none":
		return Discard{}, nil
	case "csv":
		return NewCSV(cfg.Path)
	case "sqlite":
		return NewSQLite(cfg.Path)
	}
	return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
}
