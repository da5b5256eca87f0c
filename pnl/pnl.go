// Package pnl estimates profit and loss of the fill log against a
// configured cost basis (reference exchange rate).
package pnl

import (
	"github.com/rustyeddy/liquidity/fills"
)

// Mean is an average that may not exist: a side with no fills has no mean.
type Mean struct {
	Value   float64
	Defined bool
}

func mean(log fills.Log) Mean {
	if len(log) == 0 {
		return Mean{}
	}
	sum := 0.0
	for _, t := range log {
		sum += t.Price
	}
	return Mean{Value: sum / float64(len(log)), Defined: true}
}

// Estimate is the cost-basis P&L of a fill log. Deviations are signed so
// that a positive value is favorable on both sides: selling above the cost
// basis, buying below it.
type Estimate struct {
	CostBasis float64

	SellAvg   Mean
	BuyAvg    Mean
	SellTotal float64 // base currency sold
	BuyTotal  float64 // base currency bought

	SellDeviation float64 // SellAvg - CostBasis
	BuyDeviation  float64 // CostBasis - BuyAvg
	SellPnL       float64 // SellDeviation * SellTotal
	BuyPnL        float64 // BuyDeviation * BuyTotal
	NetPnL        float64 // (SellAvg - BuyAvg) * SellTotal
}

// Calculate computes the estimate. A side with no fills contributes no P&L:
// its deviation and P&L are 0, and NetPnL is 0 unless both sides traded.
func Calculate(log fills.Log, costBasis float64) Estimate {
	sells := log.Side(fills.Sell)
	buys := log.Side(fills.Buy)

	e := Estimate{
		CostBasis: costBasis,
		SellAvg:   mean(sells),
		BuyAvg:    mean(buys),
		SellTotal: totalAmount(sells),
		BuyTotal:  totalAmount(buys),
	}

	if e.SellAvg.Defined {
		e.SellDeviation = e.SellAvg.Value - costBasis
		e.SellPnL = e.SellDeviation * e.SellTotal
	}
	if e.BuyAvg.Defined {
		e.BuyDeviation = costBasis - e.BuyAvg.Value
		e.BuyPnL = e.BuyDeviation * e.BuyTotal
	}
	if e.SellAvg.Defined && e.BuyAvg.Defined {
		e.NetPnL = (e.SellAvg.Value - e.BuyAvg.Value) * e.SellTotal
	}
	return e
}

func totalAmount(log fills.Log) float64 {
	total := 0.0
	for _, t := range log {
		total += t.Amount
	}
	return total
}
