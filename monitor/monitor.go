// Package monitor runs one evaluation cycle over a fill log: exposure,
// volatility, cost-basis P&L, threshold checks and the trade suggestion.
//
// Evaluate is a pure function of its arguments. It does no I/O, keeps no
// state between calls and is safe to call concurrently on the same log.
package monitor

import (
	"github.com/rustyeddy/liquidity/advisor"
	"github.com/rustyeddy/liquidity/config"
	"github.com/rustyeddy/liquidity/exposure"
	"github.com/rustyeddy/liquidity/fills"
	"github.com/rustyeddy/liquidity/indicators"
	"github.com/rustyeddy/liquidity/pnl"
	"github.com/rustyeddy/liquidity/risk"
)

// ErrConfig is returned, wrapped, when the thresholds are unusable.
var ErrConfig = risk.ErrConfig

// Result is the complete output of one cycle. Every field is populated;
// missing data shows up as zero values and the Defined/HasEnoughData flags.
type Result struct {
	Thresholds config.Thresholds

	Summary    exposure.Summary
	Exposure   exposure.Snapshot
	Buckets    exposure.Buckets
	Volatility indicators.Volatility
	PnL        pnl.Estimate
	Risk       risk.Assessment
	Suggestion advisor.Suggestion
}

// Evaluate runs a full cycle. A configuration error aborts the cycle before
// anything is computed and no partial Result is returned.
func Evaluate(log fills.Log, th config.Thresholds) (Result, error) {
	if err := th.Validate(); err != nil {
		return Result{}, err
	}
	width, err := th.Bucket()
	if err != nil {
		return Result{}, err
	}

	r := Result{
		Thresholds: th,
		Summary:    exposure.Summarize(log),
		Exposure:   exposure.Aggregate(log),
		Buckets:    exposure.Breakdown(log, width),
		PnL:        pnl.Calculate(log, th.CostBasis),
	}

	if r.Volatility, err = indicators.PriceVolatility(log, th.VolatilityWindow); err != nil {
		return Result{}, err
	}
	if r.Risk, err = risk.Evaluate(th.Policy(), r.Exposure); err != nil {
		return Result{}, err
	}

	// The suggestion reads the finished volatility and P&L readings.
	r.Suggestion = advisor.Suggest(advisor.Inputs{
		LatestVolatility:    r.Volatility.Latest,
		VolatilityThreshold: th.VolatilityThreshold,
		SellDeviation:       r.PnL.SellDeviation,
		BlockSize:           th.BlockSize,
	})

	return r, nil
}
