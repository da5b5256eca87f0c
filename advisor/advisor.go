// Package advisor turns the monitor readings into one trade suggestion.
package advisor

type Action string

const (
	Sell Action = "SELL"
	Hold Action = "HOLD"
	Wait Action = "WAIT"
)

const (
	ReasonVolatile   = "market volatile, reduce size or delay."
	ReasonBelowBasis = "sell price below cost basis."
	ReasonFavorable  = "price favorable relative to cost basis."
)

// Inputs are the finished outputs of the volatility monitor and the P&L
// calculator, plus the two knobs the rules read.
type Inputs struct {
	LatestVolatility    float64
	VolatilityThreshold float64
	SellDeviation       float64
	BlockSize           float64
}

// Suggestion is derived fresh on every evaluation. Size is the amount to
// trade and is only set for SELL.
type Suggestion struct {
	Action Action
	Size   float64
	Reason string
}

// Suggest applies the rules in a fixed order; the first match wins.
//  1. volatility above threshold: HOLD
//  2. average sell price below cost basis: WAIT
//  3. otherwise SELL one block
func Suggest(in Inputs) Suggestion {
	switch {
	case in.LatestVolatility > in.VolatilityThreshold:
		return Suggestion{Action: Hold, Reason: ReasonVolatile}
	case in.SellDeviation < 0:
		return Suggestion{Action: Wait, Reason: ReasonBelowBasis}
	default:
		return Suggestion{Action: Sell, Size: in.BlockSize, Reason: ReasonFavorable}
	}
}
