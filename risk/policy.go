package risk

import (
	"errors"
	"fmt"
)

// ErrConfig marks an evaluation rejected because of its configuration.
// No partial result accompanies it; the caller fixes the config and retries.
var ErrConfig = errors.New("configuration error")

type Policy struct {
	// Exposure limits
	MXNExposureLimit float64 // base currency sold, e.g. 50000
	USDExposureLimit float64 // quote notional bought, e.g. 150000

	// Fulfillment targets
	TargetSellMXN float64 // base currency to sell, e.g. 5000
	TargetBuyUSD  float64 // quote notional to buy, e.g. 100000
}

// Validate requires every limit and target to be strictly positive.
func (p Policy) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"mxn_exposure_limit", p.MXNExposureLimit},
		{"usd_exposure_limit", p.USDExposureLimit},
		{"target_sell_mxn", p.TargetSellMXN},
		{"target_buy_usd", p.TargetBuyUSD},
	}
	for _, c := range checks {
		if !(c.v > 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrConfig, c.name, c.v)
		}
	}
	return nil
}
