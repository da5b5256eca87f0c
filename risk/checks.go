package risk

import (
	"fmt"

	"github.com/rustyeddy/liquidity/exposure"
)

// Alert codes. They are independent; any combination may fire together.
const (
	MXNExposureLimit = "MXN_EXPOSURE_LIMIT"
	USDExposureLimit = "USD_EXPOSURE_LIMIT"
	SellTargetMet    = "SELL_TARGET_MET"
	BuyTargetMet     = "BUY_TARGET_MET"
)

type Alert struct {
	Code      string
	Msg       string
	Value     float64
	Threshold float64
}

type Assessment struct {
	SellProgress float64
	BuyProgress  float64
	SellSeverity Severity
	BuySeverity  Severity

	MXNExposureBreached bool
	USDExposureBreached bool
	SellTargetMet       bool
	BuyTargetMet        bool

	Alerts []Alert
}

func (a *Assessment) add(code string, value, threshold float64, msg string) {
	a.Alerts = append(a.Alerts, Alert{Code: code, Msg: msg, Value: value, Threshold: threshold})
}

// Evaluate checks an exposure snapshot against the policy. A policy with a
// non-positive limit or target is rejected with ErrConfig before any ratio
// is computed.
func Evaluate(p Policy, snap exposure.Snapshot) (Assessment, error) {
	if err := p.Validate(); err != nil {
		return Assessment{}, err
	}

	var (
		a   Assessment
		err error
	)
	if a.SellProgress, err = Progress(snap.SellTotal, p.TargetSellMXN); err != nil {
		return Assessment{}, err
	}
	if a.BuyProgress, err = Progress(snap.BuyNotional, p.TargetBuyUSD); err != nil {
		return Assessment{}, err
	}
	a.SellSeverity = Classify(a.SellProgress)
	a.BuySeverity = Classify(a.BuyProgress)

	// Exposure constraints
	if snap.SellTotal >= p.MXNExposureLimit {
		a.MXNExposureBreached = true
		a.add(MXNExposureLimit, snap.SellTotal, p.MXNExposureLimit,
			fmt.Sprintf("MXN exposure %.2f >= limit %.2f", snap.SellTotal, p.MXNExposureLimit))
	}
	if snap.BuyNotional >= p.USDExposureLimit {
		a.USDExposureBreached = true
		a.add(USDExposureLimit, snap.BuyNotional, p.USDExposureLimit,
			fmt.Sprintf("USD exposure %.2f >= limit %.2f", snap.BuyNotional, p.USDExposureLimit))
	}

	// Fulfillment targets
	if snap.SellTotal >= p.TargetSellMXN {
		a.SellTargetMet = true
		a.add(SellTargetMet, snap.SellTotal, p.TargetSellMXN,
			fmt.Sprintf("sell target met: %.2f >= %.2f MXN", snap.SellTotal, p.TargetSellMXN))
	}
	if snap.BuyNotional >= p.TargetBuyUSD {
		a.BuyTargetMet = true
		a.add(BuyTargetMet, snap.BuyNotional, p.TargetBuyUSD,
			fmt.Sprintf("buy target met: %.2f >= %.2f USD", snap.BuyNotional, p.TargetBuyUSD))
	}

	return a, nil
}
