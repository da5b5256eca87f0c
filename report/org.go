// Package report renders evaluation results as Org-mode text for pasting
// into a journal or printing to a terminal.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/liquidity/fills"
	"github.com/rustyeddy/liquidity/monitor"
	"github.com/rustyeddy/liquidity/risk"
)

// fixed renders x rounded half away from zero to places decimals.
func fixed(x float64, places int32) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "n/a"
	}
	return decimal.NewFromFloat(x).StringFixed(places)
}

func money(x float64) string { return fixed(x, 2) }
func rate(x float64) string  { return fixed(x, 4) }

func bar(ratio float64, width int) string {
	n := int(math.Round(ratio * float64(width)))
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	return "[" + strings.Repeat("#", n) + strings.Repeat(".", width-n) + "]"
}

// Org renders a full evaluation. id tags the cycle (may be empty) and at is
// when it ran.
func Org(id string, at time.Time, r monitor.Result) string {
	var b strings.Builder

	heading := "* Liquidity report"
	if id != "" {
		heading += fmt.Sprintf(" (%s)", shortID(id))
	}
	b.WriteString(heading + "\n")
	b.WriteString(":PROPERTIES:\n")
	if id != "" {
		b.WriteString(fmt.Sprintf(":ID: %s\n", id))
	}
	b.WriteString(fmt.Sprintf(":TIME: %s\n", at.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":COST_BASIS: %s\n", rate(r.Thresholds.CostBasis)))
	b.WriteString(":END:\n\n")

	writeSummary(&b, r)
	writeProgress(&b, r)
	writeAlerts(&b, r)
	writePnL(&b, r)
	writeVolatility(&b, r)
	writeDaily(&b, r)

	b.WriteString("** Suggestion\n")
	s := r.Suggestion
	if s.Size > 0 {
		b.WriteString(fmt.Sprintf("%s %s: %s\n", s.Action, fixed(s.Size, 2), s.Reason))
	} else {
		b.WriteString(fmt.Sprintf("%s: %s\n", s.Action, s.Reason))
	}
	return b.String()
}

func writeSummary(b *strings.Builder, r monitor.Result) {
	s := r.Summary
	avg := "n/a"
	if s.HasTrades {
		avg = rate(s.AvgPrice)
	}
	b.WriteString("** Summary\n")
	b.WriteString(fmt.Sprintf("- Total trades: %d\n", s.Trades))
	b.WriteString(fmt.Sprintf("- Total volume: %s\n", money(s.Volume)))
	b.WriteString(fmt.Sprintf("- Avg price: %s\n", avg))
	b.WriteString(fmt.Sprintf("- Sell:Buy ratio: %d:%d\n\n", s.SellCount, s.BuyCount))
}

func writeProgress(b *strings.Builder, r monitor.Result) {
	th := r.Thresholds
	a := r.Risk
	b.WriteString("** Progress\n")
	b.WriteString("| Target | Done | Goal | Progress | Severity |\n")
	b.WriteString("|--------+------+------+----------+----------|\n")
	b.WriteString(fmt.Sprintf("| Sell MXN | %s | %s | %s %s%% | %s |\n",
		money(r.Exposure.SellTotal), money(th.TargetSellMXN),
		bar(a.SellProgress, 20), fixed(a.SellProgress*100, 1), a.SellSeverity))
	b.WriteString(fmt.Sprintf("| Buy USD | %s | %s | %s %s%% | %s |\n\n",
		money(r.Exposure.BuyNotional), money(th.TargetBuyUSD),
		bar(a.BuyProgress, 20), fixed(a.BuyProgress*100, 1), a.BuySeverity))
}

func writeAlerts(b *strings.Builder, r monitor.Result) {
	b.WriteString("** Alerts\n")
	if len(r.Risk.Alerts) == 0 {
		b.WriteString("- none\n\n")
		return
	}
	for _, al := range r.Risk.Alerts {
		tag := "NOTE"
		if al.Code == risk.MXNExposureLimit || al.Code == risk.USDExposureLimit {
			tag = "WARNING"
		}
		b.WriteString(fmt.Sprintf("- %s %s: %s (value %s, threshold %s)\n",
			tag, al.Code, al.Msg, money(al.Value), money(al.Threshold)))
	}
	b.WriteString("\n")
}

func writePnL(b *strings.Builder, r monitor.Result) {
	p := r.PnL
	avg := func(defined bool, v float64) string {
		if !defined {
			return "n/a"
		}
		return rate(v)
	}
	b.WriteString("** P&L vs cost basis\n")
	b.WriteString("| Side | Avg price | Deviation | P&L |\n")
	b.WriteString("|------+-----------+-----------+-----|\n")
	b.WriteString(fmt.Sprintf("| SELL | %s | %s | %s |\n",
		avg(p.SellAvg.Defined, p.SellAvg.Value), rate(p.SellDeviation), money(p.SellPnL)))
	b.WriteString(fmt.Sprintf("| BUY | %s | %s | %s |\n",
		avg(p.BuyAvg.Defined, p.BuyAvg.Value), rate(p.BuyDeviation), money(p.BuyPnL)))
	b.WriteString(fmt.Sprintf("- Net P&L estimate: %s\n\n", money(p.NetPnL)))
}

func writeVolatility(b *strings.Builder, r monitor.Result) {
	v := r.Volatility
	b.WriteString("** Volatility\n")
	if !v.HasEnoughData {
		b.WriteString(fmt.Sprintf("- STDDEV(%d): insufficient data (%d trades), reported as %s\n\n",
			v.Window, len(v.Series), rate(v.Latest)))
		return
	}
	b.WriteString(fmt.Sprintf("- STDDEV(%d): %s (threshold %s)\n\n",
		v.Window, rate(v.Latest), rate(r.Thresholds.VolatilityThreshold)))
}

func writeDaily(b *strings.Builder, r monitor.Result) {
	b.WriteString("** Volume by day\n")
	b.WriteString("| Day | SELL | BUY |\n")
	b.WriteString("|-----+------+-----|\n")
	for _, d := range r.Buckets.ByDay {
		b.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
			d.Start.Format("2006-01-02"), money(d.Sell), money(d.Buy)))
	}
	b.WriteString("\n")
}

// TradesOrg renders up to n fills, newest first. n <= 0 renders all.
func TradesOrg(log fills.Log, n int) string {
	recent := log.Newest()
	if n > 0 && len(recent) > n {
		recent = recent[:n]
	}

	var b strings.Builder
	b.WriteString("** Trade log\n")
	b.WriteString("| Time | Side | Price | Amount | Order |\n")
	b.WriteString("|------+------+-------+--------+-------|\n")
	for _, t := range recent {
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			t.Time.UTC().Format(time.RFC3339), t.Side, rate(t.Price), money(t.Amount), t.OrderID))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
