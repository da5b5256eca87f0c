package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatCyclesOrg renders cycles as an Org table, one row per cycle, in
// the order given.
func FormatCyclesOrg(cycles []Cycle) string {
	var b strings.Builder
	b.WriteString("| Cycle | Time | Trades | Sell % | Buy % | Vol | Net P&L | Action | Alerts |\n")
	b.WriteString("|-------+------+--------+--------+-------+-----+---------+--------+--------|\n")
	for _, c := range cycles {
		vol := "n/a"
		if c.VolatilityOK {
			vol = fmt.Sprintf("%.4f", c.Volatility)
		}
		action := c.Action
		if c.Size > 0 {
			action = fmt.Sprintf("%s %.2f", c.Action, c.Size)
		}
		codes := make([]string, len(c.Alerts))
		for i, a := range c.Alerts {
			codes[i] = a.Code
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %d | %.1f | %.1f | %s | %.2f | %s | %s |\n",
			shortID(c.ID),
			c.Time.UTC().Format(time.RFC3339),
			c.Trades,
			c.SellProgress*100,
			c.BuyProgress*100,
			vol,
			c.NetPnL,
			action,
			strings.Join(codes, " "),
		))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
