package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/liquidity/config"
	"github.com/rustyeddy/liquidity/fills"
	"github.com/rustyeddy/liquidity/monitor"
	"github.com/rustyeddy/liquidity/risk"
)

var t0 = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func testCycle(id string, at time.Time, alerts ...risk.Alert) Cycle {
	return Cycle{
		ID:           id,
		Time:         at,
		Trades:       3,
		SellTotal:    3000,
		BuyNotional:  9900,
		SellProgress: 0.6,
		BuyProgress:  0.099,
		Volatility:   0.0123,
		VolatilityOK: true,
		NetPnL:       325,
		Action:       "SELL",
		Size:         1000,
		Reason:       "price favorable relative to cost basis.",
		Alerts:       alerts,
	}
}

func TestFromResult(t *testing.T) {
	t.Parallel()

	log := fills.Log{
		{Time: t0, Side: fills.Sell, Price: 20.10, Amount: 1000, OrderID: "o1"},
		{Time: t0.Add(time.Minute), Side: fills.Sell, Price: 20.05, Amount: 2000, OrderID: "o2"},
		{Time: t0.Add(2 * time.Minute), Side: fills.Buy, Price: 19.80, Amount: 500, OrderID: "o3"},
	}
	th := config.Default().Thresholds
	th.MXNExposureLimit = 2500
	r, err := monitor.Evaluate(log, th)
	require.NoError(t, err)

	at := time.Date(2024, 3, 15, 12, 0, 0, 0, time.FixedZone("CST", -6*3600))
	c := FromResult("C1", at, r)

	assert.Equal(t, "C1", c.ID)
	assert.Equal(t, time.UTC, c.Time.Location())
	assert.True(t, c.Time.Equal(at))
	assert.Equal(t, 3, c.Trades)
	assert.InDelta(t, 3000, c.SellTotal, 1e-9)
	assert.InDelta(t, 9900, c.BuyNotional, 1e-9)
	assert.InDelta(t, 0.6, c.SellProgress, 1e-9)
	assert.False(t, c.VolatilityOK)
	assert.InDelta(t, 325, c.NetPnL, 1e-6)
	assert.Equal(t, "SELL", c.Action)
	require.Len(t, c.Alerts, 1)
	assert.Equal(t, risk.MXNExposureLimit, c.Alerts[0].Code)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	j, err := Open(config.JournalConfig{Type: "none"})
	require.NoError(t, err)
	assert.IsType(t, Discard{}, j)
	assert.NoError(t, j.RecordCycle(testCycle("C1", t0)))

	j, err = Open(config.JournalConfig{Type: "csv", Path: filepath.Join(dir, "cycles.csv")})
	require.NoError(t, err)
	assert.IsType(t, &CSV{}, j)
	assert.NoError(t, j.Close())

	j, err = Open(config.JournalConfig{Type: "sqlite", Path: filepath.Join(dir, "cycles.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, j)
	assert.NoError(t, j.Close())

	_, err = Open(config.JournalConfig{Type: "postgres"})
	assert.Error(t, err)
}

func TestFormatCyclesOrg(t *testing.T) {
	t.Parallel()

	quiet := testCycle("01HQXYZABCDEFGH", t0)
	quiet.VolatilityOK = false
	quiet.Volatility = 0
	hold := testCycle("C2", t0.Add(time.Minute),
		risk.Alert{Code: risk.MXNExposureLimit}, risk.Alert{Code: risk.SellTargetMet})
	hold.Action, hold.Size = "HOLD", 0

	out := FormatCyclesOrg([]Cycle{quiet, hold})
	assert.Contains(t, out, "| 01HQXYZA | 2024-03-15T10:30:00Z | 3 | 60.0 | 9.9 | n/a | 325.00 | SELL 1000.00 |  |\n")
	assert.Contains(t, out, "| C2 | 2024-03-15T10:31:00Z | 3 | 60.0 | 9.9 | 0.0123 | 325.00 | HOLD | MXN_EXPOSURE_LIMIT SELL_TARGET_MET |\n")
}
