package monitor

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rustyeddy/liquidity/advisor"
	"github.com/rustyeddy/liquidity/config"
	"github.com/rustyeddy/liquidity/fills"
	"github.com/rustyeddy/liquidity/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

func scenarioLog() fills.Log {
	return fills.Log{
		{Time: t0, Side: fills.Sell, Price: 20.10, Amount: 1000, OrderID: "o1"},
		{Time: t0.Add(time.Minute), Side: fills.Sell, Price: 20.05, Amount: 2000, OrderID: "o2"},
		{Time: t0.Add(2 * time.Minute), Side: fills.Buy, Price: 19.80, Amount: 500, OrderID: "o3"},
	}
}

func scenarioThresholds() config.Thresholds {
	th := config.Default().Thresholds
	th.CostBasis = 20.00
	th.TargetSellMXN = 5000
	th.TargetBuyUSD = 100000
	th.VolatilityThreshold = 0.04
	th.BlockSize = 1000
	return th
}

func TestEvaluateFavorableScenario(t *testing.T) {
	t.Parallel()

	r, err := Evaluate(scenarioLog(), scenarioThresholds())
	require.NoError(t, err)

	assert.InDelta(t, 3000.0, r.Exposure.SellTotal, 1e-9)
	assert.InDelta(t, 9900.0, r.Exposure.BuyNotional, 1e-9)

	assert.InDelta(t, 0.6, r.Risk.SellProgress, 1e-12)
	assert.Equal(t, risk.Medium, r.Risk.SellSeverity)

	assert.InDelta(t, 20.075, r.PnL.SellAvg.Value, 1e-9)
	assert.InDelta(t, 0.075, r.PnL.SellDeviation, 1e-9)
	assert.InDelta(t, 225.0, r.PnL.SellPnL, 1e-6)
	assert.InDelta(t, 19.80, r.PnL.BuyAvg.Value, 1e-9)
	assert.InDelta(t, 0.20, r.PnL.BuyDeviation, 1e-9)
	assert.InDelta(t, 100.0, r.PnL.BuyPnL, 1e-6)

	// three fills cannot fill a window of ten
	assert.Equal(t, 0.0, r.Volatility.Latest)
	assert.False(t, r.Volatility.HasEnoughData)

	assert.Equal(t, advisor.Suggestion{
		Action: advisor.Sell,
		Size:   1000,
		Reason: "price favorable relative to cost basis.",
	}, r.Suggestion)

	assert.Equal(t, 3, r.Summary.Trades)
	require.Len(t, r.Buckets.ByDay, 1)
	assert.Equal(t, time.Hour, r.Buckets.Width)
}

func TestEvaluateBelowCostBasis(t *testing.T) {
	t.Parallel()

	th := scenarioThresholds()
	th.CostBasis = 20.20

	r, err := Evaluate(scenarioLog(), th)
	require.NoError(t, err)

	assert.InDelta(t, -0.125, r.PnL.SellDeviation, 1e-9)
	assert.Equal(t, advisor.Wait, r.Suggestion.Action)
	assert.Equal(t, "sell price below cost basis.", r.Suggestion.Reason)
	assert.Equal(t, 0.0, r.Suggestion.Size)
}

func TestEvaluateVolatileMarketHolds(t *testing.T) {
	t.Parallel()

	th := scenarioThresholds()
	th.VolatilityWindow = 2

	log := append(scenarioLog(),
		fills.Trade{Time: t0.Add(3 * time.Minute), Side: fills.Sell, Price: 20.50, Amount: 100, OrderID: "o4"},
	)

	r, err := Evaluate(log, th)
	require.NoError(t, err)

	assert.True(t, r.Volatility.HasEnoughData)
	assert.Greater(t, r.Volatility.Latest, th.VolatilityThreshold)
	// favorable sell price does not matter once the market is volatile
	assert.GreaterOrEqual(t, r.PnL.SellDeviation, 0.0)
	assert.Equal(t, advisor.Hold, r.Suggestion.Action)
	assert.Equal(t, "market volatile, reduce size or delay.", r.Suggestion.Reason)
}

func TestEvaluateEmptyLog(t *testing.T) {
	t.Parallel()

	r, err := Evaluate(nil, scenarioThresholds())
	require.NoError(t, err)

	assert.Equal(t, 0.0, r.Exposure.SellTotal)
	assert.Equal(t, 0.0, r.Exposure.BuyNotional)
	assert.Equal(t, 0.0, r.Risk.SellProgress)
	assert.Equal(t, risk.Low, r.Risk.SellSeverity)
	assert.False(t, r.PnL.SellAvg.Defined)
	assert.False(t, r.Volatility.HasEnoughData)
	assert.False(t, r.Summary.HasTrades)
	// no sells means no deviation, so the last rule applies
	assert.Equal(t, advisor.Sell, r.Suggestion.Action)
}

func TestEvaluateConfigError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Thresholds)
	}{
		{"zero sell target", func(th *config.Thresholds) { th.TargetSellMXN = 0 }},
		{"negative buy target", func(th *config.Thresholds) { th.TargetBuyUSD = -100 }},
		{"zero mxn limit", func(th *config.Thresholds) { th.MXNExposureLimit = 0 }},
		{"window of one", func(th *config.Thresholds) { th.VolatilityWindow = 1 }},
		{"zero cost basis", func(th *config.Thresholds) { th.CostBasis = 0 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			th := scenarioThresholds()
			tt.mutate(&th)

			r, err := Evaluate(scenarioLog(), th)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfig))
			assert.Equal(t, Result{}, r)
		})
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	t.Parallel()

	log := scenarioLog()
	th := scenarioThresholds()
	want, err := Evaluate(log, th)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Evaluate(log, th)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
	assert.Equal(t, scenarioLog(), log)
}
