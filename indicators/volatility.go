package indicators

import (
	"github.com/rustyeddy/liquidity/fills"
)

// DefaultVolatilityWindow is the number of fills the volatility window spans.
const DefaultVolatilityWindow = 10

// Volatility is the rolling price dispersion of a fill log.
//
// Latest is 0 both in a flat market and when there is not enough history;
// HasEnoughData tells the two apart.
type Volatility struct {
	Window        int
	Series        []Reading
	Latest        float64
	HasEnoughData bool
}

// PriceVolatility computes the rolling sample standard deviation of fill
// prices over the log in chronological order.
func PriceVolatility(log fills.Log, window int) (Volatility, error) {
	series, err := RollingStdDev(log.Chronological().Prices(), window)
	if err != nil {
		return Volatility{}, err
	}

	v := Volatility{Window: window, Series: series}
	if len(series) < 2 {
		return v, nil
	}
	if last := series[len(series)-1]; last.Ok {
		v.Latest = last.Value
		v.HasEnoughData = true
	}
	return v, nil
}
