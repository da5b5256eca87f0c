package indicators

import (
	"fmt"
	"math"
)

// MinWindow is the smallest window a sample standard deviation is defined on.
const MinWindow = 2

// StdDev is a streaming rolling sample standard deviation (n-1 denominator)
// over the last period values.
type StdDev struct {
	period int
	values []float64
}

// NewStdDev creates a rolling standard deviation over period values.
func NewStdDev(period int) (*StdDev, error) {
	if period < MinWindow {
		return nil, fmt.Errorf("window must be at least %d, got %d", MinWindow, period)
	}
	return &StdDev{
		period: period,
		values: make([]float64, 0, period),
	}, nil
}

func (s *StdDev) Name() string {
	return fmt.Sprintf("STDDEV(%d)", s.period)
}

func (s *StdDev) Warmup() int {
	return s.period
}

func (s *StdDev) Reset() {
	s.values = s.values[:0]
}

func (s *StdDev) Update(v float64) {
	s.values = append(s.values, v)
	// Keep only the last 'period' values
	if len(s.values) > s.period {
		s.values = s.values[1:]
	}
}

func (s *StdDev) Ready() bool {
	return len(s.values) >= s.period
}

// Value is computed in two passes over the window, which keeps small
// deviations around a large mean (FX rates) from cancelling out.
func (s *StdDev) Value() float64 {
	if !s.Ready() {
		return 0
	}

	n := float64(len(s.values))
	mean := 0.0
	for _, v := range s.values {
		mean += v
	}
	mean /= n

	ss := 0.0
	for _, v := range s.values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / (n - 1))
}

// RollingStdDev returns one reading per input value. Readings before the
// window first fills (index < window-1) are not Ok.
func RollingStdDev(values []float64, window int) ([]Reading, error) {
	sd, err := NewStdDev(window)
	if err != nil {
		return nil, err
	}

	out := make([]Reading, len(values))
	for i, v := range values {
		sd.Update(v)
		if sd.Ready() {
			out[i] = Reading{Value: sd.Value(), Ok: true}
		}
	}
	return out, nil
}
