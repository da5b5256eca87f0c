// Package indicators provides windowed statistics over fill prices.
package indicators

// Indicator computes a single streaming value from a series of prices.
// It is deterministic and holds no state beyond what Update has fed it.
type Indicator interface {
	// Name returns a stable identifier like "STDDEV(10)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next value of the series.
	Update(v float64)

	// Ready reports whether Value() is meaningful (warmup completed).
	Ready() bool
}

type ValueF64 interface {
	// Value returns the current indicator value. If !Ready(), it returns 0;
	// callers should always check Ready().
	Value() float64
}

// Reading is one point of a rolling series. Ok is false while the window
// is still filling; Value is then 0 and must not be read as a measurement.
type Reading struct {
	Value float64
	Ok    bool
}
