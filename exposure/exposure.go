// Package exposure sums fills into per side exposure and time buckets.
//
// SELL progress is tracked in base currency (amount) while BUY progress is
// tracked in quote currency (amount x price), matching the two fulfillment
// targets the bot works against.
package exposure

import (
	"sort"
	"time"

	"github.com/rustyeddy/liquidity/fills"
)

// Snapshot is recomputed from the full log on every evaluation.
type Snapshot struct {
	SellTotal   float64 // sum of SELL amounts
	BuyTotal    float64 // sum of BUY amounts
	BuyNotional float64 // sum of BUY amount*price
}

func Aggregate(log fills.Log) Snapshot {
	var s Snapshot
	for _, t := range log {
		switch t.Side {
		case fills.Sell:
			s.SellTotal += t.Amount
		case fills.Buy:
			s.BuyTotal += t.Amount
			s.BuyNotional += t.Notional()
		}
	}
	return s
}

// Totals holds the traded amount per side. A side with no fills is 0.
type Totals struct {
	Sell float64
	Buy  float64
}

func (t *Totals) add(tr fills.Trade) {
	switch tr.Side {
	case fills.Sell:
		t.Sell += tr.Amount
	case fills.Buy:
		t.Buy += tr.Amount
	}
}

// Bucket is the traded amount per side for the interval starting at Start.
type Bucket struct {
	Start time.Time
	Totals
}

// Buckets is the time breakdown of a log. ByDay and ByWidth list only
// intervals that saw at least one fill, oldest first. ByHour is indexed by
// UTC hour of day and always has all 24 entries.
type Buckets struct {
	Width   time.Duration
	ByDay   []Bucket
	ByHour  [24]Totals
	ByWidth []Bucket
}

// DefaultWidth is used when Breakdown gets a non-positive width.
const DefaultWidth = time.Hour

// Breakdown groups traded amounts by calendar day, by hour of day and by
// fixed width buckets, each split per side.
func Breakdown(log fills.Log, width time.Duration) Buckets {
	if width <= 0 {
		width = DefaultWidth
	}
	b := Buckets{Width: width}

	days := map[time.Time]*Totals{}
	spans := map[time.Time]*Totals{}

	for _, tr := range log {
		ts := tr.Time.UTC()

		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		bucketOf(days, day).add(tr)
		bucketOf(spans, ts.Truncate(width)).add(tr)
		b.ByHour[ts.Hour()].add(tr)
	}

	b.ByDay = sorted(days)
	b.ByWidth = sorted(spans)
	return b
}

func bucketOf(m map[time.Time]*Totals, k time.Time) *Totals {
	t, ok := m[k]
	if !ok {
		t = &Totals{}
		m[k] = t
	}
	return t
}

func sorted(m map[time.Time]*Totals) []Bucket {
	out := make([]Bucket, 0, len(m))
	for k, v := range m {
		out = append(out, Bucket{Start: k, Totals: *v})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// Summary carries the headline numbers of the fill log.
type Summary struct {
	Trades    int
	SellCount int
	BuyCount  int
	Volume    float64 // sum of amount over both sides
	AvgPrice  float64 // 0 when HasTrades is false
	HasTrades bool
}

func Summarize(log fills.Log) Summary {
	s := Summary{Trades: len(log)}
	var priceSum float64
	for _, t := range log {
		s.Volume += t.Amount
		priceSum += t.Price
		switch t.Side {
		case fills.Sell:
			s.SellCount++
		case fills.Buy:
			s.BuyCount++
		}
	}
	if s.Trades > 0 {
		s.HasTrades = true
		s.AvgPrice = priceSum / float64(s.Trades)
	}
	return s
}
