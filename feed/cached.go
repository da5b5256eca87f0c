package feed

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rustyeddy/liquidity/fills"
)

// Cached serves a normalized fill log that is never older than Refresh.
// Within the interval every caller gets the same log without touching the
// source. A Refresh of zero reloads on every call.
type Cached struct {
	src     Source
	refresh time.Duration

	// Now is the clock; tests replace it.
	Now func() time.Time

	mu       sync.Mutex
	log      fills.Log
	stats    fills.Stats
	loadedAt time.Time
	loaded   bool
}

func NewCached(src Source, refresh time.Duration) *Cached {
	return &Cached{
		src:     src,
		refresh: refresh,
		Now:     time.Now,
	}
}

// Trades returns the cached log, reloading it first when it is stale. A
// failed reload returns the error and leaves the previous log in place for
// the next attempt. The returned log is shared and must not be modified.
func (c *Cached) Trades(ctx context.Context) (fills.Log, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.Now()
	if c.loaded && c.refresh > 0 && now.Sub(c.loadedAt) < c.refresh {
		return c.log, nil
	}

	rows, err := c.src.Load(ctx)
	if err != nil {
		return nil, err
	}
	l, st := fills.Normalize(rows)

	ev := log.Debug()
	if st.Dropped() > 0 {
		ev = log.Warn()
	}
	ev.Int("seen", st.Seen).
		Int("kept", st.Kept).
		Int("bad_time", st.BadTime).
		Int("bad_side", st.BadSide).
		Int("bad_price", st.BadPrice).
		Int("bad_amount", st.BadAmount).
		Int("no_order_id", st.NoOrderID).
		Msg("trade log reloaded")

	c.log, c.stats, c.loadedAt, c.loaded = l, st, now, true
	return l, nil
}

// Stats reports what the last reload kept and dropped.
func (c *Cached) Stats() fills.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Invalidate forces the next Trades call to reload.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
}
