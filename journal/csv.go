package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"time"
)

var CSVHeader = []string{
	"id", "time", "trades", "sell_total", "buy_notional", "sell_progress", "buy_progress",
	"volatility", "volatility_ok", "net_pnl", "action", "size", "reason", "alerts",
}

// CSV appends cycles to a file, writing the header only when the file is
// new or empty.
type CSV struct {
	w *csv.Writer
	f *os.File
}

func NewCSV(path string) (*CSV, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(CSVHeader); err != nil {
			f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &CSV{w: w, f: f}, nil
}

func (j *CSV) RecordCycle(c Cycle) error {
	codes := make([]string, len(c.Alerts))
	for i, a := range c.Alerts {
		codes[i] = a.Code
	}

	err := j.w.Write([]string{
		c.ID,
		c.Time.UTC().Format(time.RFC3339Nano),
		strconv.Itoa(c.Trades),
		f(c.SellTotal),
		f(c.BuyNotional),
		f(c.SellProgress),
		f(c.BuyProgress),
		f(c.Volatility),
		strconv.FormatBool(c.VolatilityOK),
		f(c.NetPnL),
		c.Action,
		f(c.Size),
		c.Reason,
		strings.Join(codes, ";"),
	})
	if err != nil {
		return err
	}

	j.w.Flush()
	return j.w.Error()
}

func (j *CSV) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		j.f.Close()
		return err
	}
	return j.f.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
