package fills

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// RawRow is one untyped row of the bot's fill log, as read from a CSV file
// or a database. All fields are kept as text until Normalize checks them.
type RawRow struct {
	Timestamp string
	Side      string
	Price     string
	Amount    string
	OrderID   string
}

// Stats describes what Normalize kept and why it dropped the rest. A row is
// counted once, under the first field that failed.
type Stats struct {
	Seen      int
	Kept      int
	BadTime   int
	BadSide   int
	BadPrice  int
	BadAmount int
	NoOrderID int
}

func (s Stats) Dropped() int {
	return s.Seen - s.Kept
}

// timeLayouts are tried in order. The bot writes RFC3339, older logs carry
// the space separated form pandas emits.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime parses a fill timestamp and returns it in UTC.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parsePositive rejects anything that is not a finite number above zero.
// Blank or non-numeric text is invalid, never zero.
func parsePositive(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

// Normalize validates raw rows and returns the fills that pass, in input
// order. Rows with any missing or malformed field are dropped whole. The
// input is not modified. An empty input yields an empty log.
func Normalize(rows []RawRow) (Log, Stats) {
	st := Stats{Seen: len(rows)}
	out := make(Log, 0, len(rows))

	for _, r := range rows {
		ts, ok := ParseTime(r.Timestamp)
		if !ok {
			st.BadTime++
			continue
		}
		side, ok := ParseSide(r.Side)
		if !ok {
			st.BadSide++
			continue
		}
		price, ok := parsePositive(r.Price)
		if !ok {
			st.BadPrice++
			continue
		}
		amount, ok := parsePositive(r.Amount)
		if !ok {
			st.BadAmount++
			continue
		}
		id := strings.TrimSpace(r.OrderID)
		if id == "" {
			st.NoOrderID++
			continue
		}

		out = append(out, Trade{
			Time:    ts,
			Side:    side,
			Price:   price,
			Amount:  amount,
			OrderID: id,
		})
	}

	st.Kept = len(out)
	return out, st
}

// Rows renders the log back into raw rows. Normalize(l.Rows()) returns l.
func (l Log) Rows() []RawRow {
	out := make([]RawRow, len(l))
	for i, t := range l {
		out[i] = RawRow{
			Timestamp: t.Time.UTC().Format(time.RFC3339Nano),
			Side:      string(t.Side),
			Price:     strconv.FormatFloat(t.Price, 'g', -1, 64),
			Amount:    strconv.FormatFloat(t.Amount, 'g', -1, 64),
			OrderID:   t.OrderID,
		}
	}
	return out
}
