package fills

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Columns of the bot's fill log, in the order the bot writes them.
var Columns = []string{"timestamp", "side", "price", "amount", "order_id"}

// ReadCSV decodes a fill log with a header row. Columns are located by
// header name, so order does not matter and extra columns are ignored.
// Short rows leave the missing fields blank for Normalize to reject.
//
// An empty stream is zero rows. A stream whose header lacks one of Columns
// is an error: that is a broken log, not a log with no trades.
func ReadCSV(r io.Reader) ([]RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	for _, c := range Columns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("missing column %q in header %v", c, header)
		}
	}

	field := func(rec []string, name string) string {
		i := idx[name]
		if i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var rows []RawRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, RawRow{
			Timestamp: field(rec, "timestamp"),
			Side:      field(rec, "side"),
			Price:     field(rec, "price"),
			Amount:    field(rec, "amount"),
			OrderID:   field(rec, "order_id"),
		})
	}
	return rows, nil
}
