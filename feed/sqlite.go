package feed

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/liquidity/fills"
)

var tableRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads fills from a table the bot writes into. The database
// is opened read-only; this package never writes fills.
type SQLiteSource struct {
	Path  string
	Table string
}

func NewSQLiteSource(path, table string) (*SQLiteSource, error) {
	if !tableRE.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &SQLiteSource{Path: path, Table: table}, nil
}

func (s *SQLiteSource) dsn() string {
	return "file:" + s.Path + "?mode=ro"
}

// Load reads every row in insertion order. Columns come back as text so a
// bad value reaches the normalizer as-is instead of failing the scan.
func (s *SQLiteSource) Load(ctx context.Context) ([]fills.RawRow, error) {
	db, err := sql.Open("sqlite3", s.dsn())
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`
		SELECT timestamp, side, price, amount, order_id
		FROM %s
		ORDER BY rowid ASC`, s.Table))
	if err != nil {
		return nil, fmt.Errorf("query fills: %w", err)
	}
	defer rows.Close()

	var out []fills.RawRow
	for rows.Next() {
		var ts, side, price, amount, orderID sql.NullString
		if err := rows.Scan(&ts, &side, &price, &amount, &orderID); err != nil {
			return nil, fmt.Errorf("scan fill: %w", err)
		}
		out = append(out, fills.RawRow{
			Timestamp: ts.String,
			Side:      side.String,
			Price:     price.String,
			Amount:    amount.String,
			OrderID:   orderID.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
