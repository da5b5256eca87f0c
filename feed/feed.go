// Package feed loads the bot's fill log from where the bot leaves it and
// caches the normalized log for a bounded interval.
package feed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/rustyeddy/liquidity/config"
	"github.com/rustyeddy/liquidity/fills"
)

// Source yields raw fill rows. Zero rows with a nil error means the bot has
// not traded yet; an error means the log could not be read at all.
type Source interface {
	Load(ctx context.Context) ([]fills.RawRow, error)
}

// CSVSource reads the CSV log the bot appends to.
type CSVSource struct {
	Path string
}

func (s CSVSource) Load(ctx context.Context) ([]fills.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", s.Path).Msg("trade log not found, run the bot first")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open trade log: %w", err)
	}
	defer f.Close()

	rows, err := fills.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read trade log %s: %w", s.Path, err)
	}
	return rows, nil
}

// New builds the source the feed config names.
func New(cfg config.FeedConfig) (Source, error) {
	switch cfg.Type {
	case "csv":
		return CSVSource{Path: cfg.Path}, nil
	case "sqlite":
		return NewSQLiteSource(cfg.Path, cfg.Table)
	}
	return nil, fmt.Errorf("unknown feed type %q", cfg.Type)
}
