// Package iojournal implements the fetch journal. Outcomes go to a local
// SQLite file, to PostgreSQL, or nowhere, depending on the configured
// driver.
package iojournal

import (
	"context"
	"log/slog"

	"github.com/gnames/macrofitas/internal/iofs"
	"github.com/gnames/macrofitas/pkg/config"
	"github.com/gnames/macrofitas/pkg/journal"
)

// Journal drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverNone     = "none"
)

// New opens the journal selected by cfg.Journal.Driver.
func New(ctx context.Context, cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Driver {
	case DriverNone:
		slog.Debug("Fetch journal is disabled")
		return NewNone(), nil
	case DriverPostgres:
		return NewPostgres(ctx, cfg.Journal.Database)
	default:
		if err := iofs.EnsureDir(config.DataDir(cfg.HomeDir)); err != nil {
			return nil, err
		}
		return NewSQLite(ctx, config.JournalFilePath(cfg.HomeDir))
	}
}

type none struct{}

// NewNone returns a journal that keeps nothing.
func NewNone() journal.Journal {
	return none{}
}

func (none) Add(context.Context, journal.Entry) error { return nil }

func (none) Latest(context.Context, string, int) ([]journal.Entry, error) {
	return nil, nil
}

func (none) LastRun(context.Context) (string, error) { return "", nil }

func (none) Close() error { return nil }
