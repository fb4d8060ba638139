// Package schema provides database models of the fetch journal.
package schema

import (
	"time"

	"github.com/gnames/macrofitas/pkg/journal"
)

// FetchEntry stores one lookup outcome.
type FetchEntry struct {
	ID uint `gorm:"primaryKey"`

	// RunID groups entries of one pipeline run (UUID v4).
	RunID string `gorm:"type:varchar(36);index"`

	// Source is the short id of the data source.
	Source string `gorm:"type:varchar(16);index:idx_source_query"`

	// Query is the name that was looked up.
	Query string `gorm:"type:text;index:idx_source_query"`

	// Status is one of ok, not_found, transport_error, parse_error.
	Status string `gorm:"type:varchar(32)"`

	// Records is the number of records received.
	Records int

	// Error keeps the failure message, if any.
	Error string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"index"`
}

// TableName returns the table name of fetch entries.
func (FetchEntry) TableName() string {
	return "fetch_entries"
}

// FromEntry converts a journal entry into a model.
func FromEntry(e journal.Entry) FetchEntry {
	return FetchEntry{
		RunID:     e.RunID,
		Source:    e.Source,
		Query:     e.Query,
		Status:    e.Status,
		Records:   e.Records,
		Error:     e.Error,
		CreatedAt: e.CreatedAt,
	}
}

// Entry converts a model into a journal entry.
func (f FetchEntry) Entry() journal.Entry {
	return journal.Entry{
		RunID:     f.RunID,
		Source:    f.Source,
		Query:     f.Query,
		Status:    f.Status,
		Records:   f.Records,
		Error:     f.Error,
		CreatedAt: f.CreatedAt,
	}
}

// SQLiteDDL creates the journal table in SQLite. It mirrors FetchEntry,
// time is kept as RFC 3339 text.
const SQLiteDDL = `
CREATE TABLE IF NOT EXISTS fetch_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	source TEXT NOT NULL,
	query TEXT NOT NULL,
	status TEXT NOT NULL,
	records INTEGER NOT NULL DEFAULT 0,
	error TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_fetch_entries_run_id ON fetch_entries (run_id);
CREATE INDEX IF NOT EXISTS idx_source_query ON fetch_entries (source, query);
`
