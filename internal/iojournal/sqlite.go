package iojournal

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/gnames/macrofitas/pkg/journal"
	"github.com/gnames/macrofitas/pkg/schema"
	_ "modernc.org/sqlite"
)

type sqliteJournal struct {
	path string
	mu   sync.Mutex
	db   *sql.DB
}

// NewSQLite opens (and creates if needed) a journal file.
func NewSQLite(ctx context.Context, path string) (journal.Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, JournalOpenError(path, err)
	}
	// one writer at a time avoids SQLITE_BUSY under concurrent workers
	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, JournalOpenError(path, err)
	}

	if _, err = db.ExecContext(ctx, schema.SQLiteDDL); err != nil {
		db.Close()
		return nil, JournalMigrateError(path, err)
	}

	return &sqliteJournal{path: path, db: db}, nil
}

func (s *sqliteJournal) Add(ctx context.Context, e journal.Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	q := `INSERT INTO fetch_entries
	(run_id, source, query, status, records, error, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, q,
		e.RunID, e.Source, e.Query, e.Status, e.Records, e.Error,
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return JournalWriteError(e.Source, e.Query, err)
	}
	return nil
}

func (s *sqliteJournal) Latest(
	ctx context.Context,
	runID string,
	limit int,
) ([]journal.Entry, error) {
	q := `SELECT run_id, source, query, status, records, error, created_at
	FROM fetch_entries`
	var args []any
	if runID != "" {
		q += " WHERE run_id = ?"
		args = append(args, runID)
	}
	q += " ORDER BY id DESC"
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, JournalQueryError(err)
	}
	defer rows.Close()

	var res []journal.Entry
	for rows.Next() {
		var e journal.Entry
		var created string
		err = rows.Scan(
			&e.RunID, &e.Source, &e.Query, &e.Status,
			&e.Records, &e.Error, &created,
		)
		if err != nil {
			return nil, JournalQueryError(err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, JournalQueryError(err)
		}
		res = append(res, e)
	}
	if err = rows.Err(); err != nil {
		return nil, JournalQueryError(err)
	}
	return res, nil
}

func (s *sqliteJournal) LastRun(ctx context.Context) (string, error) {
	var runID string
	err := s.db.QueryRowContext(ctx,
		"SELECT run_id FROM fetch_entries ORDER BY id DESC LIMIT 1",
	).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", JournalQueryError(err)
	}
	return runID, nil
}

func (s *sqliteJournal) Close() error {
	return s.db.Close()
}
