package iojournal

import (
	"context"
	"errors"
	"time"

	"github.com/gnames/macrofitas/internal/iodb"
	"github.com/gnames/macrofitas/pkg/config"
	"github.com/gnames/macrofitas/pkg/journal"
	"github.com/gnames/macrofitas/pkg/schema"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type pgJournal struct {
	pool *pgxpool.Pool
	db   *gorm.DB
}

// NewPostgres connects to PostgreSQL and migrates the journal table.
func NewPostgres(
	ctx context.Context,
	cfg config.DatabaseConfig,
) (journal.Journal, error) {
	pool, err := iodb.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		pool.Close()
		return nil, JournalOpenError(cfg.Database, err)
	}

	if err = schema.Migrate(db.WithContext(ctx)); err != nil {
		pool.Close()
		return nil, JournalMigrateError(cfg.Database, err)
	}

	return &pgJournal{pool: pool, db: db}, nil
}

func (p *pgJournal) Add(ctx context.Context, e journal.Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	m := schema.FromEntry(e)
	if err := p.db.WithContext(ctx).Create(&m).Error; err != nil {
		return JournalWriteError(e.Source, e.Query, err)
	}
	return nil
}

func (p *pgJournal) Latest(
	ctx context.Context,
	runID string,
	limit int,
) ([]journal.Entry, error) {
	q := p.db.WithContext(ctx).Order("id DESC")
	if runID != "" {
		q = q.Where("run_id = ?", runID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var ms []schema.FetchEntry
	if err := q.Find(&ms).Error; err != nil {
		return nil, JournalQueryError(err)
	}

	res := make([]journal.Entry, len(ms))
	for i := range ms {
		res[i] = ms[i].Entry()
	}
	return res, nil
}

func (p *pgJournal) LastRun(ctx context.Context) (string, error) {
	var m schema.FetchEntry
	err := p.db.WithContext(ctx).Order("id DESC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", JournalQueryError(err)
	}
	return m.RunID, nil
}

func (p *pgJournal) Close() error {
	p.pool.Close()
	return nil
}
