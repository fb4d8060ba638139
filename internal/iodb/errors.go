package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/macrofitas/pkg/config"
	"github.com/gnames/macrofitas/pkg/errcode"
)

func ConnectionError(cfg config.DatabaseConfig, err error) error {
	msg := `Cannot connect to PostgreSQL database <em>%s</em> at %s:%d

Check that PostgreSQL is running and the journal settings in config.yaml
(or MACROFITAS_JOURNAL_DATABASE_* variables) are correct.`
	vars := []any{cfg.Database, cfg.Host, cfg.Port}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.JournalOpenError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot connect to %s@%s:%d/%s: %w",
			fn, cfg.User, cfg.Host, cfg.Port, cfg.Database, err),
	}
}

func TableCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.JournalQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot check table %s: %w", fn, table, err),
	}
}
