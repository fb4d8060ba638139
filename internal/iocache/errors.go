package iocache

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/macrofitas/pkg/errcode"
	"github.com/gnames/macrofitas/pkg/source"
)

func CacheReadError(id source.ID, query string, err error) error {
	msg := "Cannot read cached <em>%s</em> records for '%s'"
	vars := []any{id.Title(), query}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read %s cache for %q: %w",
			fn, id, query, err),
	}
}

func CacheWriteError(id source.ID, query string, err error) error {
	msg := "Cannot save <em>%s</em> records for '%s'"
	vars := []any{id.Title(), query}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheWriteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write %s cache for %q: %w",
			fn, id, query, err),
	}
}
