package iojournal

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/macrofitas/pkg/errcode"
)

func JournalOpenError(location string, err error) error {
	msg := "Cannot open fetch journal at <em>%s</em>"
	vars := []any{location}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.JournalOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open journal %s: %w", fn, location, err),
	}
}

func JournalMigrateError(location string, err error) error {
	msg := "Cannot create fetch journal table at <em>%s</em>"
	vars := []any{location}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.JournalMigrateError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot migrate journal %s: %w",
			fn, location, err),
	}
}

func JournalWriteError(src, query string, err error) error {
	msg := "Cannot record <em>%s</em> outcome for '%s'"
	vars := []any{src, query}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.JournalWriteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write %s journal entry for %q: %w",
			fn, src, query, err),
	}
}

func JournalQueryError(err error) error {
	msg := "Cannot read fetch journal"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.JournalQueryError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot query journal: %w", fn, err),
	}
}
