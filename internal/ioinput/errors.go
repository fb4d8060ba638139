package ioinput

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/macrofitas/pkg/errcode"
)

func InputOpenError(path string, err error) error {
	msg := "Cannot read names from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InputOpenError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read input %s: %w",
			fn, path, err),
	}
}

func InputEmptyError(path string) error {
	msg := "No names found in <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InputEmptyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: input %s has no names", fn, path),
	}
}

func InputFormatError(path string) error {
	msg := `Unsupported input file <em>%s</em>

Use an .xlsx spreadsheet with names in the first column,
or a .txt/.csv file with one name per line.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InputFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unsupported input format %s", fn, path),
	}
}
