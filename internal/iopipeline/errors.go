package iopipeline

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/macrofitas/pkg/errcode"
)

func PipelineNoSourcesError(requested []string) error {
	msg := `No data sources are enabled for this run

Check the --sources flag and the "disabled" settings in sources.yaml.`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineNoSourcesError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: no enabled sources among %v",
			fn, requested),
	}
}

func PipelineNoNamesError() error {
	msg := "There are no names to process"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineNoNamesError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: empty name list", fn),
	}
}
