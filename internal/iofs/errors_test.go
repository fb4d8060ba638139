package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/macrofitas/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		path string
		text string
	}{
		{"create", CreateDirError("/cache/gbif", cause),
			errcode.CreateDirError, "/cache/gbif", "cannot create directory"},
		{"copy", CopyFileError("/cfg/sources.yaml", cause),
			errcode.CopyFileError, "/cfg/sources.yaml", "cannot copy file"},
		{"read", ReadFileError("/cfg/config.yaml", cause),
			errcode.ReadFileError, "/cfg/config.yaml", "cannot read /cfg/config.yaml"},
		{"remove", RemoveDirError("/cache/flora", cause),
			errcode.RemoveDirError, "/cache/flora", "cannot remove directory"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			var gnErr *gn.Error
			require.ErrorAs(t, tt.err, &gnErr)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.Equal(t, []any{tt.path}, gnErr.Vars)
			assert.Contains(t, gnErr.Msg, "%s")
			assert.ErrorIs(t, gnErr.Err, cause)
			assert.Contains(t, gnErr.Err.Error(), tt.text)
			assert.Contains(t, gnErr.Err.Error(), "from ")
		})
	}
}
