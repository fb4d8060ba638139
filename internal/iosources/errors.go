package iosources

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/macrofitas/pkg/errcode"
)

// SourcesConfigError creates an error for when sources.yaml
// cannot be loaded.
func SourcesConfigError(path string, err error) error {
	msg := `Cannot load sources configuration

<em>Configuration file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Unknown data source id or invalid endpoint URL

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Remove the file, a default one is created on the next run`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.SourcesConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load sources config: %w", err),
	}
}
