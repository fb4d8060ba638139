/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"github.com/gnames/gn"
	"github.com/gnames/macrofitas/pkg/source"
	"github.com/spf13/cobra"
)

// addSourcesFlag adds the --sources flag to a command.
func addSourcesFlag(cmd *cobra.Command, ids *[]string) {
	cmd.Flags().StringSliceVarP(
		ids, "sources", "s", []string{},
		"data sources to use: flora, plant, gbif, splink (empty = all)",
	)
}

// parseSources converts source names given by a user. Unknown names are
// skipped with a warning.
func parseSources(ss []string) []source.ID {
	var res []source.ID
	for _, s := range ss {
		id, ok := source.Parse(s)
		if !ok {
			gn.Warn("Unknown data source <em>%s</em> is ignored", s)
			continue
		}
		res = append(res, id)
	}
	return res
}
