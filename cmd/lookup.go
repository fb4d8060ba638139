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
	"context"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/macrofitas/pkg/config"
	"github.com/gnames/macrofitas/pkg/record"
	"github.com/gnames/macrofitas/pkg/source"
	"github.com/spf13/cobra"
)

// lookupOutput is the JSON form of one lookup.
type lookupOutput struct {
	Source    string          `json:"source"`
	Query     string          `json:"query"`
	Status    string          `json:"status"`
	Error     string          `json:"error,omitempty"`
	Retryable bool            `json:"retryable,omitempty"`
	Records   []record.Record `json:"records,omitempty"`
}

// newLookupOutput converts a lookup result. Retryable marks transport
// failures that could succeed later.
func newLookupOutput(r source.Result) lookupOutput {
	res := lookupOutput{
		Source:    r.Source.String(),
		Query:     r.Query,
		Status:    r.Status.String(),
		Retryable: r.Retryable(),
		Records:   r.Records,
	}
	if r.Err != nil {
		res.Error = r.Err.Error()
	}
	return res
}

// getLookupCmd returns the lookup command.
func getLookupCmd() *cobra.Command {
	var (
		sourceIDs []string
		force     bool
		compact   bool
	)

	lookupCmd := &cobra.Command{
		Use:   "lookup NAME",
		Short: "Look up one name and print the records as JSON",
		Long: `Look up one scientific name in data sources and print normalized
records as JSON. Cached results are used unless --force is given, fresh
results are cached.

Examples:
  macrofitas lookup "Hebanthe paniculata Mart."
  macrofitas lookup "Hebanthe eriantha" -s gbif --compact`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update([]config.Option{
				config.OptRunForceRefresh(force),
				config.OptNoProgress(true),
			})
			err := runLookup(cmd, args[0], parseSources(sourceIDs), !compact)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addSourcesFlag(lookupCmd, &sourceIDs)
	lookupCmd.Flags().BoolVarP(
		&force, "force", "f", false,
		"ignore cached results",
	)
	lookupCmd.Flags().BoolVar(
		&compact, "compact", false,
		"print JSON without indentation",
	)

	return lookupCmd
}

func runLookup(
	cmd *cobra.Command,
	name string,
	ids []source.ID,
	pretty bool,
) error {
	ctx := context.Background()
	p, closeFn, err := newPipeline(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	if len(ids) == 0 {
		ids = p.Sources()
	}

	res := make([]lookupOutput, 0, len(ids))
	for _, id := range ids {
		r, err := p.Lookup(ctx, id, name)
		if err != nil {
			return err
		}
		res = append(res, newLookupOutput(r))
	}

	enc := gnfmt.GNjson{Pretty: pretty}
	bs, err := enc.Encode(res)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(bs))
	return nil
}
