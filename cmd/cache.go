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
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/macrofitas/internal/iocache"
	"github.com/gnames/macrofitas/pkg/config"
	"github.com/gnames/macrofitas/pkg/source"
	"github.com/spf13/cobra"
)

// getCacheCmd returns the cache command with its subcommands.
func getCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Show or clear cached results of data sources",
		Long: `Every answer of a data source is kept in ~/.cache/macrofitas/<source>,
one file per name. Cached names are never fetched again unless the run
uses --force or the cache is cleared.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show the number of cached names per source",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCacheStats(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear [SOURCE...]",
		Short: "Remove cached results of given sources (all by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCacheClear(args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	})

	return cacheCmd
}

func runCacheStats(cmd *cobra.Command) error {
	stats, err := iocache.Stats(config.CacheDir(cfg.HomeDir), source.All()...)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-14s %10s %10s\n", "Source", "Names", "Size")
	for _, st := range stats {
		fmt.Fprintf(w, "%-14s %10s %10s\n",
			st.Source.Title(),
			humanize.Comma(int64(st.Entries)),
			humanize.Bytes(uint64(st.Bytes)),
		)
	}
	return nil
}

func runCacheClear(args []string) error {
	ids := source.All()
	if len(args) > 0 {
		ids = parseSources(args)
	}
	if len(ids) == 0 {
		return nil
	}

	if err := iocache.Clear(config.CacheDir(cfg.HomeDir), ids...); err != nil {
		return err
	}
	for _, id := range ids {
		gn.Info("Cache of <em>%s</em> is cleared", id.Title())
	}
	return nil
}
