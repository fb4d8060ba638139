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
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/macrofitas/internal/iojournal"
	"github.com/spf13/cobra"
)

// getJournalCmd returns the journal command.
func getJournalCmd() *cobra.Command {
	var (
		runID string
		last  bool
		limit int
	)

	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent outcomes of remote lookups",
		Long: `Every remote lookup made by a run is recorded in the fetch journal
with the run id, source, name, status and the number of records.

Examples:
  # 50 newest entries
  macrofitas journal

  # Everything from the latest run
  macrofitas journal --last -n 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runJournal(cmd, runID, last, limit)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	journalCmd.Flags().StringVarP(
		&runID, "run", "r", "",
		"show entries of this run only",
	)
	journalCmd.Flags().BoolVarP(
		&last, "last", "l", false,
		"show entries of the latest run only",
	)
	journalCmd.Flags().IntVarP(
		&limit, "number", "n", 50,
		"number of entries to show (0 = all)",
	)

	return journalCmd
}

func runJournal(cmd *cobra.Command, runID string, last bool, limit int) error {
	ctx := context.Background()
	j, err := iojournal.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer j.Close()

	if last {
		if runID, err = j.LastRun(ctx); err != nil {
			return err
		}
		if runID == "" {
			gn.Info("The fetch journal is empty")
			return nil
		}
	}

	es, err := j.Latest(ctx, runID, limit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, e := range es {
		fmt.Fprintf(w, "%s  %.8s  %-7s %-16s %6d  %s",
			e.CreatedAt.Local().Format(time.DateTime),
			e.RunID, e.Source, e.Status, e.Records, e.Query,
		)
		if e.Error != "" {
			fmt.Fprintf(w, "  (%s)", e.Error)
		}
		fmt.Fprintln(w)
	}
	return nil
}
