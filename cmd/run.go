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
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/macrofitas/internal/ioinput"
	"github.com/gnames/macrofitas/internal/iojournal"
	"github.com/gnames/macrofitas/internal/iopipeline"
	"github.com/gnames/macrofitas/internal/iosources"
	"github.com/gnames/macrofitas/pkg/config"
	"github.com/gnames/macrofitas/pkg/parserpool"
	"github.com/gnames/macrofitas/pkg/pipeline"
	"github.com/spf13/cobra"
)

// getRunCmd returns the run command.
func getRunCmd() *cobra.Command {
	var (
		outputDir  string
		sourceIDs  []string
		force      bool
		noProgress bool
		skipHeader bool
	)

	runCmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Cross-reference names from a spreadsheet or text file",
		Long: `Read plant names and cross-reference them with all data sources.

Names are taken from the first column of the first sheet of an .xlsx
file, or one name per line from a .txt or .csv file. Duplicates are
processed once.

The command:
  1. Resolves every name in Flora do Brasil and The Plant List
  2. Writes the comparison of both sources to Planilha 1.xlsx
  3. Sends accepted names to GBIF and speciesLink
  4. Writes detailed records of accepted names to Planilha 2.xlsx
  5. Writes occurrences to Planilha 3.xlsx

Names that were not found go to "Não encontrados" sheets. Interrupting
the command (Ctrl-C) saves partial reports.

Examples:
  # Process all names, reports go next to the input file
  macrofitas run especies.xlsx

  # Ignore cached results
  macrofitas run especies.xlsx --force

  # Taxonomic comparison only
  macrofitas run especies.txt -s flora,plant -o reports`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var runOpts []config.Option
			if cmd.Flags().Changed("output") {
				runOpts = append(runOpts, config.OptOutputDir(outputDir))
			}
			if cmd.Flags().Changed("sources") {
				runOpts = append(runOpts, config.OptRunSourceIDs(sourceIDs))
			}
			if cmd.Flags().Changed("no-progress") {
				runOpts = append(runOpts, config.OptNoProgress(noProgress))
			}
			runOpts = append(runOpts,
				config.OptRunForceRefresh(force),
				config.OptRunSkipHeader(skipHeader),
			)
			cfg.Update(runOpts)

			err := runPipeline(args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	runCmd.Flags().StringVarP(
		&outputDir, "output", "o", "",
		"directory for reports (default: directory of the input file)",
	)
	addSourcesFlag(runCmd, &sourceIDs)
	runCmd.Flags().BoolVarP(
		&force, "force", "f", false,
		"ignore cached results and fetch every name again",
	)
	runCmd.Flags().BoolVar(
		&noProgress, "no-progress", false,
		"do not show progress bars",
	)
	runCmd.Flags().BoolVar(
		&skipHeader, "skip-header", false,
		"skip the first row of the input file",
	)

	return runCmd
}

func runPipeline(path string) error {
	names, err := ioinput.Read(path, cfg.Run.SkipHeader)
	if err != nil {
		return err
	}
	gn.Info("Read <em>%d</em> unique names from %s", len(names), path)

	if cfg.OutputDir == "" {
		if abs, err := filepath.Abs(path); err == nil {
			cfg.Update([]config.Option{
				config.OptOutputDir(filepath.Dir(abs)),
			})
		}
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	p, closeFn, err := newPipeline(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	sum, err := p.Run(ctx, names)
	if sum != nil {
		printSummary(sum)
	}
	return err
}

// newPipeline wires data-source clients, the journal and the parser
// pool into a pipeline. The returned function releases them.
func newPipeline(ctx context.Context) (pipeline.Pipeline, func(), error) {
	sc, err := iosources.New(cfg).Load()
	if err != nil {
		return nil, nil, err
	}
	for _, w := range sc.Warnings {
		gn.Warn("<warn>%s</warn>", w.Message)
	}

	j, err := iojournal.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	parser := parserpool.NewPool(0)
	clients := iopipeline.NewClients(cfg, sc, parser)
	p := iopipeline.New(cfg, clients, j)

	closeFn := func() {
		parser.Close()
		if err := j.Close(); err != nil {
			gn.Warn("Cannot close fetch journal: %s", err.Error())
		}
	}
	return p, closeFn, nil
}

func printSummary(sum *pipeline.Summary) {
	if sum.Cancelled {
		gn.Warn("<warn>Run was interrupted, reports are partial</warn>")
	}
	gn.Message("%s", sum.String())
}
