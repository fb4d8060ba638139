// Package iopipeline runs the cross-referencing pipeline. Every source
// has a worker goroutine fed by its own queue. Taxonomic results are
// joined per name and passed to the comparison report, which sends
// accepted names to the occurrence sources and the detail report.
// Occurrence results go to the occurrence report.
package iopipeline

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnfmt"
	"github.com/gnames/macrofitas/internal/iocache"
	"github.com/gnames/macrofitas/internal/iofs"
	"github.com/gnames/macrofitas/internal/ioreport"
	"github.com/gnames/macrofitas/pkg/config"
	"github.com/gnames/macrofitas/pkg/journal"
	"github.com/gnames/macrofitas/pkg/pipeline"
	"github.com/gnames/macrofitas/pkg/source"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type iopipeline struct {
	cfg      *config.Config
	clients  Clients
	journal  journal.Journal
	cacheDir string
}

// New creates a pipeline. Journal can be nil.
func New(
	cfg *config.Config,
	clients Clients,
	j journal.Journal,
) pipeline.Pipeline {
	return &iopipeline{
		cfg:      cfg,
		clients:  clients,
		journal:  j,
		cacheDir: config.CacheDir(cfg.HomeDir),
	}
}

// Sources returns sources that have a client and are selected for the
// run, in pipeline order.
func (p *iopipeline) Sources() []source.ID {
	var res []source.ID
	for _, id := range source.All() {
		if !p.clients.has(id) {
			continue
		}
		if len(p.cfg.Run.SourceIDs) > 0 &&
			!slices.Contains(p.cfg.Run.SourceIDs, id.String()) {
			continue
		}
		res = append(res, id)
	}
	return res
}

func (p *iopipeline) Lookup(
	ctx context.Context,
	id source.ID,
	name string,
) (source.Result, error) {
	if !p.clients.has(id) {
		return source.Result{}, PipelineNoSourcesError([]string{id.String()})
	}
	r := p.resolver(id, uuid.NewString())
	return r.resolve(ctx, strings.TrimSpace(name), false), nil
}

func (p *iopipeline) resolver(id source.ID, runID string) *resolver {
	cache := iocache.New(p.cacheDir, id)
	force := p.cfg.Run.ForceRefresh
	if t, ok := p.clients.Taxonomy[id]; ok {
		return newResolver(id, cache, t.ResolveTaxonomy, t.FetchDetail,
			force, p.journal, runID)
	}
	o := p.clients.Occurrence[id]
	return newResolver(id, cache, o.FetchOccurrences, nil,
		force, p.journal, runID)
}

func (p *iopipeline) Run(
	ctx context.Context,
	names []string,
) (*pipeline.Summary, error) {
	start := time.Now()

	ids := p.Sources()
	if len(ids) == 0 {
		return nil, PipelineNoSourcesError(p.cfg.Run.SourceIDs)
	}
	names = uniqueNames(names)
	if len(names) == 0 {
		return nil, PipelineNoNamesError()
	}
	outDir := p.cfg.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := iofs.EnsureDir(outDir); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	res := &pipeline.Summary{RunID: runID, Names: len(names)}

	var taxa, occs []*stage
	var taxaIDs []source.ID
	fnd := make(finder)
	for _, id := range ids {
		s := &stage{
			id:  id,
			in:  make(chan string, len(names)),
			res: p.resolver(id, runID),
		}
		fnd[id] = s.res
		if id.Kind() == source.KindTaxonomic {
			taxa = append(taxa, s)
			taxaIDs = append(taxaIDs, id)
		} else {
			occs = append(occs, s)
		}
	}

	slog.Info("Starting run",
		"run_id", runID,
		"names", len(names),
		"sources", ids,
		"force_refresh", p.cfg.Run.ForceRefresh,
	)

	// builders are created before any goroutine starts, so a failure
	// leaves nothing running
	var r1 *ioreport.Comparison
	var r2 *ioreport.Detail
	var r3 *ioreport.Occurrence
	var r2In chan string
	var err error
	if len(occs) > 0 {
		if r3, err = ioreport.NewOccurrence(outDir, fnd); err != nil {
			return nil, err
		}
	}
	if len(taxa) > 0 {
		r2In = make(chan string, len(names))
		next := make([]chan<- string, 0, len(occs)+1)
		for _, s := range occs {
			next = append(next, s.in)
		}
		next = append(next, r2In)
		if r1, err = ioreport.NewComparison(outDir, fnd, taxaIDs, next...); err != nil {
			return nil, err
		}
		if r2, err = ioreport.NewDetail(outDir, fnd, taxaIDs); err != nil {
			return nil, err
		}
	}

	stop := p.startBars(len(names), taxa, occs)

	paths := make(chan string, 3)
	g, gctx := errgroup.WithContext(ctx)

	if len(taxa) > 0 {
		queues := make([]chan string, len(taxa))
		for i, s := range taxa {
			queues[i] = s.in
		}
		g.Go(func() error { return seed(gctx, names, queues) })

		taxDone := make(chan source.Done)
		startStages(gctx, g, taxa, taxDone)

		r1In := make(chan string)
		g.Go(func() error { return join(gctx, taxDone, taxaIDs, r1In) })
		g.Go(func() error { return r1.Run(gctx, r1In, paths) })
		g.Go(func() error { return r2.Run(gctx, r2In, paths) })
	} else {
		queues := make([]chan string, len(occs))
		for i, s := range occs {
			queues[i] = s.in
		}
		g.Go(func() error { return seed(gctx, names, queues) })
	}

	if len(occs) > 0 {
		occDone := make(chan source.Done)
		startStages(gctx, g, occs, occDone)
		g.Go(func() error { return r3.Run(gctx, occDone, paths) })
	}

	err = g.Wait()
	stop()
	close(paths)
	for path := range paths {
		res.Reports = append(res.Reports, path)
	}
	slices.Sort(res.Reports)

	if r1 != nil {
		res.Accepted = len(r1.Accepted())
		res.Equal, res.Different = r1.Verdicts()
	}
	for _, s := range append(taxa, occs...) {
		res.Sources = append(res.Sources, s.res.stats())
	}
	res.Cancelled = ctx.Err() != nil
	res.Duration = time.Since(start)

	slog.Info("Run is over",
		"run_id", runID,
		"cancelled", res.Cancelled,
		"accepted", res.Accepted,
		"equal", res.Equal,
		"different", res.Different,
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	return res, err
}

// startStages starts workers of stages. The done channel is closed when
// all of them exit.
func startStages(
	ctx context.Context,
	g *errgroup.Group,
	stages []*stage,
	done chan source.Done,
) {
	var wg sync.WaitGroup
	for _, s := range stages {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return s.work(ctx, done)
		})
	}
	g.Go(func() error {
		wg.Wait()
		close(done)
		return nil
	})
}

// startBars shows a progress bar per source and returns a function that
// stops them.
func (p *iopipeline) startBars(total int, taxa, occs []*stage) func() {
	if p.cfg.NoProgress {
		return func() {}
	}

	var bars []*pb.ProgressBar
	for _, s := range taxa {
		s.bar = pb.Full.New(total)
		bars = append(bars, s.bar)
	}
	for _, s := range occs {
		s.bar = pb.Full.New(0)
		s.grow = true
		bars = append(bars, s.bar)
	}
	for _, s := range append(taxa, occs...) {
		s.bar.Set("prefix", fmt.Sprintf("%-13s", s.id.Title()))
	}

	pool, err := pb.StartPool(bars...)
	if err != nil {
		slog.Warn("Cannot show progress bars", "error", err)
		for _, s := range append(taxa, occs...) {
			s.bar = nil
		}
		return func() {}
	}
	return func() {
		if err := pool.Stop(); err != nil {
			slog.Debug("Cannot stop progress bars", "error", err)
		}
	}
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	res := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		res = append(res, n)
	}
	return res
}
