package iopipeline

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gnames/macrofitas/pkg/journal"
	"github.com/gnames/macrofitas/pkg/pipeline"
	"github.com/gnames/macrofitas/pkg/record"
	"github.com/gnames/macrofitas/pkg/source"
)

type fetchFn func(context.Context, string) source.Result

// resolver is the only way a source is accessed during a run. It reads
// the cache first and goes to the network at most once per query. Calls
// are serialized, so a source sees one request at a time even when
// report builders look up records inline.
type resolver struct {
	id      source.ID
	cache   source.Cache
	fetch   fetchFn
	detail  fetchFn
	force   bool
	journal journal.Journal
	runID   string

	mu sync.Mutex
	// fetched keeps queries refreshed during this run
	fetched map[string]struct{}
	// missed memoizes failed lookups
	missed map[string]source.Status
	// kept holds records that could not be cached
	kept map[string][]record.Record

	processed atomic.Int64
	hits      atomic.Int64
	found     atomic.Int64
	notFound  atomic.Int64
	failed    atomic.Int64
}

func newResolver(
	id source.ID,
	cache source.Cache,
	fetch, detail fetchFn,
	force bool,
	j journal.Journal,
	runID string,
) *resolver {
	return &resolver{
		id:      id,
		cache:   cache,
		fetch:   fetch,
		detail:  detail,
		force:   force,
		journal: j,
		runID:   runID,
		fetched: make(map[string]struct{}),
		missed:  make(map[string]source.Status),
		kept:    make(map[string][]record.Record),
	}
}

// resolve returns records of a query. With detail set, a remote lookup
// asks for detailed records. Both kinds share the cache.
func (r *resolver) resolve(
	ctx context.Context,
	query string,
	detail bool,
) source.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.missed[query]; ok {
		return source.Result{Source: r.id, Query: query, Status: st}
	}
	if recs, ok := r.kept[query]; ok {
		return source.Found(r.id, query, recs)
	}

	_, refreshed := r.fetched[query]
	if !r.force || refreshed {
		recs, ok, err := r.cache.Read(query)
		if err != nil {
			slog.Warn("Ignoring broken cache entry",
				"source", r.id, "query", query, "error", err)
		} else if ok {
			r.hits.Add(1)
			return source.Found(r.id, query, recs)
		}
	}

	if err := ctx.Err(); err != nil {
		return source.Failed(r.id, query, source.TransportError, err)
	}

	fetch := r.fetch
	if detail && r.detail != nil {
		fetch = r.detail
	}
	res := fetch(ctx, query)
	res.Source, res.Query = r.id, query

	if !res.OK() && ctx.Err() != nil {
		// interrupted lookups are neither memoized nor journaled
		return res
	}
	r.record(ctx, res)

	if !res.OK() {
		r.missed[query] = res.Status
		if res.Status == source.NotFound {
			r.notFound.Add(1)
			slog.Info("Name not found", "source", r.id, "query", query)
		} else {
			r.failed.Add(1)
			slog.Warn("Lookup failed",
				"source", r.id,
				"query", query,
				"status", res.Status,
				"retryable", res.Retryable(),
				"error", res.Err,
			)
		}
		return res
	}

	r.found.Add(1)
	r.fetched[query] = struct{}{}
	if err := r.cache.Write(query, res.Records); err != nil {
		slog.Warn("Cannot cache records",
			"source", r.id, "query", query, "error", err)
		r.kept[query] = res.Records
	}
	return res
}

func (r *resolver) record(ctx context.Context, res source.Result) {
	if r.journal == nil {
		return
	}
	e := journal.Entry{
		RunID:   r.runID,
		Source:  r.id.String(),
		Query:   res.Query,
		Status:  res.Status.String(),
		Records: len(res.Records),
	}
	if res.Err != nil {
		e.Error = res.Err.Error()
	}
	if err := r.journal.Add(context.WithoutCancel(ctx), e); err != nil {
		slog.Warn("Cannot write fetch journal", "error", err)
	}
}

func (r *resolver) stats() pipeline.SourceStats {
	return pipeline.SourceStats{
		Source:    r.id,
		Processed: int(r.processed.Load()),
		CacheHits: int(r.hits.Load()),
		Fetched:   int(r.found.Load()),
		NotFound:  int(r.notFound.Load()),
		Failed:    int(r.failed.Load()),
	}
}

// finder gives report builders access to resolvers.
type finder map[source.ID]*resolver

func (f finder) Find(
	ctx context.Context,
	id source.ID,
	query string,
) []record.Record {
	if r, ok := f[id]; ok {
		return r.resolve(ctx, query, false).Records
	}
	return nil
}

func (f finder) Detail(
	ctx context.Context,
	id source.ID,
	query string,
) []record.Record {
	if r, ok := f[id]; ok {
		return r.resolve(ctx, query, true).Records
	}
	return nil
}
