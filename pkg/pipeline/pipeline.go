// Package pipeline defines the cross-referencing pipeline: names go
// through taxonomic sources, accepted names go to occurrence sources,
// and three reports are built along the way.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/macrofitas/pkg/source"
)

// Pipeline runs the cross-referencing of names.
type Pipeline interface {
	// Run processes names and saves the reports. Cancellation of ctx
	// stops the run, partial reports are still saved and the summary
	// is marked as cancelled.
	Run(ctx context.Context, names []string) (*Summary, error)

	// Lookup resolves one name against one source, using the cache. It
	// returns an error if the source is not enabled.
	Lookup(ctx context.Context, id source.ID, name string) (source.Result, error)

	// Sources returns the sources enabled for runs.
	Sources() []source.ID
}

// SourceStats tells how a source did during a run.
type SourceStats struct {
	Source source.ID
	// Processed is the number of queries taken by the source worker.
	Processed int
	// CacheHits is the number of lookups answered from the cache.
	CacheHits int
	// Fetched is the number of successful remote lookups.
	Fetched  int
	NotFound int
	// Failed counts transport and parse errors.
	Failed int
}

// Summary describes a finished run.
type Summary struct {
	RunID    string
	Names    int
	Accepted int
	// Equal and Different count names the taxonomic sources agree and
	// disagree on.
	Equal     int
	Different int
	Sources   []SourceStats
	Reports   []string
	Cancelled bool
	Duration  time.Duration
}

// String returns a human-readable summary.
func (s *Summary) String() string {
	var b strings.Builder
	state := "finished"
	if s.Cancelled {
		state = "cancelled"
	}
	fmt.Fprintf(&b, "Run %s %s in %s\n", s.RunID, state,
		gnfmt.TimeString(s.Duration.Seconds()))
	fmt.Fprintf(&b, "Names: %s, accepted names: %s\n",
		humanize.Comma(int64(s.Names)), humanize.Comma(int64(s.Accepted)))
	if s.Equal+s.Different > 0 {
		fmt.Fprintf(&b, "Sources agree: %s, disagree: %s\n",
			humanize.Comma(int64(s.Equal)), humanize.Comma(int64(s.Different)))
	}
	for _, st := range s.Sources {
		fmt.Fprintf(&b,
			"%-12s processed %s, cached %s, fetched %s, not found %s, failed %s\n",
			st.Source.Title(),
			humanize.Comma(int64(st.Processed)),
			humanize.Comma(int64(st.CacheHits)),
			humanize.Comma(int64(st.Fetched)),
			humanize.Comma(int64(st.NotFound)),
			humanize.Comma(int64(st.Failed)),
		)
	}
	for _, r := range s.Reports {
		fmt.Fprintf(&b, "Saved %s\n", r)
	}
	return b.String()
}
