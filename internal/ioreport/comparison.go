package ioreport

import (
	"context"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/gnames/macrofitas/pkg/crossref"
	"github.com/gnames/macrofitas/pkg/source"
	"github.com/xuri/excelize/v2"
)

// Report numbers.
const (
	ComparisonReport = 1
	DetailReport     = 2
	OccurrenceReport = 3
)

// Comparison builds the report that compares taxonomic sources. It also
// forwards accepted names to the next stages of the pipeline.
type Comparison struct {
	*base
	finder Finder
	taxa   []source.ID
	next   []chan<- string
	seen   map[string]struct{}

	equal     atomic.Int64
	different atomic.Int64
}

// NewComparison creates the comparison report builder. Only taxa sources
// are consulted. Accepted names are sent to every channel of next, each
// name at most once. The builder owns next and closes them when it
// finishes.
func NewComparison(
	dir string,
	finder Finder,
	taxa []source.ID,
	next ...chan<- string,
) (*Comparison, error) {
	b, err := newBase(dir, ComparisonReport, crossref.ComparisonHeader)
	if err != nil {
		return nil, err
	}
	res := &Comparison{
		base:   b,
		finder: finder,
		taxa:   taxa,
		next:   next,
		seen:   make(map[string]struct{}),
	}
	return res, nil
}

// Run drains in, saves the workbook and sends its path to out.
func (c *Comparison) Run(
	ctx context.Context,
	in <-chan string,
	out chan<- string,
) error {
	return drain(ctx, c.base, in, out, c.handle, c.closeNext)
}

// Accepted returns the sorted accepted names forwarded by the builder.
// It must be called after Run returns.
func (c *Comparison) Accepted() []string {
	res := make([]string, 0, len(c.seen))
	for k := range c.seen {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

// Verdicts returns the number of names both sources agree on and the
// number of names they disagree on.
func (c *Comparison) Verdicts() (equal, different int) {
	return int(c.equal.Load()), int(c.different.Load())
}

func (c *Comparison) handle(ctx context.Context, query string) error {
	var plant, flora crossref.Taxon
	var missed []string
	for _, id := range c.taxa {
		recs := c.finder.Find(ctx, id, query)
		if len(recs) == 0 {
			missed = append(missed, id.Title())
			continue
		}
		switch id {
		case source.Flora:
			flora = crossref.Evaluate(id, recs)
		case source.Plant:
			plant = crossref.Evaluate(id, recs)
		}
	}

	verdict := crossref.Compare(plant, flora)
	formula := excelize.Cell{
		Formula: crossref.ComparisonFormula(c.wb.mainRow + 1),
		Value:   verdict,
	}
	err := c.addRow(crossref.ComparisonRow(query, plant, flora), formula)
	if err != nil {
		return err
	}
	switch verdict {
	case crossref.Equal:
		c.equal.Add(1)
	case crossref.Different:
		c.different.Add(1)
	}

	if len(missed) == len(c.taxa) {
		return c.addMissing(strings.Join(missed, ", "), query)
	}

	name, ok := crossref.AcceptedName(plant, flora)
	if !ok {
		return nil
	}
	if _, ok = c.seen[name]; ok {
		return nil
	}
	c.seen[name] = struct{}{}

	for _, ch := range c.next {
		select {
		case <-ctx.Done():
			return nil
		case ch <- name:
		}
	}
	return nil
}

func (c *Comparison) closeNext() {
	for _, ch := range c.next {
		close(ch)
	}
	c.next = nil
}
