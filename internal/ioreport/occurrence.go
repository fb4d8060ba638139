package ioreport

import (
	"context"

	"github.com/gnames/macrofitas/pkg/crossref"
	"github.com/gnames/macrofitas/pkg/source"
)

// Occurrence builds the report with occurrence geodata. It receives a
// notice every time an occurrence source finishes a name.
type Occurrence struct {
	*base
	finder Finder
}

// NewOccurrence creates the occurrence report builder.
func NewOccurrence(dir string, finder Finder) (*Occurrence, error) {
	b, err := newBase(dir, OccurrenceReport, crossref.OccurrenceHeader)
	if err != nil {
		return nil, err
	}
	return &Occurrence{base: b, finder: finder}, nil
}

// Run drains in, saves the workbook and sends its path to out.
func (o *Occurrence) Run(
	ctx context.Context,
	in <-chan source.Done,
	out chan<- string,
) error {
	return drain(ctx, o.base, in, out, o.handle, nil)
}

func (o *Occurrence) handle(ctx context.Context, d source.Done) error {
	recs := o.finder.Find(ctx, d.Source, d.Query)
	if len(recs) == 0 {
		return o.addMissing(d.Source.Title(), d.Query)
	}
	for _, rec := range recs {
		if err := o.addRow(crossref.OccurrenceRow(d.Source, d.Query, rec)); err != nil {
			return err
		}
	}
	return nil
}
