package ioreport

import (
	"context"
	"slices"

	"github.com/gnames/macrofitas/pkg/crossref"
	"github.com/gnames/macrofitas/pkg/record"
	"github.com/gnames/macrofitas/pkg/source"
)

// Detail builds the report with detailed taxonomic records of accepted
// names.
type Detail struct {
	*base
	finder Finder
	taxa   []source.ID
}

// NewDetail creates the detail report builder.
func NewDetail(dir string, finder Finder, taxa []source.ID) (*Detail, error) {
	b, err := newBase(dir, DetailReport, crossref.DetailHeader)
	if err != nil {
		return nil, err
	}
	return &Detail{base: b, finder: finder, taxa: taxa}, nil
}

// Run drains in, saves the workbook and sends its path to out.
func (d *Detail) Run(
	ctx context.Context,
	in <-chan string,
	out chan<- string,
) error {
	return drain(ctx, d.base, in, out, d.handle, nil)
}

func (d *Detail) handle(ctx context.Context, name string) error {
	var flora, plant []record.Record
	if slices.Contains(d.taxa, source.Flora) {
		flora = d.finder.Detail(ctx, source.Flora, name)
	}
	if slices.Contains(d.taxa, source.Plant) {
		plant = d.finder.Detail(ctx, source.Plant, name)
	}

	row, ok := crossref.DetailRow(name, flora, plant)
	if err := d.addRow(row); err != nil {
		return err
	}
	if !ok {
		return d.addMissing(name)
	}
	return nil
}
