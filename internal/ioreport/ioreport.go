// Package ioreport builds the three report spreadsheets. Every builder
// drains its own channel, streams rows into a workbook and
// saves it when the channel is closed or the run is cancelled. Partial
// workbooks are always saved.
package ioreport

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gnames/macrofitas/pkg/record"
	"github.com/gnames/macrofitas/pkg/source"
)

// Finder gives report builders access to the records of a source. It
// reads the cache first and fetches inline when a query was not
// processed yet. Nil means the source has nothing for the query.
type Finder interface {
	// Find returns taxonomic or occurrence records of a query.
	Find(ctx context.Context, id source.ID, query string) []record.Record

	// Detail returns a detailed taxonomic record of a query.
	Detail(ctx context.Context, id source.ID, query string) []record.Record
}

// State is the stage of a report builder.
type State int32

const (
	// Running means an item is being converted into rows.
	Running State = iota
	// Draining means the builder waits for the next item.
	Draining
	// Finalizing starts when the input is closed or the run is cancelled.
	Finalizing
	// Saved is final, the workbook is on disk.
	Saved
)

var stateNames = []string{"running", "draining", "finalizing", "saved"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// base has the parts every builder shares.
type base struct {
	n     int
	state atomic.Int32
	wb    *workbook
	rows  atomic.Int64
	miss  atomic.Int64
}

func newBase(dir string, n int, header []string) (*base, error) {
	wb, err := newWorkbook(dir, n, header)
	if err != nil {
		return nil, err
	}
	res := &base{n: n, wb: wb}
	res.setState(Running)
	return res, nil
}

// State returns the current stage of the builder.
func (b *base) State() State {
	return State(b.state.Load())
}

// Rows returns the number of rows written to the primary sheet, header
// excluded.
func (b *base) Rows() int {
	return int(b.rows.Load())
}

// Missing returns the number of not-found rows.
func (b *base) Missing() int {
	return int(b.miss.Load())
}

// setState moves the builder to a new stage. Saved is terminal.
func (b *base) setState(s State) {
	for {
		cur := b.state.Load()
		if State(cur) == Saved {
			return
		}
		if b.state.CompareAndSwap(cur, int32(s)) {
			return
		}
	}
}

// addRow writes a row of values to the primary sheet. Extra cells, such
// as formulas, follow the values.
func (b *base) addRow(vals []string, extra ...any) error {
	if err := b.wb.addRow(append(cells(vals), extra...)); err != nil {
		return err
	}
	b.rows.Add(1)
	return nil
}

func (b *base) addMissing(vals ...string) error {
	if err := b.wb.addMissing(vals...); err != nil {
		return err
	}
	b.miss.Add(1)
	return nil
}

// drain runs handle for every item of in until the channel is closed
// or ctx is cancelled. Then it calls finalize (if not nil), saves the
// workbook and publishes its path to out. The out channel must have room
// for the path.
func drain[T any](
	ctx context.Context,
	b *base,
	in <-chan T,
	out chan<- string,
	handle func(context.Context, T) error,
	finalize func(),
) error {
loop:
	for {
		b.setState(Draining)
		select {
		case <-ctx.Done():
			break loop
		case item, ok := <-in:
			if !ok {
				break loop
			}
			if ctx.Err() != nil {
				break loop
			}
			b.setState(Running)
			if err := handle(ctx, item); err != nil {
				slog.Error("Cannot add report row",
					"report", SheetName(b.n), "error", err)
			}
		}
	}

	b.setState(Finalizing)
	if finalize != nil {
		finalize()
	}
	path, err := b.wb.save()
	b.setState(Saved)
	if err != nil {
		return err
	}

	slog.Info("Report saved",
		"path", path,
		"rows", b.Rows(),
		"not_found", b.Missing(),
		"cancelled", ctx.Err() != nil,
	)
	if out != nil {
		out <- path
	}
	return nil
}
