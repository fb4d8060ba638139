package iopipeline

import (
	"context"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/macrofitas/pkg/source"
)

// stage is a source worker with its input queue.
type stage struct {
	id  source.ID
	in  chan string
	res *resolver
	bar *pb.ProgressBar
	// grow extends the bar total as queries arrive
	grow bool
}

// work resolves queries from the stage queue until it is closed. Every
// query taken from the queue produces exactly one notice on done,
// whatever the outcome of the lookup was.
func (s *stage) work(ctx context.Context, done chan<- source.Done) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case q, ok := <-s.in:
			if !ok {
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			if s.bar != nil && s.grow {
				s.bar.AddTotal(1)
			}
			s.res.resolve(ctx, q, false)
			s.res.processed.Add(1)
			if s.bar != nil {
				s.bar.Increment()
			}

			select {
			case <-ctx.Done():
				return nil
			case done <- source.Done{Source: s.id, Query: q}:
			}
		}
	}
}

// seed sends names to every queue and closes the queues afterwards.
func seed(ctx context.Context, names []string, queues []chan string) error {
	defer func() {
		for _, q := range queues {
			close(q)
		}
	}()
	for _, n := range names {
		for _, q := range queues {
			select {
			case <-ctx.Done():
				return nil
			case q <- n:
			}
		}
	}
	return nil
}

// join forwards a query to out once every source in want reported it.
// It closes out when in is closed.
func join(
	ctx context.Context,
	in <-chan source.Done,
	want []source.ID,
	out chan<- string,
) error {
	defer close(out)
	seen := make(map[string]map[source.ID]struct{})
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-in:
			if !ok {
				return nil
			}
			got := seen[d.Query]
			if got == nil {
				got = make(map[source.ID]struct{}, len(want))
				seen[d.Query] = got
			}
			got[d.Source] = struct{}{}
			if len(got) < len(want) {
				continue
			}
			delete(seen, d.Query)
			select {
			case <-ctx.Done():
				return nil
			case out <- d.Query:
			}
		}
	}
}
