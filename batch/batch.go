// Package batch lays out many records in parallel. Every record is
// independent: a failure is recorded in that record's result and never stops
// its siblings.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/engraver/layout"
	"github.com/ByLCY/engraver/record"
)

// Func lays out one record.
type Func func(ctx context.Context, rec record.Record) (*layout.Label, error)

// Result is the outcome for one record; exactly one of Label and Err is set.
type Result struct {
	Record record.Record
	Label  *layout.Label
	Err    error
}

// Run applies fn to every record using at most workers goroutines
// (GOMAXPROCS when workers <= 0). Results are returned in input order.
// Records not yet started when ctx is cancelled get ctx.Err().
func Run(ctx context.Context, recs []record.Record, workers int, fn Func) []Result {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(recs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rec := range recs {
		results[i].Record = rec
		if err := gctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Label, results[i].Err = fn(gctx, rec)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Engine adapts a layout engine into a Func; name derives the label name.
// A record that was already malformed on input fails with its own error.
func Engine(e *layout.Engine, name func(record.Record) string) Func {
	return func(_ context.Context, rec record.Record) (*layout.Label, error) {
		if rec.Err != nil {
			return nil, rec.Err
		}
		return e.Compose(name(rec), rec.RawLines(e.Separator))
	}
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
