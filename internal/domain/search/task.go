package search

import (
	"context"
	"sync"

	"github.com/medsearch/aggregator/internal/domain/record"
)

// task is one unit of fan-out work: a labeled call against a single
// source that returns normalized records or an UpstreamFailure.
type task struct {
	source record.Source
	run    func(ctx context.Context) ([]record.Record, error)
}

// runAll launches every task concurrently and awaits all of their
// completions before returning — the settle-all-then-partition pattern
// spec.md §5 requires instead of a fail-fast join. A failing task's error
// is recorded against its source label (first failure per label wins);
// a succeeding task's records are always included even when a sibling
// task for the same label failed.
func runAll(ctx context.Context, tasks []task) ([]record.Record, map[record.Source]error) {
	type outcome struct {
		source record.Source
		recs   []record.Record
		err    error
	}

	outcomes := make([]outcome, len(tasks))
	var wg sync.WaitGroup
	wg.Add(len(tasks))

	for i, t := range tasks {
		go func(i int, t task) {
			defer wg.Done()
			recs, err := t.run(ctx)
			outcomes[i] = outcome{source: t.source, recs: recs, err: err}
		}(i, t)
	}
	wg.Wait()

	var results []record.Record
	errs := make(map[record.Source]error)
	for _, o := range outcomes {
		if o.err != nil {
			if _, seen := errs[o.source]; !seen {
				errs[o.source] = o.err
			}
			continue
		}
		results = append(results, o.recs...)
	}
	return results, errs
}

// translateTask is one parallel translation call keyed by which input
// part it translates (so callers can tell which of disease/treatment/
// topic, or which positional q-part, a result belongs to).
type translateTask struct {
	key  string
	text string
}

// translateAll runs every translateTask concurrently against translate,
// returning only the keys whose translation succeeded — a failed
// translation simply drops out of the map, per spec.md §4.B's
// failure-as-absent contract.
func translateAll(ctx context.Context, translate func(ctx context.Context, text string) (string, bool), tasks []translateTask) map[string]string {
	type outcome struct {
		key   string
		value string
		ok    bool
	}

	outcomes := make([]outcome, len(tasks))
	var wg sync.WaitGroup
	wg.Add(len(tasks))

	for i, t := range tasks {
		go func(i int, t translateTask) {
			defer wg.Done()
			v, ok := translate(ctx, t.text)
			outcomes[i] = outcome{key: t.key, value: v, ok: ok}
		}(i, t)
	}
	wg.Wait()

	out := make(map[string]string)
	for _, o := range outcomes {
		if o.ok {
			out[o.key] = o.value
		}
	}
	return out
}
