package constfold

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"ember/internal/diag"
	"ember/internal/ir"
)

// perFuncDiagnostics bounds how many diagnostics one function can emit in a
// parallel run before the rest are dropped.
const perFuncDiagnostics = 100

// RunParallel folds the module's functions concurrently. Functions share no
// mutable state, so per-function folding is safely parallel; each function
// collects into its own Bag and the bags are replayed into opts.Reporter in
// function order, keeping diagnostics deterministic.
func RunParallel(ctx context.Context, m *ir.Module, jobs int, opts Options) (int, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if len(m.Funcs) == 0 {
		return 0, nil
	}

	counts := make([]int, len(m.Funcs))
	bags := make([]*diag.Bag, len(m.Funcs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(m.Funcs)))

	for i, f := range m.Funcs {
		if f == nil {
			continue
		}
		i, f := i, f
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			bag := diag.NewBag(perFuncDiagnostics)
			counts[i] = Fold(f, Options{
				Reporter: diag.BagReporter{Bag: bag},
				Types:    opts.Types,
			})
			bags[i] = bag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	reporter := opts.reporter()
	for i, bag := range bags {
		total += counts[i]
		if bag == nil {
			continue
		}
		for _, d := range bag.Items() {
			reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
		}
	}
	return total, nil
}
