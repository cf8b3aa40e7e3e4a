package loading

import (
	"context"

	"github.com/pkg/errors"

	"github.com/IgorRikhard/GameArchitecture/common/stats"
)

// Runner runs operations in order, reporting progress before and after each.
type Runner struct {
	reporter ProgressReporter
	stat     stats.StatsReceiver
}

func NewRunner(reporter ProgressReporter, stat stats.StatsReceiver) *Runner {
	return &Runner{reporter: reporter, stat: stat.Scope(stats.LoadingScope)}
}

// Run stops at the first failing operation, or when ctx is done.
func (r *Runner) Run(ctx context.Context, ops []Operation) error {
	if len(ops) == 0 {
		return nil
	}
	total := float64(len(ops))
	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.report(op.Description(), float64(i)/total)

		r.stat.Counter(stats.LoadingOperationCounter).Inc(1)
		lat := r.stat.Latency(stats.LoadingOperationLatency_ms).Time()
		err := op.Load(ctx)
		lat.Stop()
		if err != nil {
			r.stat.Counter(stats.LoadingOperationFailureCounter).Inc(1)
			return errors.Wrapf(err, "loading %q", op.Description())
		}

		r.report(op.Description(), float64(i+1)/total)
	}
	return nil
}

func (r *Runner) report(description string, progress float64) {
	r.stat.Gauge(stats.LoadingProgressGauge).Update(int64(progress * 100))
	r.reporter.Report(description, progress)
}
