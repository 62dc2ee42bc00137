package sievebench

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// QueryRecord pairs an element with its ground-truth membership bit.
// Expected comes from the labeled query source, not from the filter.
type QueryRecord struct {
	Word     string
	Expected bool
}

// EvaluationResult holds the four outcome counters of an evaluation run.
// TotalPositives and TotalNegatives count the ground-truth labels in the
// query set, not the filter's answers.
type EvaluationResult struct {
	FalsePositives uint64
	FalseNegatives uint64
	TotalPositives uint64
	TotalNegatives uint64
}

// Merge adds other's counters into r. Merging is an elementwise sum, so
// partial results combine to the same total under any worker
// partitioning or ordering.
func (r *EvaluationResult) Merge(other EvaluationResult) {
	r.FalsePositives += other.FalsePositives
	r.FalseNegatives += other.FalseNegatives
	r.TotalPositives += other.TotalPositives
	r.TotalNegatives += other.TotalNegatives
}

// FalsePositiveRate returns FalsePositives / TotalNegatives. ok is false
// when the query set contained no negatives and the rate is undefined.
func (r EvaluationResult) FalsePositiveRate() (rate float64, ok bool) {
	if r.TotalNegatives == 0 {
		return 0, false
	}
	return float64(r.FalsePositives) / float64(r.TotalNegatives), true
}

// FalseNegativeRate returns FalseNegatives / TotalPositives. ok is false
// when the query set contained no positives and the rate is undefined.
func (r EvaluationResult) FalseNegativeRate() (rate float64, ok bool) {
	if r.TotalPositives == 0 {
		return 0, false
	}
	return float64(r.FalseNegatives) / float64(r.TotalPositives), true
}

// Evaluator drives membership queries over a labeled query set and
// accumulates outcome counters.
type Evaluator struct {
	logger  *zap.Logger
	workers int
}

// NewEvaluator returns an evaluator logging through logger (nil selects
// a no-op logger). workers <= 0 selects GOMAXPROCS.
func NewEvaluator(logger *zap.Logger, workers int) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Evaluator{logger: logger, workers: workers}
}

// Evaluate classifies every query record against the filter. Each worker
// accumulates a private EvaluationResult over its chunk of the query
// list; the partials are merged once all workers finish, so the counters
// are independent of worker count and scheduling order.
//
// The complete result is always returned. When any false negative was
// observed the error is an *InvariantViolationError: a correctly built
// filter cannot produce one, so it is surfaced loudly (and each
// occurrence is logged with the offending word) instead of being folded
// silently into the statistics. The filter must not receive concurrent
// inserts while an evaluation is running.
func (ev *Evaluator) Evaluate(ctx context.Context, sieve Sieve, queries []QueryRecord) (EvaluationResult, error) {
	var total EvaluationResult
	if len(queries) == 0 {
		return total, nil
	}

	chunk := (len(queries) + ev.workers - 1) / ev.workers
	partials := make([]EvaluationResult, (len(queries)+chunk-1)/chunk)

	g, ctx := errgroup.WithContext(ctx)
	for i := range partials {
		part := queries[i*chunk : min((i+1)*chunk, len(queries))]
		out := &partials[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, q := range part {
				ev.classify(sieve, q, out)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return EvaluationResult{}, err
	}

	for _, p := range partials {
		total.Merge(p)
	}
	if total.FalseNegatives > 0 {
		return total, &InvariantViolationError{FalseNegatives: total.FalseNegatives}
	}
	return total, nil
}

func (ev *Evaluator) classify(sieve Sieve, q QueryRecord, out *EvaluationResult) {
	got := sieve.TestString(q.Word)
	switch {
	case q.Expected && !got:
		out.TotalPositives++
		out.FalseNegatives++
		ev.logger.Error("false negative: inserted word reported absent",
			zap.String("word", q.Word))
	case q.Expected:
		out.TotalPositives++
	case got:
		// Expected absent but reported present: the rate-bounded
		// false-positive outcome, not an error.
		out.TotalNegatives++
		out.FalsePositives++
	default:
		out.TotalNegatives++
	}
}
