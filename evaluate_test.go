package sievebench

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
)

func TestEvaluateEmptyQuerySet(t *testing.T) {
	f, err := NewAtomic(10, 0.01, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := NewEvaluator(zap.NewNop(), 4).Evaluate(context.Background(), f, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != (EvaluationResult{}) {
		t.Errorf("got %+v, want all-zero counters", result)
	}
	if _, ok := result.FalsePositiveRate(); ok {
		t.Error("false-positive rate should be undefined for an empty query set")
	}
	if _, ok := result.FalseNegativeRate(); ok {
		t.Error("false-negative rate should be undefined for an empty query set")
	}
}

func TestEvaluateScenario(t *testing.T) {
	f, err := NewAtomic(2, 0.01, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	InsertAll(f, []string{"apple", "banana"})

	queries := []QueryRecord{
		{Word: "apple", Expected: true},
		{Word: "banana", Expected: true},
		{Word: "zzz_not_inserted", Expected: false},
	}
	result, err := NewEvaluator(zap.NewNop(), 2).Evaluate(context.Background(), f, queries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.FalseNegatives != 0 {
		t.Errorf("got %d false negatives, want 0", result.FalseNegatives)
	}
	if result.TotalPositives != 2 || result.TotalNegatives != 1 {
		t.Errorf("got totals %d/%d, want 2/1", result.TotalPositives, result.TotalNegatives)
	}
	// Probabilistic: the uninserted word may collide, but never more
	// than once.
	if result.FalsePositives > 1 {
		t.Errorf("got %d false positives, want at most 1", result.FalsePositives)
	}
	if rate, ok := result.FalseNegativeRate(); !ok || rate != 0 {
		t.Errorf("got false-negative rate (%f, %v), want (0, true)", rate, ok)
	}
}

// The four-way reduction is an elementwise sum, so counters cannot
// depend on how the query list is partitioned across workers.
func TestEvaluateWorkerCountInvariance(t *testing.T) {
	words := corpus(2000)
	f, err := NewAtomic(len(words), 0.01, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	InsertAll(f, words)

	queries := make([]QueryRecord, 0, 4000)
	for i := 0; i < 2000; i++ {
		queries = append(queries, QueryRecord{Word: fmt.Sprintf("word-%d", i), Expected: true})
		queries = append(queries, QueryRecord{Word: fmt.Sprintf("absent-%d", i), Expected: false})
	}

	base, err := NewEvaluator(zap.NewNop(), 1).Evaluate(context.Background(), f, queries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, workers := range []int{2, 3, 7, 16} {
		result, err := NewEvaluator(zap.NewNop(), workers).Evaluate(context.Background(), f, queries)
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		if result != base {
			t.Errorf("workers=%d: got %+v, want %+v", workers, result, base)
		}
	}
}

func TestEvaluateSurfacesFalseNegatives(t *testing.T) {
	// Nothing inserted, but the label claims membership: the evaluator
	// must report the violation without dropping the counters.
	f, err := NewAtomic(10, 0.01, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	queries := []QueryRecord{
		{Word: "ghost", Expected: true},
		{Word: "phantom", Expected: true},
		{Word: "real-negative", Expected: false},
	}
	result, err := NewEvaluator(zap.NewNop(), 2).Evaluate(context.Background(), f, queries)

	var violation *InvariantViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("got %v, want *InvariantViolationError", err)
	}
	if violation.FalseNegatives != 2 {
		t.Errorf("got %d false negatives in error, want 2", violation.FalseNegatives)
	}
	if result.FalseNegatives != 2 || result.TotalPositives != 2 || result.TotalNegatives != 1 {
		t.Errorf("counters were dropped alongside the violation: %+v", result)
	}
}

func TestEvaluationResultMerge(t *testing.T) {
	total := EvaluationResult{}
	total.Merge(EvaluationResult{FalsePositives: 1, TotalNegatives: 10})
	total.Merge(EvaluationResult{FalseNegatives: 2, TotalPositives: 5})
	total.Merge(EvaluationResult{FalsePositives: 3, TotalNegatives: 7, TotalPositives: 1})

	want := EvaluationResult{FalsePositives: 4, FalseNegatives: 2, TotalPositives: 6, TotalNegatives: 17}
	if total != want {
		t.Errorf("got %+v, want %+v", total, want)
	}
}

func TestEvaluationResultRates(t *testing.T) {
	r := EvaluationResult{FalsePositives: 5, TotalNegatives: 100, FalseNegatives: 0, TotalPositives: 50}
	if rate, ok := r.FalsePositiveRate(); !ok || rate != 0.05 {
		t.Errorf("got (%f, %v), want (0.05, true)", rate, ok)
	}
	if rate, ok := r.FalseNegativeRate(); !ok || rate != 0 {
		t.Errorf("got (%f, %v), want (0, true)", rate, ok)
	}

	onlyPositives := EvaluationResult{TotalPositives: 10}
	if _, ok := onlyPositives.FalsePositiveRate(); ok {
		t.Error("false-positive rate should be undefined with no negatives")
	}
}
