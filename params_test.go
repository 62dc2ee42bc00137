package sievebench

import (
	"errors"
	"math"
	"testing"
)

func TestOptimalBitCountClosedForm(t *testing.T) {
	m, err := OptimalBitCount(1000, 0.01)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Spot check against a by-hand evaluation of
	// ceil(n * ln(p) / ln(1 / 2^ln2)).
	want := uint64(math.Ceil(1000 * math.Log(0.01) / math.Log(1/math.Pow(2, math.Ln2))))
	if m != want {
		t.Errorf("got m=%d, want %d", m, want)
	}
	if m != 9586 {
		t.Errorf("got m=%d, want 9586", m)
	}
}

func TestOptimalBitCountMonotonicInN(t *testing.T) {
	var prev uint64
	for _, n := range []int{1, 10, 100, 1000, 10000, 100000} {
		m, err := OptimalBitCount(n, 0.01)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if m < prev {
			t.Errorf("m decreased from %d to %d at n=%d", prev, m, n)
		}
		prev = m
	}
}

func TestOptimalBitCountMonotonicInRate(t *testing.T) {
	var prev uint64
	for _, p := range []float64{0.5, 0.1, 0.01, 0.001, 0.0001} {
		m, err := OptimalBitCount(1000, p)
		if err != nil {
			t.Fatalf("p=%f: unexpected error: %v", p, err)
		}
		if m < prev {
			t.Errorf("m decreased from %d to %d as p shrank to %f", prev, m, p)
		}
		prev = m
	}
}

func TestOptimalBitCountRejectsBadInputs(t *testing.T) {
	for _, n := range []int{0, -5} {
		if _, err := OptimalBitCount(n, 0.01); !errors.Is(err, ErrInvalidElementCount) {
			t.Errorf("n=%d: got %v, want ErrInvalidElementCount", n, err)
		}
	}
	for _, p := range []float64{0, -0.1, 1, 1.5} {
		if _, err := OptimalBitCount(1000, p); !errors.Is(err, ErrInvalidTargetRate) {
			t.Errorf("p=%f: got %v, want ErrInvalidTargetRate", p, err)
		}
	}
}

func TestOptimalHashCountAtLeastOne(t *testing.T) {
	// Even a bit array far smaller than the element count must yield at
	// least one probe.
	if k := OptimalHashCount(5, 1000); k != 1 {
		t.Errorf("got k=%d, want 1", k)
	}
	if k := OptimalHashCount(9586, 1000); k != 7 {
		t.Errorf("got k=%d, want 7", k)
	}
}

func TestEstimateFalsePositiveRate(t *testing.T) {
	if got := EstimateFalsePositiveRate(9586, 7, 0); got != 0 {
		t.Errorf("empty filter: got %f, want 0", got)
	}

	half := EstimateFalsePositiveRate(9586, 7, 500)
	full := EstimateFalsePositiveRate(9586, 7, 1000)
	if half >= full {
		t.Errorf("rate should grow with items: half=%f full=%f", half, full)
	}
	// At design capacity the estimate should sit near the 1% target.
	if full < 0.001 || full > 0.05 {
		t.Errorf("rate at capacity out of expected range: %f", full)
	}
}
