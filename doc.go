// Package sievebench builds a Bloom filter over a word corpus and
// measures its accuracy against a labeled query set.
//
// A Bloom filter is a space-efficient probabilistic set-membership
// structure: it never reports an inserted element as absent, and reports
// a never-inserted element as present with a tunable probability. This
// package exists to study that space/accuracy trade-off and to exercise
// data-parallel bulk operations over shared filter state.
//
// # Filters
//
// Two variants share the [Sieve] surface:
//
// [Filter] is the single-threaded variant, backed by a bitset. It has no
// synchronization overhead and is the reference for equivalence checks.
//
// [AtomicFilter] packs its bits into atomic uint64 words and sets them
// with atomic OR. Because inserts only ever set bits, concurrent writers
// need no locks: races on the same word are benign and word-sized
// atomics cannot tear. [ParallelInsertAll] fans a corpus out across
// workers on this invariant alone. Neither variant supports inserts
// concurrent with queries; finish the build pass before the first test.
//
// # Sizing
//
// [OptimalBitCount] and [OptimalHashCount] derive the bit-array size m
// and probe count k from the expected element count and target
// false-positive rate using the standard closed forms. Both are fixed at
// construction; the filters never resize.
//
// # Hashing
//
// The probe indexes come from a salt-parameterized [HashFamily]. Salts
// 0..k-1 act as k independent hash functions. The default [APHash]
// family mixes each byte with alternating shift/XOR transforms; seeded
// [XXH3Hash] and [Murmur3Hash] families are available for comparison
// runs.
//
// # Evaluation
//
// [Evaluator.Evaluate] tests every labeled query, classifying outcomes
// into false positives, false negatives, and ground-truth totals. The
// counters are summed from per-worker partials, so the result is
// independent of worker count. A false negative is impossible for a
// correct filter; any occurrence is logged and returned as an
// [InvariantViolationError] beside the full result.
package sievebench
