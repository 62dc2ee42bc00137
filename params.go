package sievebench

import "math"

const (
	// ln2 is the natural logarithm of 2.
	ln2 = 0.6931471805599453

	// MaxElementLen bounds the length of elements fed to the hash
	// families. Longer tokens are truncated at this length on both the
	// insertion and query paths so the two always hash identical keys.
	MaxElementLen = 100

	// maxBits caps the computed bit-array size so a bad sizing request
	// surfaces as a configuration error instead of an enormous
	// allocation.
	maxBits = uint64(1) << 40
)

// OptimalBitCount returns the bit-array size m for the expected number of
// elements n at the target false-positive rate p, using the standard
// derivation m = ceil(n * ln(p) / ln(1 / 2^ln2)).
func OptimalBitCount(expectedElements int, targetRate float64) (uint64, error) {
	if expectedElements <= 0 {
		return 0, ErrInvalidElementCount
	}
	if targetRate <= 0 || targetRate >= 1 {
		return 0, ErrInvalidTargetRate
	}

	m := math.Ceil(float64(expectedElements) * math.Log(targetRate) / math.Log(1/math.Pow(2, ln2)))
	if m > float64(maxBits) {
		return 0, ErrFilterTooLarge
	}
	if m < 1 {
		m = 1
	}
	return uint64(m), nil
}

// OptimalHashCount returns the number of salted probes per element,
// k = round((m/n) * ln(2)), never less than 1. k is fixed at filter
// construction and never changes afterwards.
func OptimalHashCount(bitCount uint64, expectedElements int) uint32 {
	if expectedElements <= 0 {
		return 1
	}
	k := math.Round(float64(bitCount) / float64(expectedElements) * ln2)
	if k < 1 {
		return 1
	}
	return uint32(k)
}

// EstimateFalsePositiveRate returns the theoretical false-positive
// probability (1 - e^(-kn/m))^k for a filter of m bits and k probes
// holding n items.
func EstimateFalsePositiveRate(bitCount uint64, hashCount uint32, itemsAdded uint64) float64 {
	if bitCount == 0 || itemsAdded == 0 {
		return 0
	}
	m := float64(bitCount)
	n := float64(itemsAdded)
	k := float64(hashCount)
	return math.Pow(1-math.Exp(-k*n/m), k)
}
