package sievebench

import (
	"fmt"
	"math/bits"
	"sync/atomic"

	"github.com/bits-and-blooms/bitset"
)

// A Sieve is the surface shared by the two filter variants. Bits only
// ever transition from unset to set; there is no deletion and no
// resizing after construction.
type Sieve interface {
	// AddString inserts an element.
	AddString(s string)
	// TestString reports whether an element might have been inserted.
	// Inserted elements always test true; elements never inserted may
	// still test true with the filter's false-positive probability.
	TestString(s string) bool
	// Bit reports the state of a single bit. It panics when the index
	// is outside [0, BitCount()).
	Bit(i uint64) bool
	// BitCount returns m, the size of the bit array.
	BitCount() uint64
	// HashCount returns k, the number of salted probes per element.
	HashCount() uint32
	// Count returns the number of elements added.
	Count() uint64
}

// Filter is a single-threaded Bloom filter backed by a bitset. It is not
// safe for concurrent use; the parallel insert engine writes to
// AtomicFilter instead.
type Filter struct {
	bits   *bitset.BitSet
	m      uint64
	k      uint32
	family HashFamily
	count  uint64
}

// New creates a filter sized for the expected number of elements at the
// target false-positive rate. A nil family selects APHash.
func New(expectedElements int, targetRate float64, family HashFamily) (*Filter, error) {
	m, err := OptimalBitCount(expectedElements, targetRate)
	if err != nil {
		return nil, err
	}
	return NewWithParams(m, OptimalHashCount(m, expectedElements), family)
}

// NewWithParams creates a filter with an explicit bit-array size and
// probe count.
func NewWithParams(bitCount uint64, hashCount uint32, family HashFamily) (*Filter, error) {
	if bitCount == 0 {
		return nil, ErrZeroSizedFilter
	}
	if bitCount > maxBits {
		return nil, ErrFilterTooLarge
	}
	if hashCount == 0 {
		hashCount = 1
	}
	if family == nil {
		family = APHash{}
	}
	return &Filter{
		bits:   bitset.New(uint(bitCount)),
		m:      bitCount,
		k:      hashCount,
		family: family,
	}, nil
}

// AddString inserts an element by setting its k probed bits.
func (f *Filter) AddString(s string) {
	s = clampElement(s)
	for salt := uint32(0); salt < f.k; salt++ {
		f.bits.Set(uint(f.family.Index(s, salt, f.m)))
	}
	f.count++
}

// TestString reports whether an element might have been inserted,
// short-circuiting on the first unset probe.
func (f *Filter) TestString(s string) bool {
	s = clampElement(s)
	for salt := uint32(0); salt < f.k; salt++ {
		if !f.bits.Test(uint(f.family.Index(s, salt, f.m))) {
			return false
		}
	}
	return true
}

func (f *Filter) Bit(i uint64) bool {
	if i >= f.m {
		panic(fmt.Sprintf("sievebench: bit index %d out of range [0, %d)", i, f.m))
	}
	return f.bits.Test(uint(i))
}

// BitCount returns m, the size of the bit array.
func (f *Filter) BitCount() uint64 { return f.m }

// HashCount returns k, the number of salted probes per element.
func (f *Filter) HashCount() uint32 { return f.k }

// Family returns the hash family driving the filter's probes.
func (f *Filter) Family() HashFamily { return f.family }

// Count returns the number of elements added.
func (f *Filter) Count() uint64 { return f.count }

// FillRatio returns the fraction of bits that are set.
func (f *Filter) FillRatio() float64 {
	return float64(f.bits.Count()) / float64(f.m)
}

// EstimatedFalsePositiveRate returns the theoretical false-positive
// probability given the number of elements added so far.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	return EstimateFalsePositiveRate(f.m, f.k, f.count)
}

// AtomicFilter is a Bloom filter whose bit array is packed into
// atomic.Uint64 words. Bits are set with atomic OR, so any number of
// writers may insert concurrently without locks: every writer only ever
// sets bits, concurrent writes to the same word converge regardless of
// order, and word-sized atomics cannot tear. Inserts must still finish
// before the first query; insert concurrent with query on the same
// filter is not part of the contract.
type AtomicFilter struct {
	words  []atomic.Uint64
	m      uint64
	k      uint32
	family HashFamily
	count  atomic.Uint64
}

// NewAtomic creates an AtomicFilter sized for the expected number of
// elements at the target false-positive rate. A nil family selects
// APHash.
func NewAtomic(expectedElements int, targetRate float64, family HashFamily) (*AtomicFilter, error) {
	m, err := OptimalBitCount(expectedElements, targetRate)
	if err != nil {
		return nil, err
	}
	return NewAtomicWithParams(m, OptimalHashCount(m, expectedElements), family)
}

// NewAtomicWithParams creates an AtomicFilter with an explicit bit-array
// size and probe count.
func NewAtomicWithParams(bitCount uint64, hashCount uint32, family HashFamily) (*AtomicFilter, error) {
	if bitCount == 0 {
		return nil, ErrZeroSizedFilter
	}
	if bitCount > maxBits {
		return nil, ErrFilterTooLarge
	}
	if hashCount == 0 {
		hashCount = 1
	}
	if family == nil {
		family = APHash{}
	}
	return &AtomicFilter{
		words:  make([]atomic.Uint64, (bitCount+63)/64),
		m:      bitCount,
		k:      hashCount,
		family: family,
	}, nil
}

// AddString inserts an element. Safe to call from any number of
// goroutines concurrently.
func (f *AtomicFilter) AddString(s string) {
	s = clampElement(s)
	for salt := uint32(0); salt < f.k; salt++ {
		i := f.family.Index(s, salt, f.m)
		// atomic.Uint64.Or requires Go 1.23; this CAS loop is the
		// equivalent atomic OR for the Go 1.21 toolchain available here.
		w := &f.words[i/64]
		mask := uint64(1) << (i % 64)
		for {
			old := w.Load()
			if old&mask != 0 || w.CompareAndSwap(old, old|mask) {
				break
			}
		}
	}
	f.count.Add(1)
}

// TestString reports whether an element might have been inserted.
func (f *AtomicFilter) TestString(s string) bool {
	s = clampElement(s)
	for salt := uint32(0); salt < f.k; salt++ {
		i := f.family.Index(s, salt, f.m)
		if f.words[i/64].Load()&(1<<(i%64)) == 0 {
			return false
		}
	}
	return true
}

func (f *AtomicFilter) Bit(i uint64) bool {
	if i >= f.m {
		panic(fmt.Sprintf("sievebench: bit index %d out of range [0, %d)", i, f.m))
	}
	return f.words[i/64].Load()&(1<<(i%64)) != 0
}

// BitCount returns m, the size of the bit array.
func (f *AtomicFilter) BitCount() uint64 { return f.m }

// HashCount returns k, the number of salted probes per element.
func (f *AtomicFilter) HashCount() uint32 { return f.k }

// Family returns the hash family driving the filter's probes.
func (f *AtomicFilter) Family() HashFamily { return f.family }

// Count returns the number of elements added.
func (f *AtomicFilter) Count() uint64 { return f.count.Load() }

// FillRatio returns the fraction of bits that are set.
func (f *AtomicFilter) FillRatio() float64 {
	var set uint64
	for i := range f.words {
		set += uint64(bits.OnesCount64(f.words[i].Load()))
	}
	return float64(set) / float64(f.m)
}

// EstimatedFalsePositiveRate returns the theoretical false-positive
// probability given the number of elements added so far.
func (f *AtomicFilter) EstimatedFalsePositiveRate() float64 {
	return EstimateFalsePositiveRate(f.m, f.k, f.count.Load())
}

// clampElement truncates an element to MaxElementLen bytes. Applied on
// every add and test so both paths hash the same key even when a source
// forgot to truncate.
func clampElement(s string) string {
	if len(s) > MaxElementLen {
		return s[:MaxElementLen]
	}
	return s
}
