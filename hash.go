package sievebench

import (
	"fmt"

	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// A HashFamily maps an element and a salt to a bit index in
// [0, rangeSize). Implementations must be deterministic: identical
// (element, salt, rangeSize) arguments always yield the identical index,
// which is what makes the AND-reduction membership check sound. Salts
// 0..k-1 stand in for the k independent hash functions of the classic
// Bloom construction; they only need to be statistically decorrelated,
// not cryptographically independent.
type HashFamily interface {
	Index(element string, salt uint32, rangeSize uint64) uint64
	Name() string
}

// FamilyByName returns the hash family registered under name.
// Valid names are "ap", "xxh3", and "murmur3".
func FamilyByName(name string) (HashFamily, error) {
	switch name {
	case "ap":
		return APHash{}, nil
	case "xxh3":
		return XXH3Hash{}, nil
	case "murmur3":
		return Murmur3Hash{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownHashFamily, name)
}

// APHash is the default family: an additive/XOR-mixing hash seeded with
// the salt. Bytes at odd and even positions go through different
// shift/XOR transforms, which strengthens avalanche behavior across the
// string.
type APHash struct{}

func (APHash) Name() string { return "ap" }

func (APHash) Index(element string, salt uint32, rangeSize uint64) uint64 {
	h := salt
	for i := 0; i < len(element); i++ {
		c := uint32(element[i])
		if i%2 == 1 {
			h ^= (h << 7) ^ c ^ (h >> 3)
		} else {
			h ^= ^((h << 11) ^ c ^ (h >> 5))
		}
	}
	return uint64(h) % rangeSize
}

// XXH3Hash derives indexes from xxh3 seeded with the salt.
type XXH3Hash struct{}

func (XXH3Hash) Name() string { return "xxh3" }

func (XXH3Hash) Index(element string, salt uint32, rangeSize uint64) uint64 {
	return xxh3.HashStringSeed(element, uint64(salt)) % rangeSize
}

// Murmur3Hash derives indexes from 64-bit murmur3 seeded with the salt.
type Murmur3Hash struct{}

func (Murmur3Hash) Name() string { return "murmur3" }

func (Murmur3Hash) Index(element string, salt uint32, rangeSize uint64) uint64 {
	return murmur3.Sum64WithSeed([]byte(element), salt) % rangeSize
}
