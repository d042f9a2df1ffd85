package hll

import (
	"github.com/cespare/xxhash/v2"
	"github.com/twmb/murmur3"
)

// Hasher is the external collaborator of spec §6.1: the core consumes a
// 64-bit hash of the user element and never looks inside it beyond the
// bits documented for the composite-hash and register-index extraction.
// Implementations must be stable across merges: the same element must
// hash to the same uint64 within a process.
type Hasher interface {
	Hash(data []byte) uint64

	// name distinguishes hasher identity for IncompatibleMerge checks
	// without requiring comparable concrete types.
	name() string
}

// XXHash64 is the default hasher: an xxHash64-class 64-bit hash, uniformly
// distributed and fast. It wraps github.com/cespare/xxhash/v2, the
// xxHash64 implementation named explicitly by spec §6.1 and already
// present in the retrieval pack's own HyperLogLog-adjacent dependency
// graph (apache/datasketches-go).
type XXHash64 struct{}

func (XXHash64) Hash(data []byte) uint64 { return xxhash.Sum64(data) }
func (XXHash64) name() string            { return "xxhash64" }

// Murmur3Hash64 is the "wyhash-class alternative" hasher slot named by
// spec §6.1. No wyhash implementation exists anywhere in the retrieved
// example corpus; murmur3 is the closest grounded non-cryptographic
// 64-bit alternative, already a dependency of the corpus's
// apache/datasketches-go sketch library. See DESIGN.md.
type Murmur3Hash64 struct{}

func (Murmur3Hash64) Hash(data []byte) uint64 {
	h1, _ := murmur3.Sum128(data)
	return h1
}
func (Murmur3Hash64) name() string { return "murmur3hash64" }

// DefaultHasher returns the package default hasher (XXHash64).
func DefaultHasher() Hasher { return XXHash64{} }
