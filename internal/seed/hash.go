// Package seed derives the deterministic token that is the sole source of
// pseudo-randomness in the reading pipeline. The hash is versioned and fixed:
// an independent reimplementation in any language must produce identical
// tokens, so nothing here may depend on wall-clock time, process identity or
// map iteration order.
package seed

import (
	"fmt"
	"math/bits"
)

// mix4 constants. The lanes start from the FNV-1a offset basis xored with
// fixed distinct constants; the mixing primes come from the Murmur3 family.
const (
	fnvBasis = 0x811c9dc5
	prime1   = 0xcc9e2d51
	prime2   = 0x1b873593
)

var laneInit = [4]uint32{
	fnvBasis,
	fnvBasis ^ 0x9e3779b9,
	fnvBasis ^ 0x85ebca6b,
	fnvBasis ^ 0xc2b2ae35,
}

// Sum32 runs the mix4 hash: four rolling 32-bit lanes fed round-robin, each
// avalanched and folded together with xor. Test vectors are pinned in
// hash_test.go; changing any constant breaks reproducibility.
func Sum32(data []byte) uint32 {
	h := laneInit
	for i, b := range data {
		lane := i & 3
		h[lane] = bits.RotateLeft32(h[lane]^uint32(b)*prime1, 13) * prime2
	}
	n := uint32(len(data))
	return fmix32(h[0]^n) ^ fmix32(h[1]^n) ^ fmix32(h[2]^n) ^ fmix32(h[3]^n)
}

// fmix32 is the Murmur3 finalizer.
func fmix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// Hex renders a hash word as the fixed-width token form.
func Hex(h uint32) string {
	return fmt.Sprintf("%08x", h)
}
