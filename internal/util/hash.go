// Package util contains internal helpers: key hashing, shard routing,
// and cache-line padding.
package util

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Hash64 hashes common key types with xxhash (64-bit). Supported:
// string, byte arrays of common sizes, all int/uint widths, uintptr, and
// fmt.Stringer as a last resort. Panicking on anything else is
// deliberate: silently poor hashing would funnel a whole key type into
// one shard.
func Hash64[K comparable](k K) uint64 {
	switch v := any(k).(type) {
	case string:
		return xxhash.Sum64String(v)
	case [16]byte:
		return xxhash.Sum64(v[:])
	case [32]byte:
		return xxhash.Sum64(v[:])

	case uint8:
		return sum64Uint(uint64(v))
	case uint16:
		return sum64Uint(uint64(v))
	case uint32:
		return sum64Uint(uint64(v))
	case uint64:
		return sum64Uint(v)
	case uint:
		return sum64Uint(uint64(v))
	case uintptr:
		return sum64Uint(uint64(v))
	case int8:
		return sum64Uint(uint64(uint8(v)))
	case int16:
		return sum64Uint(uint64(uint16(v)))
	case int32:
		return sum64Uint(uint64(uint32(v)))
	case int64:
		return sum64Uint(uint64(v))
	case int:
		return sum64Uint(uint64(v))

	case fmt.Stringer:
		return xxhash.Sum64String(v.String())
	default:
		panic(fmt.Sprintf("util.Hash64: unsupported key type %T; convert the key to string or supply a custom hasher", k))
	}
}

// sum64Uint hashes the 8 little-endian bytes of u without allocating.
func sum64Uint(u uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], u)
	return xxhash.Sum64(b[:])
}
