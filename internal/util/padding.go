package util

import (
	"sync/atomic"
	"unsafe"
)

// CacheLineSize is a practical default for current CPUs; the runtime's
// own constant is unexported.
const CacheLineSize = 64

// PaddedAtomicUint64 is an atomic counter padded to exactly one cache
// line. Shard-local hit/miss counters use it so that hot updates from
// different shards never share a line.
type PaddedAtomicUint64 struct {
	atomic.Uint64
	_ [CacheLineSize - 8]byte
}

// Compile-time size check: the padded counter must not exceed one cache
// line.
var _ [CacheLineSize - int(unsafe.Sizeof(PaddedAtomicUint64{}))]byte
