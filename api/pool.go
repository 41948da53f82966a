// File: api/pool.go
//
// Abstract pooling API: reusable byte buffers for the accumulation layer.

package api

// BytePool provides reusable []byte buffers for high-intensity read loops.
type BytePool interface {
	// Acquire returns a slice with length at least n.
	Acquire(n int) []byte

	// Release returns a buffer to the pool. The buffer must not be used
	// afterwards.
	Release(buf []byte)
}
