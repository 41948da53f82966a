// File: pool/bytepool.go
// Package pool provides reusable byte buffers for the frame accumulation
// layer, bucketed by power-of-two size class.

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/matthunz/ws-frame/api"
)

// minClass is the smallest buffer handed out (4 KiB), sized to hold a
// typical frame header plus a small payload without regrowing.
const minClass = 12 // log2

// maxClass caps pooled buffers at 16 MiB; larger requests are allocated
// directly and never pooled.
const maxClass = 24 // log2

// BytePool is a size-class bucketed pool of []byte backed by sync.Pool.
// It implements api.BytePool.
type BytePool struct {
	classes [maxClass - minClass + 1]sync.Pool

	acquires atomic.Int64
	misses   atomic.Int64
}

// Stats aggregates pool reuse counters. Reuse hits are Acquires - Misses.
type Stats struct {
	Acquires int64
	Misses   int64
}

// NewBytePool returns an empty pool. The zero value is not usable; the
// constructor wires the per-class allocators.
func NewBytePool() *BytePool {
	p := &BytePool{}
	for i := range p.classes {
		size := 1 << (minClass + i)
		p.classes[i].New = func() any {
			p.misses.Add(1)
			return make([]byte, size)
		}
	}
	return p
}

// Acquire returns a buffer with length at least n. Buffers above the top
// size class are allocated fresh and will be dropped on Release.
func (p *BytePool) Acquire(n int) []byte {
	p.acquires.Add(1)
	cls, ok := classFor(n)
	if !ok {
		p.misses.Add(1)
		return make([]byte, n)
	}
	return p.classes[cls].Get().([]byte)
}

// Release returns buf to its size class. Buffers that did not come from
// the pool (odd sizes, oversized) are left for the GC.
func (p *BytePool) Release(buf []byte) {
	cls, ok := classFor(cap(buf))
	if !ok || cap(buf) != 1<<(minClass+cls) {
		return
	}
	p.classes[cls].Put(buf[:cap(buf)])
}

// Stats returns a snapshot of the reuse counters.
func (p *BytePool) Stats() Stats {
	return Stats{Acquires: p.acquires.Load(), Misses: p.misses.Load()}
}

// classFor maps a requested size to the smallest class that fits.
func classFor(n int) (int, bool) {
	if n < 0 || n > 1<<maxClass {
		return 0, false
	}
	for c := 0; c <= maxClass-minClass; c++ {
		if n <= 1<<(minClass+c) {
			return c, true
		}
	}
	return 0, false
}

var _ api.BytePool = (*BytePool)(nil)
