// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scratch provides the pooled byte buffers that back whole-buffer
// locks of texture-backed media buffers.
package scratch

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Tier sizes. The largest tier holds a 4K (3840x2160) 32-bit frame.
const (
	Size64K  = 1 << 16
	Size256K = 1 << 18
	Size1M   = 1 << 20
	Size4M   = 1 << 22
	Size16M  = 1 << 24
	Size32M  = 1 << 25
)

// ErrTooLarge is returned when a request exceeds the pool limit.
var ErrTooLarge = errors.New("scratch: request exceeds limit")

var tierSizes = [...]int{Size64K, Size256K, Size1M, Size4M, Size16M, Size32M}

// Pool hands out byte slices from size tiers. Slices larger than the
// largest tier are allocated directly and left to the GC on Free.
// A Pool is safe for concurrent use.
type Pool struct {
	tiers [len(tierSizes)]sync.Pool
	limit int

	outstanding atomic.Int64
}

// NewPool returns a pool refusing requests above limit bytes. A limit of
// zero or less means no limit.
func NewPool(limit int) *Pool {
	p := &Pool{limit: limit}
	for i, size := range tierSizes {
		p.tiers[i].New = func() any { return make([]byte, size) }
	}
	return p
}

// Default is the process-wide pool used when no allocator is configured.
var Default = sync.OnceValue(func() *Pool { return NewPool(0) })

// Alloc returns a slice of length n. Its contents are unspecified.
func (p *Pool) Alloc(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("scratch: negative size %d", n)
	}
	if p.limit > 0 && n > p.limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLarge, n, p.limit)
	}
	p.outstanding.Add(1)
	for i, size := range tierSizes {
		if n <= size {
			return p.tiers[i].Get().([]byte)[:n], nil
		}
	}
	return make([]byte, n), nil
}

// Free returns b to its tier. Slices not obtained from Alloc are dropped.
func (p *Pool) Free(b []byte) {
	if b == nil {
		return
	}
	p.outstanding.Add(-1)
	c := cap(b)
	for i, size := range tierSizes {
		if c == size {
			p.tiers[i].Put(b[:c])
			return
		}
	}
}

// Outstanding returns the number of slices allocated and not yet freed.
func (p *Pool) Outstanding() int64 {
	return p.outstanding.Load()
}
