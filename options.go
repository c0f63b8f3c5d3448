// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texbuf

import (
	"github.com/gogpu/texbuf/internal/scratch"
	"github.com/gogpu/texbuf/pixfmt"
)

// Option configures a buffer during creation.
//
// Example:
//
//	// Default format table and pooled scratch memory
//	buf, err := texbuf.New(tex, 0)
//
//	// Bounded scratch memory
//	buf, err := texbuf.New(tex, 0, texbuf.WithAllocator(myAllocator))
type Option func(*options)

// Allocator provides the scratch memory of whole-buffer locks.
// Implementations must be safe for concurrent use.
type Allocator interface {
	// Alloc returns a slice of length n. Its contents are unspecified.
	Alloc(n int) ([]byte, error)

	// Free returns a slice obtained from Alloc.
	Free(b []byte)
}

// options holds optional configuration for buffer creation.
type options struct {
	table    *pixfmt.Table
	alloc    Allocator
	bottomUp bool
}

// defaultOptions returns the default buffer options.
func defaultOptions() options {
	return options{
		table: pixfmt.DefaultTable(),
		alloc: scratch.Default(),
	}
}

// WithFormatTable sets the table used to derive stride and plane size.
// A nil table keeps the default.
func WithFormatTable(t *pixfmt.Table) Option {
	return func(o *options) {
		if t != nil {
			o.table = t
		}
	}
}

// WithAllocator sets the scratch allocator. A nil allocator keeps the
// process-wide pool.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.alloc = a
		}
	}
}

// WithBottomUp records that the image is stored bottom-up. The flag is
// reported by Buffer2D.BottomUp; addressing is unchanged, scanline 0 is
// always the first row in memory.
func WithBottomUp(bottomUp bool) Option {
	return func(o *options) {
		o.bottomUp = bottomUp
	}
}
