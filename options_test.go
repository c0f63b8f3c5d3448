// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texbuf

import (
	"testing"

	"github.com/gogpu/texbuf/backend/software"
	"github.com/gogpu/texbuf/internal/scratch"
	"github.com/gogpu/texbuf/pixfmt"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.table != pixfmt.DefaultTable() {
		t.Error("default table is not pixfmt.DefaultTable()")
	}
	if o.alloc != Allocator(scratch.Default()) {
		t.Error("default allocator is not the shared scratch pool")
	}
	if o.bottomUp {
		t.Error("bottomUp defaults to true")
	}
}

func TestNilOptionsKeepDefaults(t *testing.T) {
	o := defaultOptions()
	WithFormatTable(nil)(&o)
	WithAllocator(nil)(&o)
	if o.table == nil || o.alloc == nil {
		t.Error("nil option cleared a default")
	}
}

func TestWithAllocator(t *testing.T) {
	dev := software.New(software.DefaultConfig())
	alloc := &countingAllocator{}
	buf, _ := newBuffer(t, dev, pixfmt.FormatYUY2, 8, 2, WithAllocator(alloc))

	if _, _, _, err := buf.Lock(); err != nil {
		t.Fatal(err)
	}
	if err := buf.Unlock(); err != nil {
		t.Fatal(err)
	}
	if alloc.allocs.Load() != 1 || alloc.frees.Load() != 1 {
		t.Errorf("allocs/frees = %d/%d, want 1/1", alloc.allocs.Load(), alloc.frees.Load())
	}
}
