// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package native

import (
	"time"

	"github.com/gogpu/texbuf/pixfmt"
)

// Option configures a Device.
type Option func(*options)

type options struct {
	align   uint32
	timeout time.Duration
	label   string
	table   *pixfmt.Table
}

func defaultOptions() options {
	return options{
		align:   256,
		timeout: 5 * time.Second,
		label:   "texbuf",
		table:   pixfmt.DefaultTable(),
	}
}

// WithPitchAlignment sets the row pitch granularity of staging textures.
// WebGPU requires texture-to-buffer copies to use a multiple of 256; only
// powers of two of at least 256 are accepted, others are ignored.
func WithPitchAlignment(n uint32) Option {
	return func(o *options) {
		if n >= 256 && n&(n-1) == 0 {
			o.align = n
		}
	}
}

// WithFenceTimeout sets how long a readback waits for the GPU.
func WithFenceTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLabel sets the prefix of HAL object labels.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithFormatTable sets the table used for row sizes.
func WithFormatTable(t *pixfmt.Table) Option {
	return func(o *options) {
		if t != nil {
			o.table = t
		}
	}
}
