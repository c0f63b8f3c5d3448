// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package native

import (
	"sync/atomic"

	"github.com/gogpu/texbuf/gpucore"
	"github.com/gogpu/texbuf/pixfmt"
	"github.com/gogpu/wgpu/hal"
)

// Texture is either a HAL texture or, for staging textures, a MapRead
// buffer with its CPU shadow.
type Texture struct {
	dev   *Device
	desc  gpucore.TextureDesc
	img   pixfmt.Image
	pitch uint32

	tex hal.Texture

	buf    hal.Buffer
	shadow []byte
	mapped atomic.Bool

	refs atomic.Int32
}

// Desc implements gpucore.Texture.
func (t *Texture) Desc() gpucore.TextureDesc { return t.desc }

// Device implements gpucore.Texture.
func (t *Texture) Device() gpucore.Device { return t.dev }

// Supports implements gpucore.Texture.
func (t *Texture) Supports(id gpucore.ResourceID) bool {
	switch id {
	case gpucore.ResourceIDTexture2D:
		return true
	case gpucore.ResourceIDSurface, gpucore.ResourceIDHAL:
		return !t.staging()
	case gpucore.ResourceIDStaging:
		return t.staging()
	default:
		return false
	}
}

// HAL returns the HAL texture, or nil for a staging texture.
func (t *Texture) HAL() hal.Texture { return t.tex }

// RowPitch returns the copy pitch in bytes.
func (t *Texture) RowPitch() int { return int(t.pitch) }

// Retain implements gpucore.Texture.
func (t *Texture) Retain() int32 { return t.refs.Add(1) }

// Release implements gpucore.Texture. The HAL object is destroyed at zero.
func (t *Texture) Release() int32 {
	n := t.refs.Add(-1)
	if n == 0 {
		t.dev.destroy(t)
	}
	return n
}

func (t *Texture) staging() bool { return t.desc.Usage&gpucore.UsageStaging != 0 }
