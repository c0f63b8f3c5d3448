// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/texbuf/gpucore"
	"github.com/gogpu/texbuf/pixfmt"
)

// Texture is a texture in CPU memory.
type Texture struct {
	dev   *Device
	desc  gpucore.TextureDesc
	img   pixfmt.Image
	pitch int

	refs atomic.Int32

	// mu guards subs after release and mapped.
	mu     sync.Mutex
	subs   [][]byte
	mapped []bool
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
	case gpucore.ResourceIDSurface:
		return !t.staging() && t.desc.ArraySize == 1
	case gpucore.ResourceIDStaging:
		return t.staging()
	default:
		return false
	}
}

// Retain implements gpucore.Texture.
func (t *Texture) Retain() int32 { return t.refs.Add(1) }

// Release implements gpucore.Texture. The storage is dropped at zero.
func (t *Texture) Release() int32 {
	n := t.refs.Add(-1)
	if n == 0 {
		t.mu.Lock()
		t.subs = nil
		t.mu.Unlock()
		t.dev.live.Add(-1)
	}
	return n
}

// Refs returns the current reference count.
func (t *Texture) Refs() int32 { return t.refs.Load() }

// RowPitch returns the distance in bytes between rows of a subresource.
func (t *Texture) RowPitch() int { return t.pitch }

func (t *Texture) staging() bool { return t.desc.Usage&gpucore.UsageStaging != 0 }

func (t *Texture) sub(index uint32) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(index) >= len(t.subs) {
		return nil, fmt.Errorf("%w: %d", ErrSubresourceRange, index)
	}
	return t.subs[index], nil
}

// Upload writes a tightly packed image into a subresource, as a decoder
// or renderer would.
func (t *Texture) Upload(index uint32, packed []byte) error {
	sub, err := t.sub(index)
	if err != nil {
		return err
	}
	return t.img.Unpack(sub, t.pitch, packed)
}

// Download returns a subresource as a tightly packed image.
func (t *Texture) Download(index uint32) ([]byte, error) {
	sub, err := t.sub(index)
	if err != nil {
		return nil, err
	}
	out := make([]byte, t.img.PackedSize())
	if err := t.img.Pack(out, sub, t.pitch); err != nil {
		return nil, err
	}
	return out, nil
}
