// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texbuf

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gogpu/texbuf/backend/software"
	"github.com/gogpu/texbuf/gpucore"
	"github.com/gogpu/texbuf/pixfmt"
)

// pattern returns n bytes that differ from row to row and plane to plane.
func pattern(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*31+i/7) ^ seed
	}
	return b
}

// newTexture creates a software texture filled with pattern(seed).
func newTexture(t *testing.T, dev *software.Device, f pixfmt.Format, w, h int, seed byte) *software.Texture {
	t.Helper()
	tex, err := dev.NewTexture(gpucore.TextureDesc{Width: w, Height: h, Format: f})
	if err != nil {
		t.Fatalf("NewTexture(%v %dx%d) error = %v", f, w, h, err)
	}
	img, err := pixfmt.DefaultTable().Image(f, w, h)
	if err != nil {
		t.Fatal(err)
	}
	if err := tex.Upload(0, pattern(img.PackedSize(), seed)); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	return tex
}

// newBuffer creates a buffer over a fresh patterned texture. The creator's
// texture reference is dropped so the buffer owns the only one; the
// buffer is released at cleanup unless the test already did.
func newBuffer(t *testing.T, dev *software.Device, f pixfmt.Format, w, h int, opts ...Option) (*MediaBuffer, *software.Texture) {
	t.Helper()
	tex := newTexture(t, dev, f, w, h, 0x5A)
	buf, err := New(tex, 0, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	tex.Release()
	t.Cleanup(func() {
		if buf.refs.Load() > 0 {
			buf.Release()
		}
	})
	return buf, tex
}

func query2D(t *testing.T, buf *MediaBuffer) *Buffer2D {
	t.Helper()
	v, err := buf.Query(Capability2DBuffer2)
	if err != nil {
		t.Fatalf("Query(2DBuffer2) error = %v", err)
	}
	v.Release()
	return v.(*Buffer2D)
}

func queryResource(t *testing.T, buf *MediaBuffer) *ResourceBuffer {
	t.Helper()
	v, err := buf.Query(CapabilityResource)
	if err != nil {
		t.Fatalf("Query(Resource) error = %v", err)
	}
	v.Release()
	return v.(*ResourceBuffer)
}

// packed returns the texture's current content.
func packed(t *testing.T, tex *software.Texture) []byte {
	t.Helper()
	b, err := tex.Download(0)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	return b
}

// countingAllocator records scratch traffic and can fail on demand.
type countingAllocator struct {
	fail   error
	allocs atomic.Int32
	frees  atomic.Int32
	onFree func()
}

func (a *countingAllocator) Alloc(n int) ([]byte, error) {
	if a.fail != nil {
		return nil, a.fail
	}
	a.allocs.Add(1)
	return make([]byte, n), nil
}

func (a *countingAllocator) Free([]byte) {
	a.frees.Add(1)
	if a.onFree != nil {
		a.onFree()
	}
}

// fakeTexture is a texture with no storage, for creation checks.
type fakeTexture struct {
	desc gpucore.TextureDesc
	dev  gpucore.Device
	ids  []gpucore.ResourceID
	refs atomic.Int32
}

func (f *fakeTexture) Desc() gpucore.TextureDesc { return f.desc }
func (f *fakeTexture) Device() gpucore.Device    { return f.dev }
func (f *fakeTexture) Retain() int32             { return f.refs.Add(1) }
func (f *fakeTexture) Release() int32            { return f.refs.Add(-1) }
func (f *fakeTexture) Supports(id gpucore.ResourceID) bool {
	for _, v := range f.ids {
		if v == id {
			return true
		}
	}
	return false
}

// trace records teardown events in order.
type trace struct {
	mu     sync.Mutex
	events []string
}

func (tr *trace) add(e string) {
	tr.mu.Lock()
	tr.events = append(tr.events, e)
	tr.mu.Unlock()
}

func (tr *trace) list() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]string(nil), tr.events...)
}

// tracedTexture reports its releases.
type tracedTexture struct {
	*software.Texture
	name  string
	trace *trace
	dev   *tracedDevice
}

func (t *tracedTexture) Device() gpucore.Device { return t.dev }

func (t *tracedTexture) Release() int32 {
	t.trace.add("release " + t.name)
	return t.Texture.Release()
}

// tracedDevice wraps a software device and its textures.
type tracedDevice struct {
	dev   *software.Device
	trace *trace
}

func unwrap(t gpucore.Texture) gpucore.Texture {
	if tt, ok := t.(*tracedTexture); ok {
		return tt.Texture
	}
	return t
}

func (d *tracedDevice) wrap(tex *software.Texture, name string) *tracedTexture {
	return &tracedTexture{Texture: tex, name: name, trace: d.trace, dev: d}
}

func (d *tracedDevice) CreateStaging(src gpucore.Texture) (gpucore.Texture, error) {
	s, err := d.dev.CreateStaging(unwrap(src))
	if err != nil {
		return nil, err
	}
	return d.wrap(s.(*software.Texture), "staging"), nil
}

func (d *tracedDevice) CopySubresource(dst gpucore.Texture, di uint32, src gpucore.Texture, si uint32) error {
	return d.dev.CopySubresource(unwrap(dst), di, unwrap(src), si)
}

func (d *tracedDevice) Map(t gpucore.Texture, index uint32) (gpucore.Mapping, error) {
	return d.dev.Map(unwrap(t), index)
}

func (d *tracedDevice) Unmap(t gpucore.Texture, index uint32) {
	d.trace.add("unmap")
	d.dev.Unmap(unwrap(t), index)
}

// tracedObject is a Refcounted associated object.
type tracedObject struct {
	refs  atomic.Int32
	trace *trace
}

func (o *tracedObject) Retain() int32 { return o.refs.Add(1) }

func (o *tracedObject) Release() int32 {
	o.trace.add("release object")
	return o.refs.Add(-1)
}

var errBoom = errors.New("boom")
