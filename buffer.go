// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texbuf

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/texbuf/attrs"
	"github.com/gogpu/texbuf/gpucore"
	"github.com/gogpu/texbuf/pixfmt"
)

// Capability selects a view of a buffer.
type Capability uint8

// Capabilities.
const (
	// CapabilityMediaBuffer selects the whole-buffer *MediaBuffer view.
	CapabilityMediaBuffer Capability = iota + 1

	// Capability2DBuffer selects the tiled *Buffer2D view.
	Capability2DBuffer

	// Capability2DBuffer2 selects the tiled view with sized locks and
	// bulk copies. It is the same *Buffer2D as Capability2DBuffer.
	Capability2DBuffer2

	// CapabilityResource selects the *ResourceBuffer view.
	CapabilityResource

	// CapabilityAttributes selects the *AttributeView view.
	CapabilityAttributes
)

func (c Capability) String() string {
	switch c {
	case CapabilityMediaBuffer:
		return "MediaBuffer"
	case Capability2DBuffer:
		return "2DBuffer"
	case Capability2DBuffer2:
		return "2DBuffer2"
	case CapabilityResource:
		return "Resource"
	case CapabilityAttributes:
		return "Attributes"
	default:
		return fmt.Sprintf("Capability(%d)", uint8(c))
	}
}

// View is implemented by every view of a buffer. All views of one buffer
// share a single reference count.
type View interface {
	// Retain adds a reference and returns the new count.
	Retain() int32

	// Release drops a reference and returns the new count. The buffer is
	// torn down when the count reaches zero.
	Release() int32

	// Query returns the view for c with one added reference.
	Query(c Capability) (View, error)
}

// Refcounted is implemented by associated objects that share ownership.
type Refcounted = attrs.Refcounted

// buffer is the state shared by all views.
type buffer struct {
	refs atomic.Int32

	texture     gpucore.Texture
	device      gpucore.Device
	subresource uint32
	img         pixfmt.Image
	planeSize   int
	bottomUp    bool
	alloc       Allocator
	attrs       *attrs.Store

	currentLength atomic.Int64

	// mu guards the lock state below for the full duration of every lock,
	// unlock and copy, GPU work included.
	mu      sync.Mutex
	locks   int
	mode    lockMode
	linear  []byte
	staging gpucore.Texture
	mapping gpucore.Mapping

	media MediaBuffer
	tiled Buffer2D
	res   ResourceBuffer
	attrv AttributeView
}

// New creates a buffer over subresource of a 2D texture and returns its
// whole-buffer view with one reference.
//
// resource must implement gpucore.Texture and support
// gpucore.ResourceIDTexture2D. The buffer retains the texture until it is
// torn down.
func New(resource any, subresource uint32, opts ...Option) (*MediaBuffer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	tex, ok := resource.(gpucore.Texture)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a texture", ErrInvalidFormat, resource)
	}
	if !tex.Supports(gpucore.ResourceIDTexture2D) {
		return nil, fmt.Errorf("%w: not a 2D texture", ErrInvalidFormat)
	}

	desc := tex.Desc()
	dev := tex.Device()
	if dev == nil {
		return nil, fmt.Errorf("%w: texture has no device", ErrInvalidArgument)
	}
	if n := desc.Subresources(); int(subresource) >= n {
		return nil, fmt.Errorf("%w: subresource %d of %d", ErrInvalidArgument, subresource, n)
	}

	if _, _, err := o.table.Stride(desc.Format, desc.Width); err != nil {
		if errors.Is(err, pixfmt.ErrUnsupportedFormat) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	img, err := o.table.Image(desc.Format, desc.Width, desc.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	tex.Retain()
	b := &buffer{
		texture:     tex,
		device:      dev,
		subresource: subresource,
		img:         img,
		planeSize:   img.PackedSize(),
		bottomUp:    o.bottomUp,
		alloc:       o.alloc,
		attrs:       attrs.New(),
	}
	b.refs.Store(1)
	b.media.buffer = b
	b.tiled.buffer = b
	b.res.buffer = b
	b.attrv.buffer = b
	b.attrv.Store = b.attrs

	propagateLogger(dev)
	Logger().Debug("texbuf: buffer created",
		"format", img.Format, "width", img.Width, "height", img.Height,
		"subresource", subresource, "planeSize", b.planeSize)
	return &b.media, nil
}

// Retain adds a reference to the buffer and returns the new count.
func (b *buffer) Retain() int32 {
	return b.refs.Add(1)
}

// Release drops a reference to the buffer and returns the new count.
// At zero the texture, staging texture, scratch memory and attribute
// store are released, in that order.
func (b *buffer) Release() int32 {
	n := b.refs.Add(-1)
	if n == 0 {
		b.teardown()
	}
	return n
}

// Query returns the view for c with one added reference. Every query for
// the same capability returns the same view.
func (b *buffer) Query(c Capability) (View, error) {
	var v View
	switch c {
	case CapabilityMediaBuffer:
		v = &b.media
	case Capability2DBuffer, Capability2DBuffer2:
		v = &b.tiled
	case CapabilityResource:
		v = &b.res
	case CapabilityAttributes:
		v = &b.attrv
	default:
		return nil, fmt.Errorf("%w: capability %v", ErrNotSupported, c)
	}
	b.Retain()
	return v, nil
}

// Format returns the pixel format of the texture.
func (b *buffer) Format() pixfmt.Format { return b.img.Format }

// Width returns the image width in pixels.
func (b *buffer) Width() int { return b.img.Width }

// Height returns the image height in pixels.
func (b *buffer) Height() int { return b.img.Height }

func (b *buffer) teardown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.locks > 0 {
		Logger().Warn("texbuf: buffer released while locked", "locks", b.locks, "mode", b.mode)
		b.device.Unmap(b.staging, 0)
		b.locks, b.mode, b.mapping = 0, modeUnlocked, gpucore.Mapping{}
	}

	b.texture.Release()
	b.texture = nil
	if b.staging != nil {
		b.staging.Release()
		b.staging = nil
	}
	if b.linear != nil {
		b.alloc.Free(b.linear)
		b.linear = nil
	}
	b.attrs.Clear()
}

// ensureStaging creates the staging texture on first use.
func (b *buffer) ensureStaging() error {
	if b.staging != nil {
		return nil
	}
	s, err := b.device.CreateStaging(b.texture)
	if err != nil {
		Logger().Warn("texbuf: staging texture creation failed", "err", err)
		return fmt.Errorf("%w: %w", ErrResourceCreation, err)
	}
	b.staging = s
	Logger().Debug("texbuf: staging texture created", "format", b.img.Format)
	return nil
}

// mapStaging opens the CPU mapping for a lock sequence in mode.
func (b *buffer) mapStaging(mode lockMode) error {
	if err := b.ensureStaging(); err != nil {
		return err
	}
	if mode.reads() {
		if err := b.device.CopySubresource(b.staging, 0, b.texture, b.subresource); err != nil {
			Logger().Warn("texbuf: readback failed", "err", err)
			return fmt.Errorf("%w: readback: %w", ErrMapFailed, err)
		}
	}
	m, err := b.device.Map(b.staging, 0)
	if err != nil {
		Logger().Warn("texbuf: map failed", "err", err)
		return fmt.Errorf("%w: %w", ErrMapFailed, err)
	}
	if err := b.img.Check(len(m.Data), m.RowPitch); err != nil {
		b.device.Unmap(b.staging, 0)
		return fmt.Errorf("%w: %w", ErrMapFailed, err)
	}
	b.mapping = m
	return nil
}

// unmapStaging closes the CPU mapping of a sequence that ran in mode,
// writing it back when the sequence wrote.
func (b *buffer) unmapStaging(mode lockMode) error {
	b.device.Unmap(b.staging, 0)
	b.mapping = gpucore.Mapping{}
	if !mode.writes() {
		return nil
	}
	if err := b.device.CopySubresource(b.texture, b.subresource, b.staging, 0); err != nil {
		Logger().Warn("texbuf: writeback failed", "err", err)
		return fmt.Errorf("%w: %w", ErrWritebackFailed, err)
	}
	return nil
}

// lockTiled opens or joins a tiled lock sequence. b.mu must be held.
func (b *buffer) lockTiled(flags LockFlags) error {
	if b.linear != nil {
		return ErrUnexpected
	}
	next, err := combine(b.mode, flags)
	if err != nil {
		return err
	}
	if b.locks == 0 {
		if err := b.mapStaging(next); err != nil {
			return err
		}
	}
	b.mode = next
	b.locks++
	Logger().Debug("texbuf: tiled lock", "flags", flags, "mode", next, "locks", b.locks)
	return nil
}

// unlockTiled closes one level of a tiled lock sequence. A writeback error
// is returned after the sequence has been closed. b.mu must be held.
func (b *buffer) unlockTiled() error {
	if b.locks == 0 {
		return ErrWasUnlocked
	}
	if b.linear != nil {
		return ErrUnexpected
	}
	b.locks--
	Logger().Debug("texbuf: tiled unlock", "mode", b.mode, "locks", b.locks)
	if b.locks > 0 {
		return nil
	}
	mode := b.mode
	b.mode = modeUnlocked
	return b.unmapStaging(mode)
}
