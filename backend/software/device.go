// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/texbuf/backend"
	"github.com/gogpu/texbuf/gpucore"
	"github.com/gogpu/texbuf/pixfmt"
)

// Device errors.
var (
	// ErrInvalidTexture is returned for a nil texture or one created by
	// another device.
	ErrInvalidTexture = errors.New("software: invalid texture")

	// ErrInvalidDesc is returned for a texture description the device
	// cannot allocate.
	ErrInvalidDesc = errors.New("software: invalid texture description")

	// ErrSubresourceRange is returned for an out-of-range subresource
	// index.
	ErrSubresourceRange = errors.New("software: subresource index out of range")

	// ErrIncompatible is returned when copying between textures of
	// different format or size.
	ErrIncompatible = errors.New("software: incompatible textures")

	// ErrNotMappable is returned when mapping a non-staging texture.
	ErrNotMappable = errors.New("software: texture is not mappable")

	// ErrAlreadyMapped is returned when mapping a mapped subresource.
	ErrAlreadyMapped = errors.New("software: subresource already mapped")
)

func init() {
	backend.Register(backend.BackendSoftware, func() (backend.Device, error) {
		return New(DefaultConfig()), nil
	})
}

// Config configures a Device.
type Config struct {
	// PitchAlignment is the row pitch granularity in bytes. It must be a
	// power of two; zero selects 256.
	PitchAlignment int

	// Table supplies format geometry. Nil selects pixfmt.DefaultTable().
	Table *pixfmt.Table
}

// DefaultConfig returns the default configuration: 256-byte row pitch
// alignment, matching the copy granularity of the wgpu backend.
func DefaultConfig() Config {
	return Config{PitchAlignment: 256}
}

// Faults makes device operations fail with the given errors. A nil field
// disables the fault.
type Faults struct {
	CreateStaging error
	Copy          error
	Map           error
}

// Stats counts device operations.
type Stats struct {
	TexturesCreated   int64
	StagingCreated    int64
	CopiesToStaging   int64
	CopiesFromStaging int64
	Maps              int64
	Unmaps            int64
	LiveTextures      int64
}

// Device is a gpucore.Device whose textures live in CPU memory.
//
// Subresources are stored row by row at a pitch rounded up to
// Config.PitchAlignment, so code written against it sees the same
// padded layout a GPU copy produces. Only staging textures can be mapped.
type Device struct {
	align int
	table *pixfmt.Table

	mu     sync.Mutex
	faults Faults

	texturesCreated   atomic.Int64
	stagingCreated    atomic.Int64
	copiesToStaging   atomic.Int64
	copiesFromStaging atomic.Int64
	maps              atomic.Int64
	unmaps            atomic.Int64
	live              atomic.Int64
}

// New returns a device using cfg.
func New(cfg Config) *Device {
	if cfg.PitchAlignment <= 0 {
		cfg.PitchAlignment = 256
	}
	if cfg.Table == nil {
		cfg.Table = pixfmt.DefaultTable()
	}
	return &Device{align: cfg.PitchAlignment, table: cfg.Table}
}

// Name returns "software".
func (d *Device) Name() string { return backend.BackendSoftware }

// Close is a no-op; textures free their memory on final release.
func (d *Device) Close() {}

// SetFaults replaces the injected faults.
func (d *Device) SetFaults(f Faults) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.faults = f
}

func (d *Device) fault() Faults {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.faults
}

// Stats returns a snapshot of the operation counters.
func (d *Device) Stats() Stats {
	return Stats{
		TexturesCreated:   d.texturesCreated.Load(),
		StagingCreated:    d.stagingCreated.Load(),
		CopiesToStaging:   d.copiesToStaging.Load(),
		CopiesFromStaging: d.copiesFromStaging.Load(),
		Maps:              d.maps.Load(),
		Unmaps:            d.unmaps.Load(),
		LiveTextures:      d.live.Load(),
	}
}

// NewTexture creates a texture. MipLevels must be 0 or 1; ArraySize may
// be larger to hold several images.
func (d *Device) NewTexture(desc gpucore.TextureDesc) (*Texture, error) {
	if desc.MipLevels > 1 {
		return nil, fmt.Errorf("%w: %d mip levels", ErrInvalidDesc, desc.MipLevels)
	}
	img, err := d.table.Image(desc.Format, desc.Width, desc.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDesc, err)
	}
	desc.MipLevels = 1
	desc.ArraySize = max(desc.ArraySize, 1)

	pitch := (img.Stride + d.align - 1) &^ (d.align - 1)
	size := img.StridedSize(pitch)
	t := &Texture{
		dev:    d,
		desc:   desc,
		img:    img,
		pitch:  pitch,
		subs:   make([][]byte, desc.ArraySize),
		mapped: make([]bool, desc.ArraySize),
	}
	for i := range t.subs {
		t.subs[i] = make([]byte, size)
	}
	t.refs.Store(1)

	d.texturesCreated.Add(1)
	d.live.Add(1)
	return t, nil
}

// CreateTexture implements backend.Device.
func (d *Device) CreateTexture(desc gpucore.TextureDesc) (gpucore.Texture, error) {
	t, err := d.NewTexture(desc)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (d *Device) own(t gpucore.Texture) (*Texture, error) {
	st, ok := t.(*Texture)
	if !ok || st == nil || st.dev != d {
		return nil, ErrInvalidTexture
	}
	return st, nil
}

// CreateStaging implements gpucore.Device.
func (d *Device) CreateStaging(src gpucore.Texture) (gpucore.Texture, error) {
	s, err := d.own(src)
	if err != nil {
		return nil, err
	}
	if f := d.fault().CreateStaging; f != nil {
		return nil, f
	}
	desc := s.desc
	desc.MipLevels, desc.ArraySize = 1, 1
	desc.Usage = gpucore.UsageStaging
	t, err := d.NewTexture(desc)
	if err != nil {
		return nil, err
	}
	d.stagingCreated.Add(1)
	return t, nil
}

// CopySubresource implements gpucore.Device.
func (d *Device) CopySubresource(dst gpucore.Texture, dstIndex uint32, src gpucore.Texture, srcIndex uint32) error {
	dt, err := d.own(dst)
	if err != nil {
		return err
	}
	st, err := d.own(src)
	if err != nil {
		return err
	}
	if int(dstIndex) >= len(dt.subs) || int(srcIndex) >= len(st.subs) {
		return fmt.Errorf("%w: %d/%d", ErrSubresourceRange, dstIndex, srcIndex)
	}
	if dt.desc.Format != st.desc.Format || dt.desc.Width != st.desc.Width || dt.desc.Height != st.desc.Height {
		return ErrIncompatible
	}
	if f := d.fault().Copy; f != nil {
		return f
	}
	copy(dt.subs[dstIndex], st.subs[srcIndex])

	switch {
	case dt.staging():
		d.copiesToStaging.Add(1)
	case st.staging():
		d.copiesFromStaging.Add(1)
	}
	return nil
}

// Map implements gpucore.Device.
func (d *Device) Map(t gpucore.Texture, index uint32) (gpucore.Mapping, error) {
	st, err := d.own(t)
	if err != nil {
		return gpucore.Mapping{}, err
	}
	if !st.staging() {
		return gpucore.Mapping{}, ErrNotMappable
	}
	if int(index) >= len(st.subs) {
		return gpucore.Mapping{}, fmt.Errorf("%w: %d", ErrSubresourceRange, index)
	}
	if f := d.fault().Map; f != nil {
		return gpucore.Mapping{}, f
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.mapped[index] {
		return gpucore.Mapping{}, ErrAlreadyMapped
	}
	st.mapped[index] = true
	d.maps.Add(1)

	data := st.subs[index]
	return gpucore.Mapping{Data: data, RowPitch: st.pitch, DepthPitch: len(data)}, nil
}

// Unmap implements gpucore.Device.
func (d *Device) Unmap(t gpucore.Texture, index uint32) {
	st, err := d.own(t)
	if err != nil || int(index) >= len(st.subs) {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.mapped[index] {
		st.mapped[index] = false
		d.unmaps.Add(1)
	}
}
