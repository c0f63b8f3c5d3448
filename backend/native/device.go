// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package native

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/texbuf/backend"
	"github.com/gogpu/texbuf/gpucore"
	"github.com/gogpu/texbuf/pixfmt"
	"github.com/gogpu/wgpu/hal"

	// Register the Vulkan HAL backend for Open.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

func init() {
	backend.Register(backend.BackendNative, func() (backend.Device, error) {
		return Open()
	})
}

// Device is a gpucore.Device backed by a HAL device and queue.
//
// Thread Safety: Device is safe for concurrent use from multiple goroutines.
// HAL calls are serialized by a mutex.
type Device struct {
	opts options

	mu       sync.Mutex
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	external bool
	closed   bool

	live atomic.Int64
}

// NewDevice wraps an open HAL device and queue. The caller keeps ownership
// of both; Close does not destroy them.
func NewDevice(device hal.Device, queue hal.Queue, opts ...Option) (*Device, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("%w: nil device or queue", ErrInvalidProvider)
	}
	d := &Device{opts: defaultOptions(), device: device, queue: queue, external: true}
	for _, opt := range opts {
		opt(&d.opts)
	}
	return d, nil
}

// NewDeviceFromProvider shares the GPU device of a gogpu application. The
// provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func NewDeviceFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrInvalidProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrInvalidProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrInvalidProvider)
	}
	slogger().Debug("native: using shared GPU device")
	return NewDevice(device, queue, opts...)
}

// Open creates a standalone Vulkan device. Discrete and integrated GPUs
// are preferred over other adapters.
func Open(opts ...Option) (*Device, error) {
	b, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not available", ErrNoGPU)
	}
	instance, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %w", ErrNoGPU, err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: no adapters found", ErrNoGPU)
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: open device: %w", ErrNoGPU, err)
	}

	d := &Device{
		opts:     defaultOptions(),
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
	}
	for _, opt := range opts {
		opt(&d.opts)
	}
	slogger().Info("native: GPU initialized (standalone)", "adapter", selected.Info.Name)
	return d, nil
}

// Name returns "native".
func (d *Device) Name() string { return backend.BackendNative }

// SetLogger sets the package logger. texbuf calls it when a buffer is
// created over a texture of this device.
func (d *Device) SetLogger(l *slog.Logger) { setLogger(l) }

// LiveTextures returns the number of textures not yet released.
func (d *Device) LiveTextures() int64 { return d.live.Load() }

// Close destroys a standalone device. Shared devices are left to their
// owner. Textures must be released first.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	if n := d.live.Load(); n > 0 {
		slogger().Warn("native: device closed with live textures", "count", n)
	}
	if !d.external {
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device, d.queue, d.instance = nil, nil, nil
}

// halFormat maps a pixel format to its WebGPU texture format.
func halFormat(f pixfmt.Format) (gputypes.TextureFormat, bool) {
	switch f {
	case pixfmt.FormatARGB32, pixfmt.FormatRGB32:
		return gputypes.TextureFormatBGRA8Unorm, true
	case pixfmt.FormatABGR32:
		return gputypes.TextureFormatRGBA8Unorm, true
	case pixfmt.FormatL8:
		return gputypes.TextureFormatR8Unorm, true
	default:
		return gputypes.TextureFormatUndefined, false
	}
}

func (d *Device) layout(desc gpucore.TextureDesc) (pixfmt.Image, uint32, error) {
	if desc.MipLevels > 1 || desc.ArraySize > 1 {
		return pixfmt.Image{}, 0, fmt.Errorf("%w: %d mips, %d slices", ErrInvalidDesc, desc.MipLevels, desc.ArraySize)
	}
	if _, ok := halFormat(desc.Format); !ok {
		return pixfmt.Image{}, 0, fmt.Errorf("%w: %v", ErrUnsupportedFormat, desc.Format)
	}
	img, err := d.opts.table.Image(desc.Format, desc.Width, desc.Height)
	if err != nil {
		return pixfmt.Image{}, 0, fmt.Errorf("%w: %w", ErrInvalidDesc, err)
	}
	a := d.opts.align
	pitch := (uint32(img.Stride) + a - 1) &^ (a - 1)
	return img, pitch, nil
}

// CreateTexture implements backend.Device.
func (d *Device) CreateTexture(desc gpucore.TextureDesc) (gpucore.Texture, error) {
	img, pitch, err := d.layout(desc)
	if err != nil {
		return nil, err
	}
	format, _ := halFormat(desc.Format)
	desc.MipLevels, desc.ArraySize = 1, 1

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrClosed
	}
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         d.opts.label + "_texture",
		Size:          hal.Extent3D{Width: uint32(desc.Width), Height: uint32(desc.Height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}
	return d.track(&Texture{dev: d, desc: desc, img: img, pitch: pitch, tex: tex}), nil
}

// CreateStaging implements gpucore.Device.
func (d *Device) CreateStaging(src gpucore.Texture) (gpucore.Texture, error) {
	s, err := d.own(src)
	if err != nil {
		return nil, err
	}
	desc := s.desc
	desc.Usage = gpucore.UsageStaging
	size := uint64(s.pitch) * uint64(desc.Height)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrClosed
	}
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: d.opts.label + "_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	slogger().Debug("native: staging buffer created", "size", size, "pitch", s.pitch)
	return d.track(&Texture{
		dev:    d,
		desc:   desc,
		img:    s.img,
		pitch:  s.pitch,
		buf:    buf,
		shadow: make([]byte, size),
	}), nil
}

func (d *Device) track(t *Texture) *Texture {
	t.refs.Store(1)
	d.live.Add(1)
	return t
}

func (d *Device) own(t gpucore.Texture) (*Texture, error) {
	nt, ok := t.(*Texture)
	if !ok || nt == nil || nt.dev != d || nt.refs.Load() <= 0 {
		return nil, ErrInvalidTexture
	}
	return nt, nil
}

// CopySubresource implements gpucore.Device. One side must be a staging
// texture and the other a GPU texture.
func (d *Device) CopySubresource(dst gpucore.Texture, dstIndex uint32, src gpucore.Texture, srcIndex uint32) error {
	dt, err := d.own(dst)
	if err != nil {
		return err
	}
	st, err := d.own(src)
	if err != nil {
		return err
	}
	if dstIndex != 0 || srcIndex != 0 {
		return fmt.Errorf("%w: %d/%d", ErrSubresourceRange, dstIndex, srcIndex)
	}
	if dt.desc.Format != st.desc.Format || dt.desc.Width != st.desc.Width || dt.desc.Height != st.desc.Height {
		return ErrIncompatible
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	switch {
	case dt.staging() && !st.staging():
		return d.readback(dt, st)
	case st.staging() && !dt.staging():
		d.upload(dt, st)
		return nil
	default:
		return ErrIncompatible
	}
}

// readback copies tex into the staging buffer and reads it into the
// shadow. d.mu must be held.
func (d *Device) readback(staging, tex *Texture) error {
	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: d.opts.label + "_readback",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(d.opts.label + "_readback"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	w, h := uint32(tex.desc.Width), uint32(tex.desc.Height)
	encoder.CopyTextureToBuffer(tex.tex, staging.buf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: tex.pitch, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: tex.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := d.device.Wait(fence, 1, d.opts.timeout)
	if err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if !fenceOK {
		return fmt.Errorf("%w after %v", ErrTimeout, d.opts.timeout)
	}

	if err := d.queue.ReadBuffer(staging.buf, 0, staging.shadow); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	return nil
}

// upload writes the staging shadow into tex. d.mu must be held.
func (d *Device) upload(tex, staging *Texture) {
	w, h := uint32(tex.desc.Width), uint32(tex.desc.Height)
	d.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex.tex,
			MipLevel: 0,
		},
		staging.shadow,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  staging.pitch,
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
}

// Map implements gpucore.Device. The mapping is the staging shadow; its
// content is what the last copy into the staging texture read back.
func (d *Device) Map(t gpucore.Texture, index uint32) (gpucore.Mapping, error) {
	st, err := d.own(t)
	if err != nil {
		return gpucore.Mapping{}, err
	}
	if !st.staging() {
		return gpucore.Mapping{}, ErrNotMappable
	}
	if index != 0 {
		return gpucore.Mapping{}, fmt.Errorf("%w: %d", ErrSubresourceRange, index)
	}
	if !st.mapped.CompareAndSwap(false, true) {
		return gpucore.Mapping{}, ErrAlreadyMapped
	}
	return gpucore.Mapping{
		Data:       st.shadow,
		RowPitch:   int(st.pitch),
		DepthPitch: len(st.shadow),
	}, nil
}

// Unmap implements gpucore.Device.
func (d *Device) Unmap(t gpucore.Texture, index uint32) {
	if st, err := d.own(t); err == nil && index == 0 {
		st.mapped.Store(false)
	}
}

// destroy releases the HAL object behind t.
func (d *Device) destroy(t *Texture) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.live.Add(-1)
	if d.closed {
		return
	}
	if t.tex != nil {
		d.device.DestroyTexture(t.tex)
	}
	if t.buf != nil {
		d.device.DestroyBuffer(t.buf)
	}
}
