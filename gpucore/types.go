// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

import "github.com/gogpu/texbuf/pixfmt"

// ResourceID names an interface a texture can be viewed through.
// A buffer hands its texture out only for identifiers the texture supports.
type ResourceID uint8

// Resource identifiers.
const (
	// ResourceIDUnknown is the zero value and is never supported.
	ResourceIDUnknown ResourceID = iota

	// ResourceIDTexture2D is a two-dimensional texture with mip levels and
	// array slices.
	ResourceIDTexture2D

	// ResourceIDSurface is a single-image surface view.
	ResourceIDSurface

	// ResourceIDStaging is a CPU-mappable copy target.
	ResourceIDStaging

	// ResourceIDHAL exposes the backend's native handle (hal.Texture for the
	// wgpu backend).
	ResourceIDHAL
)

// String returns a short name for the identifier.
func (id ResourceID) String() string {
	switch id {
	case ResourceIDTexture2D:
		return "Texture2D"
	case ResourceIDSurface:
		return "Surface"
	case ResourceIDStaging:
		return "Staging"
	case ResourceIDHAL:
		return "HAL"
	default:
		return "Unknown"
	}
}

// Usage is a bitmask describing how a texture may be accessed.
type Usage uint32

// Texture usage flags.
const (
	// UsageShaderResource indicates the texture can be sampled by shaders.
	UsageShaderResource Usage = 1 << 0

	// UsageRenderTarget indicates the texture can be rendered to.
	UsageRenderTarget Usage = 1 << 1

	// UsageDecoder indicates the texture is a video decoder output.
	UsageDecoder Usage = 1 << 2

	// UsageStaging indicates a CPU-mappable texture. Staging textures are
	// the only textures Device.Map accepts.
	UsageStaging Usage = 1 << 3
)

// TextureDesc describes a texture.
type TextureDesc struct {
	// Width and Height are the dimensions of mip level 0.
	Width  int
	Height int

	// Format is the pixel format of every subresource.
	Format pixfmt.Format

	// MipLevels and ArraySize define the subresource grid. Zero is read
	// as one.
	MipLevels int
	ArraySize int

	Usage Usage
}

// Subresources returns MipLevels*ArraySize.
func (d TextureDesc) Subresources() int {
	return max(d.MipLevels, 1) * max(d.ArraySize, 1)
}

// Mapping is a CPU view of one mapped subresource.
type Mapping struct {
	// Data starts at the first byte of the first row. Its length is
	// DepthPitch.
	Data []byte

	// RowPitch is the distance in bytes between the starts of two rows.
	RowPitch int

	// DepthPitch is the size in bytes of the whole mapped subresource,
	// chroma planes included.
	DepthPitch int
}
