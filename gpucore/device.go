// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

// Texture is a counted reference to a GPU texture.
//
// A texture starts with one reference owned by its creator. Retain and
// Release return the new count and must be safe for concurrent use; the
// texture's storage is freed when the last reference is released.
type Texture interface {
	// Desc returns the immutable description of the texture.
	Desc() TextureDesc

	// Device returns the device that created the texture.
	Device() Device

	// Supports reports whether the texture can be viewed through id.
	Supports(id ResourceID) bool

	Retain() int32
	Release() int32
}

// Device performs the transfer operations a texture-backed buffer needs.
//
// Implementations need not be safe for concurrent use on the same
// textures; callers serialize access per buffer.
type Device interface {
	// === Staging ===

	// CreateStaging creates a CPU-mappable texture with the same width,
	// height and format as src and a single subresource. The returned
	// texture holds one reference owned by the caller.
	CreateStaging(src Texture) (Texture, error)

	// === Transfers ===

	// CopySubresource copies subresource srcIndex of src into subresource
	// dstIndex of dst. Both textures must have the same format and
	// dimensions.
	CopySubresource(dst Texture, dstIndex uint32, src Texture, srcIndex uint32) error

	// === Mapping ===

	// Map makes subresource index of t visible to the CPU. Only staging
	// textures can be mapped, and a subresource must be unmapped before it
	// is mapped again.
	Map(t Texture, index uint32) (Mapping, error)

	// Unmap ends a mapping created by Map. The Mapping's Data must not be
	// used afterwards.
	Unmap(t Texture, index uint32)
}
