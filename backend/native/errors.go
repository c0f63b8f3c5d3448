// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package native

import "errors"

// Device errors.
var (
	// ErrNoGPU is returned by Open when no Vulkan adapter is available.
	ErrNoGPU = errors.New("native: no GPU available")

	// ErrInvalidProvider is returned when a device provider does not expose
	// a HAL device and queue.
	ErrInvalidProvider = errors.New("native: provider does not expose HAL types")

	// ErrUnsupportedFormat is returned for formats without a WebGPU
	// equivalent.
	ErrUnsupportedFormat = errors.New("native: unsupported texture format")

	// ErrInvalidDesc is returned for mip chains, texture arrays and empty
	// sizes.
	ErrInvalidDesc = errors.New("native: invalid texture description")

	// ErrInvalidTexture is returned for a texture created by another device
	// or already released.
	ErrInvalidTexture = errors.New("native: invalid texture")

	// ErrSubresourceRange is returned for any subresource index but 0.
	ErrSubresourceRange = errors.New("native: subresource index out of range")

	// ErrIncompatible is returned when copying between textures of
	// different format or size, or between two textures of the same kind.
	ErrIncompatible = errors.New("native: incompatible textures")

	// ErrNotMappable is returned when mapping a non-staging texture.
	ErrNotMappable = errors.New("native: texture is not mappable")

	// ErrAlreadyMapped is returned when mapping a mapped texture.
	ErrAlreadyMapped = errors.New("native: texture already mapped")

	// ErrTimeout is returned when the GPU does not signal a copy fence in
	// time.
	ErrTimeout = errors.New("native: GPU wait timed out")

	// ErrClosed is returned by operations on a closed device.
	ErrClosed = errors.New("native: device closed")
)
