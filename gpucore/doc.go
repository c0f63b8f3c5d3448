// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpucore defines the GPU contracts shared by texbuf and its device
// backends.
//
// A [Texture] is a counted reference to a two-dimensional texture made of
// MipLevels*ArraySize subresources. A [Device] moves subresources between
// GPU-private textures and CPU-mappable staging textures:
//
//	               +-----------------+
//	               |     texbuf      |
//	               | (media buffers) |
//	               +--------+--------+
//	                        |
//	                 gpucore.Device
//	                        |
//	         +--------------+--------------+
//	         |                             |
//	+--------v--------+          +--------v--------+
//	| backend/native  |          |backend/software |
//	|  (hal.Device)   |          |  (CPU memory)   |
//	+-----------------+          +-----------------+
//
// # Readback and writeback
//
// Reading a subresource on the CPU takes three steps:
//
//	staging, err := dev.CreateStaging(tex)
//	err = dev.CopySubresource(staging, 0, tex, index)
//	m, err := dev.Map(staging, 0)
//	// read m.Data with m.RowPitch
//	dev.Unmap(staging, 0)
//
// Writing runs the last copy in the other direction after Unmap.
//
// Rows of a mapping are RowPitch bytes apart. RowPitch is at least the packed
// row width of the format and is usually larger; backends align it to their
// copy granularity.
package gpucore
