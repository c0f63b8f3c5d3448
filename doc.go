// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package texbuf exposes a subresource of a GPU texture as a CPU-lockable
// media buffer.
//
// # Overview
//
// Video decoders and renderers leave frames in GPU textures. A texbuf
// buffer wraps one subresource of such a texture and lets CPU code read
// and write the frame without knowing how the device lays it out. The
// buffer owns a CPU-mappable staging copy, created on first lock, and
// moves data between it and the texture as locks open and close.
//
// # Quick Start
//
//	dev, err := backend.Default()
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
//
//	tex, err := dev.CreateTexture(gpucore.TextureDesc{
//	    Width: 1920, Height: 1080, Format: pixfmt.FormatNV12,
//	})
//	if err != nil {
//	    return err
//	}
//	buf, err := texbuf.New(tex, 0)
//	tex.Release()
//	if err != nil {
//	    return err
//	}
//	defer buf.Release()
//
//	data, _, _, err := buf.Lock()
//	// ... read or write the packed NV12 frame ...
//	err = buf.Unlock()
//
// # Views
//
// A buffer has several views, obtained with Query and sharing one
// reference count:
//   - [MediaBuffer]: the image as one tightly packed slice
//   - [Buffer2D]: the mapped staging texture at the device's row pitch
//   - [ResourceBuffer]: the texture itself and associated objects
//   - [AttributeView]: the buffer's typed attribute store
//
// # Locking
//
// Whole-buffer locks (Lock/Unlock) and tiled locks (Lock2D/Unlock2D) both
// nest, and a sequence of one kind excludes the other. Tiled locks carry
// an intent. A write-only first lock skips the readback from the texture
// and a read-only sequence skips the writeback. See [Buffer2D.Lock2DSize]
// for how intents combine.
//
// All lock operations of one buffer are serialized. GPU work runs while
// the buffer's mutex is held.
//
// # Backends
//
// Devices come from the backend registry. backend/software keeps textures
// in CPU memory and is always available. backend/native drives a wgpu HAL
// device.
package texbuf

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
