// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native implements a texbuf device on a gogpu/wgpu HAL device.
//
// Textures are HAL textures. A staging texture is a MapRead buffer plus a
// CPU shadow of it: copying into the staging texture encodes a
// texture-to-buffer copy, waits on a fence and reads the buffer into the
// shadow; copying out of it uploads the shadow with Queue.WriteTexture.
// Map hands out the shadow at the copy pitch (256-byte aligned by
// default).
//
// A Device can own a standalone Vulkan device (Open), share the device of
// a gogpu application (NewDeviceFromProvider) or wrap any hal.Device and
// hal.Queue (NewDevice). Open is registered with the backend registry as
// "native".
//
// Only single-plane formats with a direct WebGPU equivalent are supported:
// ARGB32 and RGB32 (BGRA8Unorm), ABGR32 (RGBA8Unorm) and L8 (R8Unorm).
// Textures have one mip level and one array slice.
//
// Build with -tags nogpu to leave the package empty of code, so importing
// it registers nothing.
package native
