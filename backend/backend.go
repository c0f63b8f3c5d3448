// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"

	"github.com/gogpu/texbuf/gpucore"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered or could not open a device.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU-memory device.
	BackendSoftware = "software"
	// BackendNative is the name of the Pure Go GPU device (gogpu/wgpu HAL).
	BackendNative = "native"
)

// Device is a gpucore.Device that can also create textures. Backends
// register factories for it via Register and are selected via Open or
// Default.
type Device interface {
	gpucore.Device

	// Name returns the backend identifier (e.g., "software", "native").
	Name() string

	// CreateTexture creates a GPU-private texture. The returned texture
	// holds one reference owned by the caller.
	CreateTexture(desc gpucore.TextureDesc) (gpucore.Texture, error)

	// Close releases all device resources. Textures created by the device
	// must be released first.
	Close()
}
