// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend provides a registry of pluggable GPU devices.
//
// Device packages register a factory from their init() functions and are
// selected at runtime:
//
//	import _ "github.com/gogpu/texbuf/backend/software"
//
//	dev, err := backend.Open("software")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
//
// Default opens the best available device, trying "native" before
// "software":
//
//	dev, err := backend.Default()
//
// # Available Backends
//
// - "software": textures in CPU memory with GPU-like row pitch (always available)
// - "native": gogpu/wgpu HAL device (requires a GPU)
package backend
