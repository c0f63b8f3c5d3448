// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software provides a gpucore.Device backed by CPU memory.
//
// The device keeps the transfer model of a real GPU: textures cannot be
// mapped directly, CPU access goes through staging textures, and rows are
// padded to a fixed pitch alignment. It registers itself as the
// "software" backend:
//
//	import _ "github.com/gogpu/texbuf/backend/software"
//
// Tests use [Device.SetFaults] to make staging creation, copies or maps
// fail, and [Device.Stats] to observe GPU traffic.
package software
