// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command texbufdemo exercises texture-backed media buffers.
//
// Usage:
//
//	texbufdemo roundtrip --format NV12 --width 1920 --height 1080
//	texbufdemo formats --width 1920
//	texbufdemo dump --format I420 -o frame.bmp
//	texbufdemo --config scenario.yaml roundtrip
package main

import (
	"os"

	_ "github.com/gogpu/texbuf/backend/native"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
