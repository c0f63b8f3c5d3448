// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pixfmt describes the memory layout of uncompressed video formats.
//
// A [Table] maps a [Format] to its stride rule and plane arrangement. From
// a table entry and image dimensions, [Table.Image] derives an [Image]
// whose Copy, Pack and Unpack methods move pixel rows between a tightly
// packed buffer and a row-padded (strided) buffer such as a mapped GPU
// texture:
//
//	img, err := pixfmt.DefaultTable().Image(pixfmt.FormatNV12, 1920, 1080)
//	if err != nil {
//	    return err
//	}
//	linear := make([]byte, img.PackedSize())
//	err = img.Pack(linear, mapped, rowPitch)
//
// Planar formats store their planes back to back. Chroma planes of YV12,
// I420, IYUV, NV11, IMC2 and IMC4 are addressed at half the image pitch.
package pixfmt
