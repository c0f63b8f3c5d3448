// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixfmt

import (
	"errors"
	"fmt"
)

// Copy errors.
var (
	// ErrShortBuffer is returned when a source or destination slice is
	// too small for the image at the given pitch.
	ErrShortBuffer = errors.New("pixfmt: buffer too small")

	// ErrInvalidPitch is returned for a pitch smaller than the packed row
	// width or one the chroma planes cannot be derived from.
	ErrInvalidPitch = errors.New("pixfmt: invalid pitch")
)

// Plane is one run of rows of an image. Planes are stored back to back;
// a plane's pitch is derived from the image pitch.
type Plane struct {
	// RowBytes is the number of meaningful bytes in each row.
	RowBytes int

	// Rows is the number of rows in the plane.
	Rows int

	pitchNum, pitchDen int
}

// Pitch returns the plane's row pitch for an image row pitch.
func (p Plane) Pitch(imagePitch int) int {
	return imagePitch * p.pitchNum / p.pitchDen
}

// Image is the plane geometry of one image. The zero value has no planes.
type Image struct {
	Format Format
	Width  int
	Height int

	// Stride is the packed row width of the first plane.
	Stride int

	Planes []Plane
}

// PackedSize returns the size of the image with no row padding.
func (img Image) PackedSize() int {
	n := 0
	for _, p := range img.Planes {
		n += p.RowBytes * p.Rows
	}
	return n
}

// StridedSize returns the size of the image stored at the given pitch,
// including the padding after the last row.
func (img Image) StridedSize(pitch int) int {
	n := 0
	for _, p := range img.Planes {
		n += p.Pitch(pitch) * p.Rows
	}
	return n
}

// extent returns the number of bytes touched when the image is addressed
// at pitch; the last row of the last plane needs no padding.
func (img Image) extent(pitch int) int {
	n := 0
	for i, p := range img.Planes {
		if p.Rows == 0 {
			continue
		}
		if i == len(img.Planes)-1 {
			n += p.Pitch(pitch)*(p.Rows-1) + p.RowBytes
		} else {
			n += p.Pitch(pitch) * p.Rows
		}
	}
	return n
}

func (img Image) checkPitch(pitch int) error {
	if pitch < img.Stride {
		return fmt.Errorf("%w: %d < stride %d", ErrInvalidPitch, pitch, img.Stride)
	}
	for _, p := range img.Planes {
		if pitch*p.pitchNum%p.pitchDen != 0 {
			return fmt.Errorf("%w: %d not divisible for %v chroma", ErrInvalidPitch, pitch, img.Format)
		}
	}
	return nil
}

// Check reports whether a buffer of size bytes can hold the image at the
// given pitch.
func (img Image) Check(size, pitch int) error {
	if err := img.checkPitch(pitch); err != nil {
		return err
	}
	if need := img.extent(pitch); size < need {
		return fmt.Errorf("%w: %d < %d", ErrShortBuffer, size, need)
	}
	return nil
}

// Copy copies every plane of the image from src to dst. The two sides may
// use different pitches; only RowBytes of each row is copied.
func (img Image) Copy(dst []byte, dstPitch int, src []byte, srcPitch int) error {
	if err := img.Check(len(dst), dstPitch); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	if err := img.Check(len(src), srcPitch); err != nil {
		return fmt.Errorf("source: %w", err)
	}

	var dOff, sOff int
	for _, p := range img.Planes {
		dp, sp := p.Pitch(dstPitch), p.Pitch(srcPitch)
		CopyPlane(dst[dOff:], dp, src[sOff:], sp, p.RowBytes, p.Rows)
		dOff += dp * p.Rows
		sOff += sp * p.Rows
	}
	return nil
}

// Pack copies a strided image into a tightly packed destination.
func (img Image) Pack(dst, src []byte, srcPitch int) error {
	return img.Copy(dst, img.Stride, src, srcPitch)
}

// Unpack copies a tightly packed image into a strided destination.
func (img Image) Unpack(dst []byte, dstPitch int, src []byte) error {
	return img.Copy(dst, dstPitch, src, img.Stride)
}

// CopyPlane copies rows of rowBytes bytes between two strided buffers.
// Callers are responsible for bounds; equal pitches collapse to one copy.
func CopyPlane(dst []byte, dstPitch int, src []byte, srcPitch int, rowBytes, rows int) {
	if rows <= 0 || rowBytes <= 0 {
		return
	}
	if dstPitch == srcPitch && dstPitch == rowBytes {
		copy(dst[:rowBytes*rows], src[:rowBytes*rows])
		return
	}
	for y := 0; y < rows; y++ {
		copy(dst[y*dstPitch:y*dstPitch+rowBytes], src[y*srcPitch:y*srcPitch+rowBytes])
	}
}
