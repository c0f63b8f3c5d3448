// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixfmt

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Layout errors.
var (
	// ErrUnsupportedFormat is returned for formats with no stride rule.
	ErrUnsupportedFormat = errors.New("pixfmt: unsupported format")

	// ErrInvalidDimensions is returned for empty images or for sizes the
	// format's chroma subsampling cannot represent.
	ErrInvalidDimensions = errors.New("pixfmt: invalid dimensions")
)

// planeLayout describes how the planes of a format follow each other.
type planeLayout uint8

const (
	// layoutPacked is a single interleaved plane.
	layoutPacked planeLayout = iota

	// layoutSemiPlanar is luma followed by a half-height interleaved chroma
	// plane at full pitch (NV12, P010, P016).
	layoutSemiPlanar

	// layoutPlanar is luma followed by two half-height, half-pitch chroma
	// planes (YV12, I420, IYUV).
	layoutPlanar

	// layoutHalfPitchChroma is luma followed by a full-height chroma region
	// addressed at half pitch (NV11, IMC2, IMC4).
	layoutHalfPitchChroma
)

// Info describes one entry of the format table.
type Info struct {
	Format Format
	Name   string

	// BytesPerPixel is the size of one luma (or RGB) sample group.
	BytesPerPixel int

	// AlignMask is applied to the packed row width: stride is rounded up
	// so that stride&AlignMask == 0.
	AlignMask int

	// Subsampled reports chroma subsampling.
	Subsampled bool

	// WidthMultiple and HeightMultiple constrain image sizes for
	// subsampled layouts.
	WidthMultiple  int
	HeightMultiple int

	layout planeLayout
}

// Table is an immutable mapping from Format to layout rules.
// It is safe for concurrent use.
type Table struct {
	infos map[Format]Info
}

// NewTable builds a table from the given entries. Later duplicates replace
// earlier ones.
func NewTable(infos ...Info) *Table {
	t := &Table{infos: make(map[Format]Info, len(infos))}
	for _, info := range infos {
		if info.WidthMultiple <= 0 {
			info.WidthMultiple = 1
		}
		if info.HeightMultiple <= 0 {
			info.HeightMultiple = 1
		}
		t.infos[info.Format] = info
	}
	return t
}

func packed(f Format, name string, bpp, align int) Info {
	return Info{Format: f, Name: name, BytesPerPixel: bpp, AlignMask: align, layout: layoutPacked}
}

func yuv(f Format, name string, bpp, align int, layout planeLayout, wm, hm int) Info {
	return Info{
		Format:         f,
		Name:           name,
		BytesPerPixel:  bpp,
		AlignMask:      align,
		Subsampled:     true,
		WidthMultiple:  wm,
		HeightMultiple: hm,
		layout:         layout,
	}
}

// DefaultTable returns the built-in table of uncompressed video formats.
// The table is built once and shared.
var DefaultTable = sync.OnceValue(func() *Table {
	return NewTable(
		packed(FormatRGB24, "RGB24", 3, 3),
		packed(FormatARGB32, "ARGB32", 4, 3),
		packed(FormatRGB32, "RGB32", 4, 3),
		packed(FormatRGB565, "RGB565", 2, 3),
		packed(FormatRGB555, "RGB555", 2, 3),
		packed(FormatA2R10G10B10, "A2R10G10B10", 4, 3),
		packed(FormatA16B16G16R16F, "A16B16G16R16F", 8, 3),
		packed(FormatABGR32, "ABGR32", 4, 3),
		packed(FormatRGB8, "RGB8", 1, 3),
		packed(FormatL8, "L8", 1, 3),
		packed(FormatL16, "L16", 2, 3),
		packed(FormatD16, "D16", 2, 3),
		yuv(FormatAYUV, "AYUV", 4, 3, layoutPacked, 1, 1),
		yuv(FormatYUY2, "YUY2", 2, 0, layoutPacked, 2, 1),
		yuv(FormatUYVY, "UYVY", 2, 0, layoutPacked, 2, 1),
		yuv(FormatNV12, "NV12", 1, 0, layoutSemiPlanar, 2, 2),
		yuv(FormatP010, "P010", 2, 0, layoutSemiPlanar, 2, 2),
		yuv(FormatP016, "P016", 2, 0, layoutSemiPlanar, 2, 2),
		yuv(FormatYV12, "YV12", 1, 0, layoutPlanar, 2, 2),
		yuv(FormatI420, "I420", 1, 0, layoutPlanar, 2, 2),
		yuv(FormatIYUV, "IYUV", 1, 0, layoutPlanar, 2, 2),
		yuv(FormatNV11, "NV11", 1, 0, layoutHalfPitchChroma, 4, 1),
		yuv(FormatIMC2, "IMC2", 1, 0, layoutHalfPitchChroma, 2, 2),
		yuv(FormatIMC4, "IMC4", 1, 0, layoutHalfPitchChroma, 2, 2),
	)
})

// Lookup returns the table entry for f.
func (t *Table) Lookup(f Format) (Info, bool) {
	info, ok := t.infos[f]
	return info, ok
}

// Formats returns every format in the table in ascending numeric order.
func (t *Table) Formats() []Format {
	out := make([]Format, 0, len(t.infos))
	for f := range t.infos {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Stride returns the packed row width in bytes of an image of the given
// width, and whether the format is chroma subsampled.
func (t *Table) Stride(f Format, width int) (stride int, subsampled bool, err error) {
	info, ok := t.infos[f]
	if !ok {
		return 0, false, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	if width <= 0 {
		return 0, false, fmt.Errorf("%w: width %d", ErrInvalidDimensions, width)
	}
	stride = (width*info.BytesPerPixel + info.AlignMask) &^ info.AlignMask
	return stride, info.Subsampled, nil
}

// PlaneSize returns the number of bytes of one tightly packed image,
// luma and chroma planes included.
func (t *Table) PlaneSize(f Format, width, height int) (int, error) {
	img, err := t.Image(f, width, height)
	if err != nil {
		return 0, err
	}
	return img.PackedSize(), nil
}

// Image returns the plane geometry of an image.
func (t *Table) Image(f Format, width, height int) (Image, error) {
	stride, _, err := t.Stride(f, width)
	if err != nil {
		return Image{}, err
	}
	info := t.infos[f]
	if height <= 0 || width%info.WidthMultiple != 0 || height%info.HeightMultiple != 0 {
		return Image{}, fmt.Errorf("%w: %dx%d for %s", ErrInvalidDimensions, width, height, info.Name)
	}

	img := Image{Format: f, Width: width, Height: height, Stride: stride}
	luma := Plane{RowBytes: stride, Rows: height, pitchNum: 1, pitchDen: 1}
	switch info.layout {
	case layoutPacked:
		img.Planes = []Plane{luma}
	case layoutSemiPlanar:
		img.Planes = []Plane{luma, {RowBytes: stride, Rows: height / 2, pitchNum: 1, pitchDen: 1}}
	case layoutPlanar:
		chroma := Plane{RowBytes: stride / 2, Rows: height / 2, pitchNum: 1, pitchDen: 2}
		img.Planes = []Plane{luma, chroma, chroma}
	case layoutHalfPitchChroma:
		img.Planes = []Plane{luma, {RowBytes: stride / 2, Rows: height, pitchNum: 1, pitchDen: 2}}
	}
	return img, nil
}
