// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixfmt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStride(t *testing.T) {
	tests := []struct {
		format     Format
		width      int
		wantStride int
		wantSub    bool
	}{
		{FormatARGB32, 1, 4, false},
		{FormatRGB24, 3, 12, false},
		{FormatRGB24, 5, 16, false},
		{FormatRGB565, 3, 8, false},
		{FormatL8, 5, 8, false},
		{FormatA16B16G16R16F, 3, 24, false},
		{FormatAYUV, 3, 12, true},
		{FormatYUY2, 6, 12, true},
		{FormatNV12, 1920, 1920, true},
		{FormatNV12, 6, 6, true},
		{FormatP010, 6, 12, true},
		{FormatYV12, 10, 10, true},
	}
	table := DefaultTable()
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			stride, sub, err := table.Stride(tt.format, tt.width)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStride, stride)
			assert.Equal(t, tt.wantSub, sub)
		})
	}
}

func TestStrideUnsupported(t *testing.T) {
	_, _, err := DefaultTable().Stride(MakeFourCC('H', '2', '6', '4'), 64)
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, _, err = DefaultTable().Stride(FormatNV12, 0)
	require.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestPlaneSize(t *testing.T) {
	tests := []struct {
		name          string
		format        Format
		width, height int
		want          int
	}{
		{"NV12 1080p", FormatNV12, 1920, 1080, 1920 * 1080 * 3 / 2},
		{"YV12", FormatYV12, 64, 32, 64 * 32 * 3 / 2},
		{"I420", FormatI420, 64, 32, 64 * 32 * 3 / 2},
		{"NV11", FormatNV11, 64, 32, 64 * 32 * 3 / 2},
		{"IMC4", FormatIMC4, 64, 32, 64 * 32 * 3 / 2},
		{"P010", FormatP010, 64, 32, 128 * 32 * 3 / 2},
		{"YUY2", FormatYUY2, 64, 32, 128 * 32},
		{"ARGB32", FormatARGB32, 3, 3, 12 * 3},
		{"RGB24 padded", FormatRGB24, 5, 2, 16 * 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DefaultTable().PlaneSize(tt.format, tt.width, tt.height)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImageRejectsOddChroma(t *testing.T) {
	tests := []struct {
		format        Format
		width, height int
	}{
		{FormatNV12, 7, 8},
		{FormatNV12, 8, 7},
		{FormatYUY2, 3, 2},
		{FormatNV11, 6, 2},
		{FormatARGB32, 4, 0},
	}
	for _, tt := range tests {
		_, err := DefaultTable().Image(tt.format, tt.width, tt.height)
		assert.Truef(t, errors.Is(err, ErrInvalidDimensions), "%v %dx%d: got %v", tt.format, tt.width, tt.height, err)
	}
}

func TestFormatsSortedAndNamed(t *testing.T) {
	formats := DefaultTable().Formats()
	require.NotEmpty(t, formats)
	for i := 1; i < len(formats); i++ {
		assert.Less(t, uint32(formats[i-1]), uint32(formats[i]))
	}
	for _, f := range formats {
		info, ok := DefaultTable().Lookup(f)
		require.True(t, ok)
		assert.Equal(t, info.Name, f.String())
	}
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "NV12", FormatNV12.String())
	assert.Equal(t, "ARGB32", FormatARGB32.String())
	assert.Equal(t, "H264", MakeFourCC('H', '2', '6', '4').String())
	assert.Equal(t, "Format(7)", Format(7).String())
	assert.True(t, FormatNV12.IsFourCC())
	assert.False(t, FormatARGB32.IsFourCC())
}

func TestNewTableCustom(t *testing.T) {
	gray := Info{Format: MakeFourCC('G', 'R', 'E', 'Y'), Name: "GREY", BytesPerPixel: 1}
	table := NewTable(gray)

	stride, sub, err := table.Stride(gray.Format, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, stride)
	assert.False(t, sub)

	_, _, err = table.Stride(FormatNV12, 8)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
