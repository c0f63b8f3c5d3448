// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pixfmt

import "fmt"

// Format identifies an uncompressed pixel format. RGB formats use their
// D3DFORMAT numbers, YUV formats use their FourCC codes, matching the
// first field of the corresponding media subtype GUID.
type Format uint32

// MakeFourCC packs four characters into a Format, first byte lowest.
func MakeFourCC(a, b, c, d byte) Format {
	return Format(a) | Format(b)<<8 | Format(c)<<16 | Format(d)<<24
}

// RGB and depth formats.
const (
	FormatRGB24         Format = 20
	FormatARGB32        Format = 21
	FormatRGB32         Format = 22
	FormatRGB565        Format = 23
	FormatRGB555        Format = 24
	FormatA2R10G10B10   Format = 31
	FormatABGR32        Format = 32
	FormatRGB8          Format = 41
	FormatL8            Format = 50
	FormatD16           Format = 80
	FormatL16           Format = 81
	FormatA16B16G16R16F Format = 113
)

// YUV formats.
var (
	FormatAYUV = MakeFourCC('A', 'Y', 'U', 'V')
	FormatYUY2 = MakeFourCC('Y', 'U', 'Y', '2')
	FormatUYVY = MakeFourCC('U', 'Y', 'V', 'Y')
	FormatNV12 = MakeFourCC('N', 'V', '1', '2')
	FormatNV11 = MakeFourCC('N', 'V', '1', '1')
	FormatYV12 = MakeFourCC('Y', 'V', '1', '2')
	FormatI420 = MakeFourCC('I', '4', '2', '0')
	FormatIYUV = MakeFourCC('I', 'Y', 'U', 'V')
	FormatIMC2 = MakeFourCC('I', 'M', 'C', '2')
	FormatIMC4 = MakeFourCC('I', 'M', 'C', '4')
	FormatP010 = MakeFourCC('P', '0', '1', '0')
	FormatP016 = MakeFourCC('P', '0', '1', '6')
)

// IsFourCC reports whether f looks like a printable four character code
// rather than a small D3DFORMAT number.
func (f Format) IsFourCC() bool {
	for i := 0; i < 4; i++ {
		c := byte(f >> (8 * i))
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

// String returns the registered format name, the four character code, or
// the numeric value for unknown formats.
func (f Format) String() string {
	if info, ok := DefaultTable().Lookup(f); ok {
		return info.Name
	}
	if f.IsFourCC() {
		return string([]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)})
	}
	return fmt.Sprintf("Format(%d)", uint32(f))
}
