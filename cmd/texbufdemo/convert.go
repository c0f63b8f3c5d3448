// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/texbuf/pixfmt"
)

// gradient is the test picture written by dump.
func gradient(x, y, w, h int) color.NRGBA {
	return color.NRGBA{
		R: uint8(x * 255 / max(w-1, 1)),
		G: uint8(y * 255 / max(h-1, 1)),
		B: 128,
		A: 255,
	}
}

// encodeGradient renders the gradient as a packed image in format f.
func encodeGradient(img pixfmt.Image) ([]byte, error) {
	w, h := img.Width, img.Height
	out := make([]byte, img.PackedSize())

	switch img.Format {
	case pixfmt.FormatARGB32, pixfmt.FormatRGB32, pixfmt.FormatABGR32:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := gradient(x, y, w, h)
				px := out[y*img.Stride+x*4:]
				if img.Format == pixfmt.FormatABGR32 {
					px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
				} else {
					px[0], px[1], px[2], px[3] = c.B, c.G, c.R, c.A
				}
			}
		}
		return out, nil

	case pixfmt.FormatL8:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := gradient(x, y, w, h)
				out[y*img.Stride+x], _, _ = color.RGBToYCbCr(c.R, c.G, c.B)
			}
		}
		return out, nil

	case pixfmt.FormatNV12, pixfmt.FormatI420, pixfmt.FormatIYUV, pixfmt.FormatYV12:
		ycc := image.NewYCbCr(image.Rect(0, 0, w, h), image.YCbCrSubsampleRatio420)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := gradient(x, y, w, h)
				yy, cb, cr := color.RGBToYCbCr(c.R, c.G, c.B)
				ycc.Y[ycc.YOffset(x, y)] = yy
				ycc.Cb[ycc.COffset(x, y)] = cb
				ycc.Cr[ycc.COffset(x, y)] = cr
			}
		}
		packYCbCr(img, ycc, out)
		return out, nil

	default:
		return nil, fmt.Errorf("%w: dump does not handle %v", pixfmt.ErrUnsupportedFormat, img.Format)
	}
}

// packYCbCr stores a 4:2:0 image in the packed layout of img.
func packYCbCr(img pixfmt.Image, ycc *image.YCbCr, out []byte) {
	w, h := img.Width, img.Height
	luma := w * h
	cw, ch := w/2, h/2
	for y := 0; y < h; y++ {
		copy(out[y*w:(y+1)*w], ycc.Y[y*ycc.YStride:])
	}
	chroma := out[luma:]
	for y := 0; y < ch; y++ {
		cb := ycc.Cb[y*ycc.CStride:]
		cr := ycc.Cr[y*ycc.CStride:]
		switch img.Format {
		case pixfmt.FormatNV12:
			for x := 0; x < cw; x++ {
				chroma[y*w+2*x] = cb[x]
				chroma[y*w+2*x+1] = cr[x]
			}
		case pixfmt.FormatYV12:
			copy(chroma[y*cw:], cr[:cw])
			copy(chroma[cw*ch+y*cw:], cb[:cw])
		default:
			copy(chroma[y*cw:], cb[:cw])
			copy(chroma[cw*ch+y*cw:], cr[:cw])
		}
	}
}

// decode converts a packed image in format img.Format to an image.Image.
func decode(img pixfmt.Image, data []byte) (image.Image, error) {
	w, h := img.Width, img.Height
	rect := image.Rect(0, 0, w, h)

	switch img.Format {
	case pixfmt.FormatARGB32, pixfmt.FormatRGB32, pixfmt.FormatABGR32:
		out := image.NewNRGBA(rect)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				px := data[y*img.Stride+x*4:]
				c := color.NRGBA{R: px[2], G: px[1], B: px[0], A: px[3]}
				if img.Format == pixfmt.FormatABGR32 {
					c.R, c.B = px[0], px[2]
				}
				if img.Format == pixfmt.FormatRGB32 {
					c.A = 255
				}
				out.SetNRGBA(x, y, c)
			}
		}
		return out, nil

	case pixfmt.FormatL8:
		out := image.NewGray(rect)
		for y := 0; y < h; y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+w], data[y*img.Stride:])
		}
		return out, nil

	case pixfmt.FormatNV12, pixfmt.FormatI420, pixfmt.FormatIYUV, pixfmt.FormatYV12:
		out := image.NewYCbCr(rect, image.YCbCrSubsampleRatio420)
		luma := w * h
		cw, ch := w/2, h/2
		for y := 0; y < h; y++ {
			copy(out.Y[y*out.YStride:y*out.YStride+w], data[y*w:])
		}
		chroma := data[luma:]
		for y := 0; y < ch; y++ {
			cb := out.Cb[y*out.CStride : y*out.CStride+cw]
			cr := out.Cr[y*out.CStride : y*out.CStride+cw]
			switch img.Format {
			case pixfmt.FormatNV12:
				for x := 0; x < cw; x++ {
					cb[x] = chroma[y*w+2*x]
					cr[x] = chroma[y*w+2*x+1]
				}
			case pixfmt.FormatYV12:
				copy(cr, chroma[y*cw:])
				copy(cb, chroma[cw*ch+y*cw:])
			default:
				copy(cb, chroma[y*cw:])
				copy(cr, chroma[cw*ch+y*cw:])
			}
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: dump does not handle %v", pixfmt.ErrUnsupportedFormat, img.Format)
	}
}
