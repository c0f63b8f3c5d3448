// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/gogpu/texbuf"
	"github.com/gogpu/texbuf/backend"
	"github.com/gogpu/texbuf/backend/software"
	"github.com/gogpu/texbuf/gpucore"
	"github.com/gogpu/texbuf/internal/scratch"
	"github.com/gogpu/texbuf/pixfmt"
)

// openDevice opens the configured backend. The software device is built
// directly so the pitch alignment applies.
func openDevice(cfg Config) (backend.Device, error) {
	switch cfg.Backend {
	case "":
		return backend.Default()
	case backend.BackendSoftware:
		return software.New(software.Config{PitchAlignment: cfg.PitchAlignment}), nil
	default:
		return backend.Open(cfg.Backend)
	}
}

// frame is one decoder output texture wrapped in a buffer.
type frame struct {
	dev backend.Device
	buf *texbuf.MediaBuffer
	img pixfmt.Image
}

func newFrame(cfg Config) (*frame, error) {
	format, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	img, err := pixfmt.DefaultTable().Image(format, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	dev, err := openDevice(cfg)
	if err != nil {
		return nil, err
	}
	tex, err := dev.CreateTexture(gpucore.TextureDesc{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
		Usage:  gpucore.UsageDecoder | gpucore.UsageShaderResource,
	})
	if err != nil {
		dev.Close()
		return nil, fmt.Errorf("%s: %w", dev.Name(), err)
	}

	opts := []texbuf.Option{texbuf.WithBottomUp(cfg.BottomUp)}
	if cfg.ScratchLimit > 0 {
		opts = append(opts, texbuf.WithAllocator(scratch.NewPool(cfg.ScratchLimit)))
	}
	buf, err := texbuf.New(tex, 0, opts...)
	tex.Release()
	if err != nil {
		dev.Close()
		return nil, err
	}
	return &frame{dev: dev, buf: buf, img: img}, nil
}

func (f *frame) tiled() (*texbuf.Buffer2D, error) {
	v, err := f.buf.Query(texbuf.Capability2DBuffer2)
	if err != nil {
		return nil, err
	}
	v.Release()
	return v.(*texbuf.Buffer2D), nil
}

func (f *frame) Close() {
	f.buf.Release()
	f.dev.Close()
}

// fill returns a frame-sized pattern that changes with seed.
func fill(n int, seed int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7+seed*13) ^ byte(i>>8)
	}
	return b
}
