// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gogpu/texbuf"
	"github.com/spf13/cobra"
)

func newRoundtripCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip",
		Short: "Write frames through Lock and read them back through the 2D view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return roundtrip(a.cfg, cmd.OutOrStdout())
		},
	}
}

// roundtrip writes each frame with a whole-buffer lock, checks the pitch
// with a read-only tiled lock and compares a contiguous copy.
func roundtrip(cfg Config, w io.Writer) error {
	f, err := newFrame(cfg)
	if err != nil {
		return err
	}
	defer f.Close()

	v, err := f.tiled()
	if err != nil {
		return err
	}
	p := printer()

	var pitch int
	for i := 0; i < cfg.Frames; i++ {
		want := fill(f.buf.MaxLength(), i)

		data, _, _, err := f.buf.Lock()
		if err != nil {
			return fmt.Errorf("frame %d: lock: %w", i, err)
		}
		copy(data, want)
		if err := f.buf.Unlock(); err != nil {
			return fmt.Errorf("frame %d: unlock: %w", i, err)
		}
		if err := f.buf.SetCurrentLength(len(want)); err != nil {
			return err
		}

		r, err := v.Lock2DSize(texbuf.LockRead)
		if err != nil {
			return fmt.Errorf("frame %d: lock 2D: %w", i, err)
		}
		pitch = r.Pitch
		if err := v.Unlock2D(); err != nil {
			return fmt.Errorf("frame %d: unlock 2D: %w", i, err)
		}

		got := make([]byte, v.ContiguousLength())
		if err := v.ContiguousCopyTo(got); err != nil {
			return fmt.Errorf("frame %d: copy: %w", i, err)
		}
		if !bytes.Equal(got, want) {
			return fmt.Errorf("frame %d: readback differs at byte %d", i, firstDiff(got, want))
		}
	}

	p.Fprintf(w, "%v %dx%d on %s: %d bytes per frame, pitch %d, %d frames verified\n",
		f.img.Format, cfg.Width, cfg.Height, f.dev.Name(), f.buf.MaxLength(), pitch, cfg.Frames)
	return nil
}

func firstDiff(a, b []byte) int {
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			return i
		}
	}
	return min(len(a), len(b))
}
