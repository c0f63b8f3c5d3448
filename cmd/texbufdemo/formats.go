// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"io"

	"github.com/gogpu/texbuf/pixfmt"
	"github.com/spf13/cobra"
)

func newFormatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported formats with their stride and plane size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listFormats(a.cfg.Width, a.cfg.Height, cmd.OutOrStdout())
		},
	}
}

func listFormats(width, height int, w io.Writer) error {
	t := pixfmt.DefaultTable()
	p := printer()
	p.Fprintf(w, "%-14s %-8s %10s %14s  (%dx%d)\n", "FORMAT", "ID", "STRIDE", "PLANE", width, height)
	for _, f := range t.Formats() {
		info, _ := t.Lookup(f)
		id := fmt.Sprintf("%d", uint32(f))
		if f.IsFourCC() {
			id = string([]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)})
		}
		stride, _, err := t.Stride(f, width)
		if err != nil {
			return err
		}
		size, err := t.PlaneSize(f, width, height)
		if err != nil {
			p.Fprintf(w, "%-14s %-8s %10d %14s\n", info.Name, id, stride, "-")
			continue
		}
		p.Fprintf(w, "%-14s %-8s %10d %14d\n", info.Name, id, stride, size)
	}
	return nil
}
