// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
)

func newDumpCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Upload a gradient, read it back and write it as BMP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := dump(a.cfg, file); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			printer().Fprintf(cmd.OutOrStdout(), "%s %dx%d written to %s\n",
				a.cfg.Format, a.cfg.Width, a.cfg.Height, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "frame.bmp", "output file")
	return cmd
}

// dump writes the gradient through ContiguousCopyFrom, reads it back with
// ContiguousCopyTo and encodes the result.
func dump(cfg Config, w io.Writer) error {
	f, err := newFrame(cfg)
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := encodeGradient(f.img)
	if err != nil {
		return err
	}
	v, err := f.tiled()
	if err != nil {
		return err
	}
	if err := v.ContiguousCopyFrom(src); err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	got := make([]byte, v.ContiguousLength())
	if err := v.ContiguousCopyTo(got); err != nil {
		return fmt.Errorf("readback: %w", err)
	}

	img, err := decode(f.img, got)
	if err != nil {
		return err
	}
	return bmp.Encode(w, img)
}
