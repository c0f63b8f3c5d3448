// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"log/slog"

	"github.com/gogpu/texbuf"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// app holds the state shared by all commands.
type app struct {
	configPath string
	verbose    bool

	// flags receives flag values; cfg is the merged scenario.
	flags Config
	cfg   Config
}

func newRootCmd() *cobra.Command {
	a := &app{flags: DefaultConfig()}

	root := &cobra.Command{
		Use:               "texbufdemo",
		Short:             "Exercise texture-backed media buffers",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "scenario file (YAML)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.flags.Backend, "backend", "", "backend name (software, native); empty selects the best available")
	pf.StringVar(&a.flags.Format, "format", a.flags.Format, "pixel format")
	pf.IntVar(&a.flags.Width, "width", a.flags.Width, "image width in pixels")
	pf.IntVar(&a.flags.Height, "height", a.flags.Height, "image height in pixels")
	pf.IntVar(&a.flags.Frames, "frames", a.flags.Frames, "number of frames")
	pf.IntVar(&a.flags.PitchAlignment, "pitch-alignment", a.flags.PitchAlignment, "software device row pitch alignment")
	pf.IntVar(&a.flags.ScratchLimit, "scratch-limit", 0, "largest whole-buffer lock in bytes (0 = unlimited)")
	pf.BoolVar(&a.flags.BottomUp, "bottom-up", false, "mark the image as bottom-up")

	root.AddCommand(newRoundtripCmd(a), newFormatsCmd(a), newDumpCmd(a))
	return root
}

// setup installs logging and merges the config file with changed flags.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.verbose {
		texbuf.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := DefaultConfig()
	if a.configPath != "" {
		var err error
		if cfg, err = LoadConfig(a.configPath); err != nil {
			return err
		}
	}

	fl := cmd.Flags()
	if fl.Changed("backend") {
		cfg.Backend = a.flags.Backend
	}
	if fl.Changed("format") {
		cfg.Format = a.flags.Format
	}
	if fl.Changed("width") {
		cfg.Width = a.flags.Width
	}
	if fl.Changed("height") {
		cfg.Height = a.flags.Height
	}
	if fl.Changed("frames") {
		cfg.Frames = a.flags.Frames
	}
	if fl.Changed("pitch-alignment") {
		cfg.PitchAlignment = a.flags.PitchAlignment
	}
	if fl.Changed("scratch-limit") {
		cfg.ScratchLimit = a.flags.ScratchLimit
	}
	if fl.Changed("bottom-up") {
		cfg.BottomUp = a.flags.BottomUp
	}
	a.cfg = cfg
	return cfg.Validate()
}

// printer formats byte counts with digit grouping.
func printer() *message.Printer {
	return message.NewPrinter(language.English)
}
