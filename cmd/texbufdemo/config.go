// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gogpu/texbuf/pixfmt"
	"gopkg.in/yaml.v3"
)

// Config is a demo scenario. Flags override values loaded from a file.
type Config struct {
	// Backend names a registered backend; empty selects the best one.
	Backend string `yaml:"backend"`

	Format string `yaml:"format"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// Frames is the number of round trips, each with a different pattern.
	Frames int `yaml:"frames"`

	// PitchAlignment applies to devices opened by name.
	PitchAlignment int `yaml:"pitch_alignment"`

	// ScratchLimit bounds whole-buffer lock memory; zero means no limit.
	ScratchLimit int `yaml:"scratch_limit"`

	BottomUp bool `yaml:"bottom_up"`
}

// DefaultConfig returns the 1080p NV12 decoder scenario.
func DefaultConfig() Config {
	return Config{
		Format:         "NV12",
		Width:          1920,
		Height:         1080,
		Frames:         1,
		PitchAlignment: 256,
	}
}

// LoadConfig reads a YAML scenario on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the scenario values that do not need a device.
func (c Config) Validate() error {
	if _, err := parseFormat(c.Format); err != nil {
		return err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("invalid frame count %d", c.Frames)
	}
	if a := c.PitchAlignment; a < 0 || a&(a-1) != 0 {
		return fmt.Errorf("pitch alignment %d is not a power of two", a)
	}
	return nil
}

// parseFormat resolves a format by table name, case-insensitively.
func parseFormat(name string) (pixfmt.Format, error) {
	t := pixfmt.DefaultTable()
	for _, f := range t.Formats() {
		if info, _ := t.Lookup(f); strings.EqualFold(info.Name, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", pixfmt.ErrUnsupportedFormat, name)
}
